package gfarch

import "fmt"

// File is a named member of an archive. Name is raw ASCII and must not
// contain a NUL byte; Data is the file's uncompressed contents.
type File struct {
	Name string
	Data []byte
}

// Version identifies a GfArch format revision. The wire encoding is a
// 16-bit major.minor pair stored in the archive header; the revision
// affects only that field, not the layout.
type Version uint16

// Known format revisions.
const (
	Version2_0 Version = 0x0200
	Version3_0 Version = 0x0300
	Version3_1 Version = 0x0301
)

func (v Version) valid() bool {
	switch v {
	case Version2_0, Version3_0, Version3_1:
		return true
	}
	return false
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", uint8(v>>8), uint8(v))
}

// Compression identifies the payload compression scheme. The value is
// the 32-bit type code stored in the GFCP header.
type Compression uint32

// Known compression schemes.
const (
	CompressionBPE  Compression = 1
	CompressionLZ10 Compression = 3

	// CompressionLZ77 is the legacy name for the LZ10 slot.
	CompressionLZ77 = CompressionLZ10
)

func (c Compression) String() string {
	switch c {
	case CompressionBPE:
		return "bpe"
	case CompressionLZ10:
		return "lz10"
	}
	return fmt.Sprintf("compression(%d)", uint32(c))
}

// Fixed layout constants. All multi-byte integers are little-endian
// and all offsets are measured from the start of the archive.
const (
	headerSize     = 0x30 // GFAC header
	entrySize      = 0x10 // one entry record
	gfcpHeaderSize = 0x14 // GFCP header

	archiveMagic = "GFAC"
	gfcpMagic    = "GFCP"

	// Observed constant in every known revision: the header stores a
	// pointer to the file-count field and a single "is compressed"
	// flag byte, and the GFCP header carries its own format version.
	entryTablePointer = 0x2C
	compressedFlag    = 1
	gfcpVersion       = 1

	// An entry's name_offset field carries the offset in its low 24
	// bits; the top byte is reserved for flags, of which only the
	// is-last bit (set on the final entry) is known.
	nameOffsetMask = 0x00FFFFFF
	isLastFlag     = 0x80000000
)

// align16 rounds n up to the next multiple of 16. Inter-file padding
// and the file-info block both use this alignment.
func align16(n uint32) uint32 {
	return (n + 15) &^ 15
}
