package gfarch

import "fmt"

// ArchiveInfo describes an archive's header metadata without its
// decompressed contents.
type ArchiveInfo struct {
	Version          Version
	Compression      Compression
	FileCount        uint32
	GFCPOffset       uint32
	DecompressedSize uint32
	CompressedSize   uint32
	Entries          []EntryInfo
}

// EntryInfo is the metadata of one entry record.
type EntryInfo struct {
	// Name is the filename resolved from the filename table.
	Name string

	// Checksum is the stored filename tag. It is reported as-is, not
	// revalidated against Name.
	Checksum uint32

	// Size is the file's decompressed size in bytes.
	Size uint32

	// Offset is the file's absolute position as if the payload were
	// laid out decompressed in place; subtract GFCPOffset for the
	// position inside the decompressed payload.
	Offset uint32

	// Last reports whether the record carries the is-last flag.
	Last bool
}

// Info parses an archive's headers and entry table without touching
// the compressed payload. It shares Extract's validation and bounds
// rules, so it is a cheap way to enumerate an archive's contents or
// reject a malformed buffer early.
func Info(data []byte) (*ArchiveInfo, error) {
	hdr, entries, err := parseFileInfo(data)
	if err != nil {
		return nil, err
	}
	if _, ok := defaultCodec(hdr.compression); !ok {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedCompression, uint32(hdr.compression))
	}

	info := &ArchiveInfo{
		Version:          hdr.version,
		Compression:      hdr.compression,
		FileCount:        hdr.fileCount,
		GFCPOffset:       hdr.gfcpOffset,
		DecompressedSize: hdr.decompressedSize,
		CompressedSize:   hdr.compressedSize,
		Entries:          make([]EntryInfo, len(entries)),
	}
	for i, e := range entries {
		info.Entries[i] = EntryInfo{
			Name:     e.name,
			Checksum: e.checksum,
			Size:     e.size,
			Offset:   e.dataOffset,
			Last:     e.last,
		}
	}
	return info, nil
}
