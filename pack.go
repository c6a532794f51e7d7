package gfarch

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Pack serializes files into a GfArch archive. Files are stored in the
// given order; names need not be unique but must not contain NUL.
//
// The payload is the concatenation of every file's contents, each
// padded to a 16-byte boundary, compressed as one chunk with the given
// scheme. By default the compression header follows the file-info
// block; [PackWithGFCPOffset] pins it at a fixed offset instead, as
// some titles require.
//
// Output is fully deterministic for a given input and option set.
func Pack(files []File, version Version, compression Compression, opts ...PackOption) ([]byte, error) {
	cfg := packConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !version.valid() {
		return nil, fmt.Errorf("%w 0x%04X", ErrUnsupportedVersion, uint16(version))
	}
	codec, ok := cfg.codec(compression)
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedCompression, uint32(compression))
	}
	for _, f := range files {
		if strings.IndexByte(f.Name, 0) >= 0 {
			return nil, fmt.Errorf("%w: %q contains NUL", ErrInvalidFilename, f.Name)
		}
	}

	// Section arithmetic. The file-info block is the file-count field
	// plus the entry table plus the NUL-terminated filename table; the
	// header stores its size unrounded but lays it out rounded to 16.
	nameBytes := 0
	payloadSize := uint32(0)
	for _, f := range files {
		nameBytes += len(f.Name) + 1
		payloadSize += align16(uint32(len(f.Data)))
	}
	fileInfoSize := uint32(4 + entrySize*len(files) + nameBytes)
	if uint64(headerSize)+uint64(entrySize)*uint64(len(files))+uint64(nameBytes) > nameOffsetMask {
		return nil, fmt.Errorf("gfarch: filename table exceeds the 24-bit name offset field")
	}

	gfcpOffset := headerSize + align16(fileInfoSize)
	if cfg.gfcpOffsetSet {
		gfcpOffset = cfg.gfcpOffset
		infoEnd := uint32(headerSize + entrySize*len(files) + nameBytes)
		if gfcpOffset < infoEnd {
			return nil, fmt.Errorf("gfarch: GFCP offset 0x%X overlaps file info ending at 0x%X", gfcpOffset, infoEnd)
		}
	}

	payload := make([]byte, 0, payloadSize)
	for _, f := range files {
		payload = append(payload, f.Data...)
		payload = payload[:align16(uint32(len(payload)))]
	}

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, uint64(gfcpOffset)+gfcpHeaderSize+uint64(len(compressed)))

	copy(buf, archiveMagic)
	binary.LittleEndian.PutUint32(buf[0x04:], uint32(version))
	buf[0x08] = compressedFlag
	binary.LittleEndian.PutUint32(buf[0x0C:], entryTablePointer)
	binary.LittleEndian.PutUint32(buf[0x10:], fileInfoSize)
	binary.LittleEndian.PutUint32(buf[0x14:], gfcpOffset)
	binary.LittleEndian.PutUint32(buf[0x18:], gfcpHeaderSize+uint32(len(compressed)))
	binary.LittleEndian.PutUint32(buf[0x2C:], uint32(len(files)))

	// Entry records, then the filename table right behind them. The
	// data cursor tracks each file's absolute position as if the
	// payload were laid out decompressed starting at the GFCP offset.
	nameCursor := uint32(headerSize + entrySize*len(files))
	dataCursor := gfcpOffset
	for i, f := range files {
		nameField := nameCursor & nameOffsetMask
		if i == len(files)-1 {
			nameField |= isLastFlag
		}
		rec := buf[headerSize+i*entrySize:]
		binary.LittleEndian.PutUint32(rec, Checksum(f.Name))
		binary.LittleEndian.PutUint32(rec[4:], nameField)
		binary.LittleEndian.PutUint32(rec[8:], uint32(len(f.Data)))
		binary.LittleEndian.PutUint32(rec[12:], dataCursor)

		copy(buf[nameCursor:], f.Name) // trailing NUL is already zero
		nameCursor += uint32(len(f.Name)) + 1
		dataCursor += align16(uint32(len(f.Data)))
	}

	gfcp := buf[gfcpOffset:]
	copy(gfcp, gfcpMagic)
	binary.LittleEndian.PutUint32(gfcp[0x04:], gfcpVersion)
	binary.LittleEndian.PutUint32(gfcp[0x08:], uint32(compression))
	binary.LittleEndian.PutUint32(gfcp[0x0C:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(gfcp[0x10:], uint32(len(compressed)))
	copy(gfcp[gfcpHeaderSize:], compressed)

	cfg.log().Debug("packed archive",
		"version", version.String(),
		"compression", compression.String(),
		"files", len(files),
		"size", len(buf),
	)
	return buf, nil
}
