package gfarch

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Extract parses a GfArch archive, decompresses its payload, and
// returns the files in entry-table order.
//
// The returned Data slices alias a single freshly-allocated
// decompressed buffer; they are independent of the input.
//
// Every offset and size the archive declares is checked against the
// buffer before use; a value reaching out of range yields
// ErrTruncated rather than a panic.
func Extract(data []byte, opts ...ExtractOption) ([]File, error) {
	cfg := extractConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	hdr, entries, err := parseFileInfo(data)
	if err != nil {
		return nil, err
	}

	codec, ok := cfg.codec(hdr.compression)
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedCompression, uint32(hdr.compression))
	}

	end := uint64(hdr.gfcpOffset) + gfcpHeaderSize + uint64(hdr.compressedSize)
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: compressed payload ends at 0x%X, buffer is 0x%X", ErrTruncated, end, len(data))
	}
	payload, err := codec.Decompress(data[hdr.gfcpOffset+gfcpHeaderSize:end], hdr.decompressedSize)
	if err != nil {
		return nil, err
	}

	files := make([]File, len(entries))
	for i, e := range entries {
		if e.dataOffset < hdr.gfcpOffset {
			return nil, fmt.Errorf("%w: entry %d data offset 0x%X before payload at 0x%X", ErrTruncated, i, e.dataOffset, hdr.gfcpOffset)
		}
		start := uint64(e.dataOffset - hdr.gfcpOffset)
		if start+uint64(e.size) > uint64(len(payload)) {
			return nil, fmt.Errorf("%w: entry %d data ends at 0x%X, payload is 0x%X", ErrTruncated, i, start+uint64(e.size), len(payload))
		}
		files[i] = File{Name: e.name, Data: payload[start : start+uint64(e.size)]}
	}

	cfg.log().Debug("extracted archive",
		"version", hdr.version.String(),
		"compression", hdr.compression.String(),
		"files", len(files),
	)
	return files, nil
}

// header carries the parsed GFAC and GFCP header fields.
type header struct {
	version          Version
	fileCount        uint32
	fileInfoSize     uint32
	gfcpOffset       uint32
	compression      Compression
	decompressedSize uint32
	compressedSize   uint32
}

// entryRecord is one parsed 16-byte entry-table record with its
// resolved filename.
type entryRecord struct {
	name       string
	checksum   uint32
	nameOffset uint32
	size       uint32
	dataOffset uint32
	last       bool
}

// parseFileInfo validates both magics and parses the header, the
// entry table, and the filename table. It performs no decompression.
func parseFileInfo(data []byte) (header, []entryRecord, error) {
	var hdr header

	if len(data) < len(archiveMagic) || string(data[:len(archiveMagic)]) != archiveMagic {
		return hdr, nil, ErrInvalidHeader
	}
	if len(data) < headerSize {
		return hdr, nil, fmt.Errorf("%w: %d byte header, need 0x%X", ErrTruncated, len(data), headerSize)
	}

	hdr.version = Version(binary.LittleEndian.Uint32(data[0x04:]))
	hdr.fileInfoSize = binary.LittleEndian.Uint32(data[0x10:])
	hdr.gfcpOffset = binary.LittleEndian.Uint32(data[0x14:])
	hdr.fileCount = binary.LittleEndian.Uint32(data[0x2C:])

	tableEnd := headerSize + uint64(hdr.fileCount)*entrySize
	if tableEnd > uint64(len(data)) {
		return hdr, nil, fmt.Errorf("%w: entry table for %d files ends at 0x%X, buffer is 0x%X", ErrTruncated, hdr.fileCount, tableEnd, len(data))
	}

	entries := make([]entryRecord, hdr.fileCount)
	for i := range entries {
		rec := data[headerSize+uint64(i)*entrySize:]
		raw := binary.LittleEndian.Uint32(rec[4:])
		e := &entries[i]
		e.checksum = binary.LittleEndian.Uint32(rec)
		e.nameOffset = raw & nameOffsetMask
		e.last = raw&isLastFlag != 0
		e.size = binary.LittleEndian.Uint32(rec[8:])
		e.dataOffset = binary.LittleEndian.Uint32(rec[12:])

		if uint64(e.nameOffset) >= uint64(len(data)) {
			return hdr, nil, fmt.Errorf("%w: entry %d name offset 0x%X, buffer is 0x%X", ErrTruncated, i, e.nameOffset, len(data))
		}
		nul := bytes.IndexByte(data[e.nameOffset:], 0)
		if nul < 0 {
			return hdr, nil, fmt.Errorf("%w: entry %d name is unterminated", ErrTruncated, i)
		}
		e.name = string(data[e.nameOffset : uint64(e.nameOffset)+uint64(nul)])
	}

	gfcpEnd := uint64(hdr.gfcpOffset) + uint64(len(gfcpMagic))
	if gfcpEnd > uint64(len(data)) {
		return hdr, nil, fmt.Errorf("%w: compression header at 0x%X, buffer is 0x%X", ErrTruncated, hdr.gfcpOffset, len(data))
	}
	if string(data[hdr.gfcpOffset:gfcpEnd]) != gfcpMagic {
		return hdr, nil, ErrInvalidGFCP
	}
	if uint64(hdr.gfcpOffset)+gfcpHeaderSize > uint64(len(data)) {
		return hdr, nil, fmt.Errorf("%w: compression header at 0x%X is cut short", ErrTruncated, hdr.gfcpOffset)
	}
	hdr.compression = Compression(binary.LittleEndian.Uint32(data[hdr.gfcpOffset+0x08:]))
	hdr.decompressedSize = binary.LittleEndian.Uint32(data[hdr.gfcpOffset+0x0C:])
	hdr.compressedSize = binary.LittleEndian.Uint32(data[hdr.gfcpOffset+0x10:])

	return hdr, entries, nil
}
