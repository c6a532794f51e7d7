package gfarch

import "errors"

// Sentinel errors returned by Extract, Info, and Pack. Contextual
// detail is wrapped around them; match with errors.Is.
var (
	// ErrInvalidHeader is returned when the buffer does not start with
	// the GFAC magic.
	ErrInvalidHeader = errors.New("gfarch: missing GFAC magic")

	// ErrInvalidGFCP is returned when the header's compression-header
	// offset does not point at the GFCP magic.
	ErrInvalidGFCP = errors.New("gfarch: missing GFCP magic")

	// ErrUnsupportedCompression is returned when a compression type
	// code is not one of the known schemes.
	ErrUnsupportedCompression = errors.New("gfarch: unsupported compression type")

	// ErrDecompression is returned when a codec rejects its input.
	ErrDecompression = errors.New("gfarch: decompression failed")

	// ErrTruncated is returned when a declared offset or size reaches
	// past the end of the buffer.
	ErrTruncated = errors.New("gfarch: truncated archive")

	// ErrInvalidFilename is returned by Pack when a filename contains
	// a NUL byte, which the filename table cannot represent.
	ErrInvalidFilename = errors.New("gfarch: invalid filename")

	// ErrUnsupportedVersion is returned by Pack when the version is
	// not a known format revision.
	ErrUnsupportedVersion = errors.New("gfarch: unsupported format version")
)
