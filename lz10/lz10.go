// Package lz10 implements the Nintendo LZ10 scheme used as GfArch
// compression type 3, historically labelled LZ77.
//
// LZ10 is an LZSS variant: a framed stream of flag bytes, each
// governing eight tokens, where a token is either a literal byte or a
// two-byte backreference of 3 to 18 bytes reaching up to 4 KiB into
// the already-decoded output. The frame begins with a 4-byte header:
// the 0x10 tag followed by the decompressed size in 24 little-endian
// bits.
package lz10

import (
	"errors"
	"fmt"
)

const (
	// Tag is the first byte of a framed stream.
	Tag = 0x10

	// HeaderSize is the frame header length: tag plus 24-bit size.
	HeaderSize = 4

	// MaxInputSize is the largest input the 24-bit size field can
	// describe.
	MaxInputSize = 1<<24 - 1

	// DefaultLevel searches the full backreference window.
	DefaultLevel = 9

	minMatch = 3
	maxMatch = 18
	maxDisp  = 0x1000
)

// Sentinel errors.
var (
	// ErrCorrupt is returned by Decompress for a malformed frame: a
	// bad tag, a stream that ends mid-token, or a backreference
	// reaching before the start of the output.
	ErrCorrupt = errors.New("lz10: corrupt stream")

	// ErrTooLarge is returned by Compress when the input size does
	// not fit the 24-bit frame header.
	ErrTooLarge = errors.New("lz10: input exceeds 24-bit size field")
)

// Compress encodes data as a framed LZ10 stream. level, clamped to
// [1, 9], bounds the backreference search window: level 9 searches the
// full 4 KiB, each level below halves it. The output is deterministic
// for a given input and level, and Decompress inverts it at every
// level.
func Compress(data []byte, level int) ([]byte, error) {
	if len(data) > MaxInputSize {
		return nil, ErrTooLarge
	}
	if level < 1 {
		level = 1
	} else if level > 9 {
		level = 9
	}
	window := maxDisp >> uint(9-level)

	out := make([]byte, HeaderSize, HeaderSize+len(data)+len(data)/8+1)
	out[0] = Tag
	out[1] = byte(len(data))
	out[2] = byte(len(data) >> 8)
	out[3] = byte(len(data) >> 16)

	pos := 0
	for pos < len(data) {
		flagIdx := len(out)
		out = append(out, 0)
		var flags byte
		for bit := 7; bit >= 0 && pos < len(data); bit-- {
			length, disp := findMatch(data, pos, window)
			if length >= minMatch {
				flags |= 1 << uint(bit)
				out = append(out,
					byte((length-minMatch)<<4|(disp-1)>>8),
					byte(disp-1))
				pos += length
			} else {
				out = append(out, data[pos])
				pos++
			}
		}
		out[flagIdx] = flags
	}
	return out, nil
}

// findMatch returns the longest backreference for data[pos:] within
// window bytes of history, preferring the smallest displacement on
// ties. A zero length means no usable match.
func findMatch(data []byte, pos, window int) (length, disp int) {
	limit := len(data) - pos
	if limit > maxMatch {
		limit = maxMatch
	}
	if limit < minMatch {
		return 0, 0
	}
	start := pos - window
	if start < 0 {
		start = 0
	}
	for c := pos - 1; c >= start; c-- {
		n := 0
		// The match may run past pos into its own output; the decoder
		// copies byte-by-byte, so that is valid.
		for n < limit && data[c+n] == data[pos+n] {
			n++
		}
		if n > length {
			length, disp = n, pos-c
			if n == limit {
				break
			}
		}
	}
	return length, disp
}

// Decompress decodes a framed LZ10 stream produced by Compress or by
// any conforming encoder.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < HeaderSize || data[0] != Tag {
		return nil, fmt.Errorf("%w: bad frame header", ErrCorrupt)
	}
	size := int(data[1]) | int(data[2])<<8 | int(data[3])<<16

	out := make([]byte, 0, size)
	pos := HeaderSize
	for len(out) < size {
		if pos >= len(data) {
			return nil, fmt.Errorf("%w: stream ends before declared size", ErrCorrupt)
		}
		flags := data[pos]
		pos++
		for bit := 7; bit >= 0 && len(out) < size; bit-- {
			if flags&(1<<uint(bit)) == 0 {
				if pos >= len(data) {
					return nil, fmt.Errorf("%w: stream ends inside literal", ErrCorrupt)
				}
				out = append(out, data[pos])
				pos++
				continue
			}
			if pos+2 > len(data) {
				return nil, fmt.Errorf("%w: stream ends inside backreference", ErrCorrupt)
			}
			length := int(data[pos]>>4) + minMatch
			disp := int(data[pos]&0x0F)<<8 | int(data[pos+1])
			disp++
			pos += 2
			if disp > len(out) {
				return nil, fmt.Errorf("%w: backreference past start of output", ErrCorrupt)
			}
			for i := 0; i < length; i++ {
				out = append(out, out[len(out)-disp])
			}
		}
	}
	return out[:size], nil
}
