// Package bpe implements the byte-pair coder used as GfArch
// compression type 1.
//
// The scheme follows Philip Gage's byte-pair encoding (1994): input is
// split into blocks, and within each block the most frequent byte pair
// is repeatedly replaced by a byte value unused in that block. Each
// block is written as its substitution table followed by the packed
// bytes, so a block of incompressible data costs three bytes of
// framing. Decoding expands substitutions with an explicit work stack
// whose size the caller bounds.
package bpe

import (
	"errors"
	"fmt"
)

const (
	// DefaultStackSize is the decoder work-stack bound used when the
	// caller passes a non-positive size. Well-formed streams never
	// approach it; it exists to stop cyclic substitution tables.
	DefaultStackSize = 4096

	// blockSize is the amount of input encoded per block. Pair counts
	// are recomputed per block, so larger blocks trade speed for
	// ratio.
	blockSize = 4096

	// minPairCount is the lowest pair frequency worth a substitution:
	// replacing a pair seen fewer times costs more table than it
	// saves.
	minPairCount = 4
)

// Sentinel errors returned by Decode.
var (
	// ErrCorrupt is returned when the stream ends inside a block.
	ErrCorrupt = errors.New("bpe: corrupt stream")

	// ErrStackExhausted is returned when expanding a substitution
	// would exceed the work-stack bound.
	ErrStackExhausted = errors.New("bpe: expansion stack exhausted")
)

// Encode compresses data. It is total: every input has an encoding,
// and Decode(Encode(data)) returns data. The output is deterministic
// for a given input.
func Encode(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/blockSize*8+8)
	for len(data) > 0 {
		n := len(data)
		if n > blockSize {
			n = blockSize
		}
		out = encodeBlock(out, data[:n])
		data = data[n:]
	}
	return out
}

// substitution maps a free byte value to the pair it replaces.
type substitution struct {
	code, left, right byte
}

// encodeBlock appends one encoded block to out and returns it.
//
// Block wire format, self-delimiting: pairCount:u8, then pairCount
// (code, left, right) triples, then packedLen:u16 little-endian, then
// the packed bytes.
func encodeBlock(out, chunk []byte) []byte {
	buf := make([]byte, len(chunk))
	copy(buf, chunk)

	var used [256]bool
	for _, b := range buf {
		used[b] = true
	}

	var subs []substitution
	for len(subs) < 255 {
		code := -1
		for c := range used {
			if !used[c] {
				code = c
				break
			}
		}
		if code < 0 {
			break
		}

		a, b, count := mostFrequentPair(buf)
		if count < minPairCount {
			break
		}

		packed := buf[:0]
		for i := 0; i < len(buf); {
			if i+1 < len(buf) && buf[i] == a && buf[i+1] == b {
				packed = append(packed, byte(code))
				i += 2
			} else {
				packed = append(packed, buf[i])
				i++
			}
		}
		buf = packed
		used[code] = true
		subs = append(subs, substitution{byte(code), a, b})
	}

	out = append(out, byte(len(subs)))
	for _, s := range subs {
		out = append(out, s.code, s.left, s.right)
	}
	out = append(out, byte(len(buf)), byte(len(buf)>>8))
	return append(out, buf...)
}

// mostFrequentPair returns the most frequent adjacent byte pair in buf
// and its count. Ties break toward the lexicographically smallest pair
// so encoding stays deterministic.
func mostFrequentPair(buf []byte) (a, b byte, count int) {
	counts := make(map[[2]byte]int, len(buf))
	for i := 0; i+1 < len(buf); i++ {
		counts[[2]byte{buf[i], buf[i+1]}]++
	}
	var best [2]byte
	for p, n := range counts {
		if n > count || (n == count && (p[0] < best[0] || (p[0] == best[0] && p[1] < best[1]))) {
			best, count = p, n
		}
	}
	return best[0], best[1], count
}

// Decode expands a stream produced by Encode. stackSize bounds the
// expansion work stack; pass a non-positive value for
// DefaultStackSize. Truncated input yields ErrCorrupt; a substitution
// table whose expansion outgrows the stack yields ErrStackExhausted.
func Decode(data []byte, stackSize int) ([]byte, error) {
	if stackSize <= 0 {
		stackSize = DefaultStackSize
	}

	out := make([]byte, 0, 2*len(data))
	stack := make([]byte, 0, stackSize)
	pos := 0
	for pos < len(data) {
		var left, right [256]byte
		var isSub [256]bool

		n := int(data[pos])
		pos++
		if pos+3*n > len(data) {
			return nil, fmt.Errorf("%w: pair table overruns input", ErrCorrupt)
		}
		for i := 0; i < n; i++ {
			c := data[pos]
			isSub[c] = true
			left[c] = data[pos+1]
			right[c] = data[pos+2]
			pos += 3
		}

		if pos+2 > len(data) {
			return nil, fmt.Errorf("%w: missing block size", ErrCorrupt)
		}
		size := int(data[pos]) | int(data[pos+1])<<8
		pos += 2
		if pos+size > len(data) {
			return nil, fmt.Errorf("%w: block data overruns input", ErrCorrupt)
		}

		for _, b := range data[pos : pos+size] {
			stack = append(stack, b)
			for len(stack) > 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if !isSub[c] {
					out = append(out, c)
					continue
				}
				if len(stack)+2 > stackSize {
					return nil, ErrStackExhausted
				}
				// Right below left so the left half expands first.
				stack = append(stack, right[c], left[c])
			}
		}
		pos += size
	}
	return out, nil
}
