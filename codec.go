package gfarch

import (
	"fmt"

	"github.com/kettleby/gfarch/bpe"
	"github.com/kettleby/gfarch/lz10"
)

// Codec compresses and decompresses a whole archive payload. A Codec
// produces and consumes the bytes stored immediately after the GFCP
// header; any framing a coder needs beyond the GFCP fields is the
// Codec's job to add and remove.
//
// Implementations can be injected per scheme with [PackWithCodec] and
// [ExtractWithCodec], letting the container layout be exercised with a
// deterministic stub coder.
type Codec interface {
	// Compress encodes data as it is embedded after the GFCP header.
	Compress(data []byte) ([]byte, error)

	// Decompress decodes the bytes following the GFCP header.
	// decompressedSize is the size the GFCP header declares, for
	// coders whose raw streams do not carry one.
	Decompress(data []byte, decompressedSize uint32) ([]byte, error)
}

// defaultCodec maps a compression scheme to its built-in codec.
func defaultCodec(c Compression) (Codec, bool) {
	switch c {
	case CompressionBPE:
		return bpeCodec{}, true
	case CompressionLZ10:
		return lz10Codec{}, true
	}
	return nil, false
}

// bpeCodec adapts package bpe. The GFCP payload is the BPE stream
// as-is.
type bpeCodec struct{}

func (bpeCodec) Compress(data []byte) ([]byte, error) {
	return bpe.Encode(data), nil
}

func (bpeCodec) Decompress(data []byte, _ uint32) ([]byte, error) {
	out, err := bpe.Decode(data, bpe.DefaultStackSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return out, nil
}

// lz10Codec adapts package lz10. GfArch stores the stream without the
// 4-byte frame header (tag plus 24-bit size) because the GFCP header
// already records both fields: Compress strips the frame and
// Decompress rebuilds it from the declared size.
type lz10Codec struct{}

func (lz10Codec) Compress(data []byte) ([]byte, error) {
	framed, err := lz10.Compress(data, lz10.DefaultLevel)
	if err != nil {
		return nil, fmt.Errorf("gfarch: %w", err)
	}
	return framed[lz10.HeaderSize:], nil
}

func (lz10Codec) Decompress(data []byte, decompressedSize uint32) ([]byte, error) {
	if decompressedSize > lz10.MaxInputSize {
		return nil, fmt.Errorf("%w: declared size %d exceeds the LZ10 24-bit limit", ErrDecompression, decompressedSize)
	}
	framed := make([]byte, lz10.HeaderSize+len(data))
	framed[0] = lz10.Tag
	framed[1] = byte(decompressedSize)
	framed[2] = byte(decompressedSize >> 8)
	framed[3] = byte(decompressedSize >> 16)
	copy(framed[lz10.HeaderSize:], data)

	out, err := lz10.Decompress(framed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return out, nil
}
