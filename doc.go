// Package gfarch reads and writes GfArch ("GFAC") container archives:
// single binary blobs bundling several named files, compressed as one
// contiguous payload. The format is used by a family of game titles
// across three revisions (2.0, 3.0, 3.1) and two payload codecs, a
// byte-pair coder (BPE) and a Nintendo LZ coder (LZ10, historically
// labelled LZ77).
//
// Pack a set of files into an archive:
//
//	data, err := gfarch.Pack(files, gfarch.Version3_1, gfarch.CompressionLZ10)
//
// Extract an archive back into files:
//
//	files, err := gfarch.Extract(data)
//
// Some titles pin the compression header at a fixed offset; use
// [PackWithGFCPOffset] to reproduce those layouts:
//
//	data, err := gfarch.Pack(files, gfarch.Version3_0, gfarch.CompressionBPE,
//	    gfarch.PackWithGFCPOffset(0x2000),
//	)
//
// Pack and Extract are pure functions over caller-owned buffers; they
// perform no I/O and are safe to call from independent goroutines
// without coordination.
//
// The payload coders live in the bpe and lz10 subpackages and can be
// replaced per scheme with [PackWithCodec] and [ExtractWithCodec],
// which is mainly useful for testing the container layout with a
// deterministic stub coder.
package gfarch
