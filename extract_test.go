package gfarch

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packedArchive(t *testing.T, c Compression, opts ...PackOption) []byte {
	t.Helper()
	data, err := Pack(testFiles(), Version3_1, c, opts...)
	require.NoError(t, err)
	return data
}

func TestExtractBadMagic(t *testing.T) {
	t.Parallel()

	_, err := Extract([]byte("NOPE this is not an archive"))
	require.ErrorIs(t, err, ErrInvalidHeader)

	_, err = Extract(nil)
	require.ErrorIs(t, err, ErrInvalidHeader)

	_, err = Extract([]byte("GF"))
	require.ErrorIs(t, err, ErrInvalidHeader)
}

func TestExtractShortHeader(t *testing.T) {
	t.Parallel()

	_, err := Extract([]byte("GFAC\x01\x03"))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestExtractBadGFCPMagic(t *testing.T) {
	t.Parallel()

	data := packedArchive(t, CompressionLZ10)
	gfcpOff := binary.LittleEndian.Uint32(data[0x14:])
	copy(data[gfcpOff:], "WHAT")

	_, err := Extract(data)
	require.ErrorIs(t, err, ErrInvalidGFCP)
}

func TestExtractGFCPOffsetOutOfRange(t *testing.T) {
	t.Parallel()

	data := packedArchive(t, CompressionLZ10)
	binary.LittleEndian.PutUint32(data[0x14:], uint32(len(data))+100)

	_, err := Extract(data)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestExtractUnsupportedCompressionCode(t *testing.T) {
	t.Parallel()

	data := packedArchive(t, CompressionLZ10)
	gfcpOff := binary.LittleEndian.Uint32(data[0x14:])
	binary.LittleEndian.PutUint32(data[gfcpOff+0x08:], 2)

	_, err := Extract(data)
	require.ErrorIs(t, err, ErrUnsupportedCompression)
	assert.Contains(t, err.Error(), "2")
}

func TestExtractTruncatedBuffers(t *testing.T) {
	t.Parallel()

	data := packedArchive(t, CompressionLZ10)
	gfcpOff := int(binary.LittleEndian.Uint32(data[0x14:]))

	cuts := map[string]int{
		"mid entry table": 0x30 + 16*2 + 5,
		"mid name table":  0x30 + 16*4 + 3,
		"mid GFCP header": gfcpOff + 6,
		"mid compressed":  gfcpOff + 0x14 + 1,
		"one byte short":  len(data) - 1,
	}
	for name, cut := range cuts {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Extract(data[:cut])
			require.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestExtractCorruptPayload(t *testing.T) {
	t.Parallel()

	data := packedArchive(t, CompressionLZ10)
	gfcpOff := binary.LittleEndian.Uint32(data[0x14:])
	// Point every backreference at the far past.
	for i := gfcpOff + 0x14; i < uint32(len(data)); i++ {
		data[i] = 0xFF
	}

	_, err := Extract(data)
	require.ErrorIs(t, err, ErrDecompression)
}

func TestExtractEntryOffsetBeforePayload(t *testing.T) {
	t.Parallel()

	data := packedArchive(t, CompressionBPE)
	// First entry's decompressed offset rewritten below the GFCP
	// offset, which no valid archive produces.
	binary.LittleEndian.PutUint32(data[0x30+12:], 0x10)

	_, err := Extract(data)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestExtractEntrySizeBeyondPayload(t *testing.T) {
	t.Parallel()

	data := packedArchive(t, CompressionBPE)
	binary.LittleEndian.PutUint32(data[0x30+8:], 1<<30)

	_, err := Extract(data)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestExtractOrderMatchesEntryTable(t *testing.T) {
	t.Parallel()

	in := testFiles()
	out, err := Extract(packedArchive(t, CompressionBPE))
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].Name, out[i].Name)
	}
}

func TestInfo(t *testing.T) {
	t.Parallel()

	in := testFiles()
	data, err := Pack(in, Version3_0, CompressionBPE, PackWithGFCPOffset(0x2000))
	require.NoError(t, err)

	info, err := Info(data)
	require.NoError(t, err)

	assert.Equal(t, Version3_0, info.Version)
	assert.Equal(t, CompressionBPE, info.Compression)
	assert.Equal(t, uint32(len(in)), info.FileCount)
	assert.Equal(t, uint32(0x2000), info.GFCPOffset)
	require.Len(t, info.Entries, len(in))

	for i, e := range info.Entries {
		assert.Equal(t, in[i].Name, e.Name)
		assert.Equal(t, Checksum(in[i].Name), e.Checksum)
		assert.Equal(t, uint32(len(in[i].Data)), e.Size)
		assert.Equal(t, i == len(in)-1, e.Last, "entry %d", i)
		assert.GreaterOrEqual(t, e.Offset, info.GFCPOffset)
	}
}

func TestInfoRejectsUnknownCompression(t *testing.T) {
	t.Parallel()

	data := packedArchive(t, CompressionLZ10)
	gfcpOff := binary.LittleEndian.Uint32(data[0x14:])
	binary.LittleEndian.PutUint32(data[gfcpOff+0x08:], 9)

	_, err := Info(data)
	require.ErrorIs(t, err, ErrUnsupportedCompression)
}

func TestVersionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2.0", Version2_0.String())
	assert.Equal(t, "3.0", Version3_0.String())
	assert.Equal(t, "3.1", Version3_1.String())
}

func TestCompressionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bpe", CompressionBPE.String())
	assert.Equal(t, "lz10", CompressionLZ10.String())
	assert.Equal(t, CompressionLZ10, CompressionLZ77)
}
