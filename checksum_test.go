package gfarch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumKnownVector(t *testing.T) {
	t.Parallel()

	// 0xCC91B7B8 when read back byte-reversed.
	assert.Equal(t, uint32(0xB8B791CC), Checksum("sea_turtle_01.brres"))
}

func TestChecksumFold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(0), Checksum(""))
	assert.Equal(t, uint32('a'), Checksum("a"))
	assert.Equal(t, uint32('a')*137+uint32('b'), Checksum("ab"))
}

func TestChecksumOrderSensitive(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, Checksum("ab"), Checksum("ba"))
}

func TestChecksumEveryByteParticipates(t *testing.T) {
	t.Parallel()

	// NUL is a terminator only in the filename table, not here.
	assert.NotEqual(t, Checksum("a"), Checksum("a\x00"))
}

func TestChecksumDeterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Checksum("model/stage_07.bin"), Checksum("model/stage_07.bin"))
}
