package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeShotsBitPacked_MatchesPerShotDecode(t *testing.T) {
	m := NewMatching()
	m.AddEdge(0, 1, 3.0, []int{0}, 0.1)

	// Two shots, 2 detectors each: shot 0 fires both (bits 0 and 1 of
	// byte 0), shot 1 fires neither.
	dets := []byte{0b00000011, 0b00000000}
	out, err := m.DecodeShotsBitPacked(dets, 2, 2, 1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, byte(1), out[0]&1)
	assert.Equal(t, byte(0), out[1]&1)
}
