package track_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/racetrack/track"
)

// TestDistanceField_Conn4 checks Manhattan distances around a wall.
//
//	S . .
//	. O .
//	. . F
func TestDistanceField_Conn4(t *testing.T) {
	tr, err := track.Parse(strings.NewReader("S..\n.O.\n..F\n"))
	require.NoError(t, err)

	got := tr.DistanceField(track.Conn4)
	want := [][]int{
		{4, 3, 2},
		{3, track.Unreachable, 1},
		{2, 1, 0},
	}
	assert.Equal(t, want, got)
}

// TestDistanceField_Conn8 uses diagonals; the corner is two steps away.
func TestDistanceField_Conn8(t *testing.T) {
	tr, err := track.Parse(strings.NewReader("S..\n...\n..F\n"))
	require.NoError(t, err)

	got := tr.DistanceField(track.Conn8)
	assert.Equal(t, 2, got[0][0])
	assert.Equal(t, 1, got[1][1])
	assert.Equal(t, 0, got[2][2])
}

// TestDistanceField_Isolated marks a walled-off start as unreachable.
func TestDistanceField_Isolated(t *testing.T) {
	tr, err := track.Parse(strings.NewReader("SO.\nOO.\n..F\n"))
	require.NoError(t, err)

	got := tr.DistanceField(track.Conn8)
	assert.Equal(t, track.Unreachable, got[0][0])
	assert.Equal(t, 2, got[0][2])
}
