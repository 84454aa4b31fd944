package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutKeys(t *testing.T) {
	l := Layout{Lanes: 2, TilesPerLane: 3, Cycles: 4, Reads: 2}

	keys := l.Keys()
	assert.Len(t, keys, 6)
	assert.Equal(t, uint16(1), keys[0].Lane)
	assert.Equal(t, uint16(1101), keys[0].Tile)
	assert.Equal(t, uint16(2), keys[5].Lane)
	assert.Equal(t, uint16(1103), keys[5].Tile)

	assert.Len(t, l.CycleKeys(), 24)
}

func TestFixturesAreDeterministic(t *testing.T) {
	a := RunFolderFiles(NewRNG(99), DefaultLayout)
	b := RunFolderFiles(NewRNG(99), DefaultLayout)

	assert.Equal(t, a, b)

	c := RunFolderFiles(NewRNG(100), DefaultLayout)
	assert.NotEqual(t, a, c)
}
