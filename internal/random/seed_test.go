package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/colorflash/internal/random"
)

func TestNewRand_FixedSeedIsReproducible(t *testing.T) {
	a, seedA, err := random.NewRand(77)
	require.NoError(t, err)
	b, seedB, err := random.NewRand(77)
	require.NoError(t, err)

	assert.Equal(t, int64(77), seedA)
	assert.Equal(t, seedA, seedB)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestNewRand_ZeroSeedIsReplaced(t *testing.T) {
	_, seed, err := random.NewRand(0)
	require.NoError(t, err)
	assert.NotZero(t, seed)
}
