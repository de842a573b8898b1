package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceRange_Thumbs(t *testing.T) {
	p := NewPriceRange(0, 1_000_000, 10_000)
	assert.True(t, p.IsFull())

	p = p.SetMin(250_400)
	assert.Equal(t, int64(250_000), p.Min)
	p = p.SetMax(200_000)
	assert.Equal(t, int64(250_000), p.Max, "upper thumb cannot pass the lower one")
	p = p.SetMax(5_000_000)
	assert.Equal(t, int64(1_000_000), p.Max)
	p = p.SetMin(-10)
	assert.Equal(t, int64(0), p.Min)
	assert.True(t, p.IsFull())
}

func TestPriceRange_Normalize(t *testing.T) {
	p := PriceRange{Floor: 100, Ceiling: 1000, Step: 50, Min: 900, Max: 120}.Normalize()
	assert.Equal(t, int64(100), p.Min)
	assert.Equal(t, int64(900), p.Max)

	p = NewPriceRange(1000, 100, 0)
	assert.Equal(t, int64(100), p.Floor)
	assert.Equal(t, int64(1000), p.Ceiling)
	assert.Equal(t, int64(1), p.Step)
}

func TestPriceRange_Bounds(t *testing.T) {
	p := NewPriceRange(0, 100, 1)
	lo, hi := p.Bounds()
	assert.Zero(t, lo)
	assert.Zero(t, hi)

	lo, hi = p.SetMin(10).SetMax(90).Bounds()
	assert.Equal(t, int64(10), lo)
	assert.Equal(t, int64(90), hi)
}

func TestParsePriceRange(t *testing.T) {
	base := NewPriceRange(0, 10_000_000, 1)
	p, err := ParsePriceRange("$500,000", "", base)
	require.NoError(t, err)
	assert.Equal(t, int64(500_000), p.Min)
	assert.Equal(t, int64(10_000_000), p.Max)

	p, err = ParsePriceRange("900000", "100000", base)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), p.Min)
	assert.Equal(t, int64(900_000), p.Max)

	_, err = ParsePriceRange("abc", "", base)
	assert.Error(t, err)
	_, err = ParsePriceRange("", "-5", base)
	assert.Error(t, err)
}
