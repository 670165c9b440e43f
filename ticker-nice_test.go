package rplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNiceTicker(t *testing.T) {
	assert := require.New(t)

	ticks := CollectTicks(NewNiceTicker(6), 0, 10)

	assert.Equal([]float64{0, 5, 10}, tickValues(ticks))
	assert.Equal([]string{`0`, `5`, `10`}, tickLabels(ticks))
}

func TestNiceTickerBase(t *testing.T) {
	assert := require.New(t)

	ticker := NewNiceTicker(6)
	ticker.Base = 2

	assert.Equal([]float64{0, 2, 4, 6, 8, 10}, tickValues(CollectTicks(ticker, 0, 10)))
}

func TestNiceTickerBounded(t *testing.T) {
	assert := require.New(t)

	for _, bounds := range [][2]float64{{-3.3, 17.1}, {0.001, 0.0042}, {1e6, 3.7e6}, {-1, -0.5}} {
		ticks := CollectTicks(NewNiceTicker(5), bounds[0], bounds[1])
		assert.NotEmpty(ticks)
		assert.True(len(ticks) <= 5)

		for _, tick := range ticks {
			assert.True(tick.Value >= bounds[0] && tick.Value <= bounds[1], "%v outside %v", tick.Value, bounds)
		}
	}
}

func TestNiceTickerMinor(t *testing.T) {
	assert := require.New(t)

	ticker := NewNiceTicker(3)
	ticker.Minor = true

	labeled := 0
	unlabeled := 0

	for _, tick := range CollectTicks(ticker, 0, 10) {
		if tick.HasLabel() {
			labeled++
		} else {
			unlabeled++
			assert.True(tick.TickLength < DefaultTickLength)
		}
	}

	assert.True(labeled > 0)
	assert.True(unlabeled > 0)
}

func TestNiceTickerEmpty(t *testing.T) {
	assert := require.New(t)

	assert.Empty(CollectTicks(NewNiceTicker(5), 3, 3))
	assert.Empty(CollectTicks(NewNiceTicker(5), 5, 1))
	assert.Empty(CollectTicks(NewNiceTicker(5), math.NaN(), 1))
}
