package rplot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCalendarTickerMonths(t *testing.T) {
	assert := require.New(t)

	min := TimeToEpoch(time.Date(2006, 1, 15, 0, 0, 0, 0, time.UTC))
	max := TimeToEpoch(time.Date(2006, 5, 1, 0, 0, 0, 0, time.UTC))

	ticks := CollectTicks(NewCalendarTicker(`Jan 2006`, 1), min, max)

	assert.Equal([]string{`Feb 2006`, `Mar 2006`, `Apr 2006`, `May 2006`}, tickLabels(ticks))
	assert.Equal(TimeToEpoch(time.Date(2006, 3, 1, 0, 0, 0, 0, time.UTC)), ticks[1].Value)
}

func TestCalendarTickerQuarters(t *testing.T) {
	assert := require.New(t)

	ticker := NewCalendarTicker(`Jan 2006`, 3)

	assert.Equal(time.Date(2006, 4, 1, 0, 0, 0, 0, time.UTC), ticker.Align(TimeToEpoch(time.Date(2006, 5, 20, 0, 0, 0, 0, time.UTC))))

	min := TimeToEpoch(time.Date(2006, 5, 20, 0, 0, 0, 0, time.UTC))
	max := TimeToEpoch(time.Date(2007, 3, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal([]string{`Jul 2006`, `Oct 2006`, `Jan 2007`}, tickLabels(CollectTicks(ticker, min, max)))
}

func TestCalendarTickerYears(t *testing.T) {
	assert := require.New(t)

	min := TimeToEpoch(time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC))
	max := TimeToEpoch(time.Date(2005, 6, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal([]string{`2002`, `2003`, `2004`, `2005`}, tickLabels(CollectTicks(NewCalendarTicker(`2006`, 12), min, max)))
}

func TestCalendarTickerLocation(t *testing.T) {
	assert := require.New(t)

	mst := time.FixedZone(`MST`, -7*3600)
	ticker := NewCalendarTicker(`Jan 02 15:04`, 1)
	ticker.Location = mst

	min := TimeToEpoch(time.Date(2006, 1, 15, 0, 0, 0, 0, mst))
	max := TimeToEpoch(time.Date(2006, 2, 15, 0, 0, 0, 0, mst))

	assert.Equal([]string{`Feb 01 00:00`}, tickLabels(CollectTicks(ticker, min, max)))
}

func TestCalendarTickerInvalid(t *testing.T) {
	assert := require.New(t)

	assert.Empty(CollectTicks(NewCalendarTicker(`2006`, 0), 0, YEAR*10))
}
