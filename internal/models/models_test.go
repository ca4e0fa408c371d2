package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeWaves(t *testing.T) {
	t0 := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	h := HourlyWeather{Time: []time.Time{t0, t0.Add(time.Hour), t0.Add(2 * time.Hour)}}

	h.MergeWaves(&WaveSeries{
		Time:      []time.Time{t0.Add(time.Hour), t0.Add(2 * time.Hour), t0.Add(3 * time.Hour)},
		Height:    []*float64{Float(0.8), Float(1.1), Float(1.4)},
		Period:    []*float64{Float(6), nil},
		Direction: []*float64{Float(210), Float(220), Float(230)},
	})

	require.Len(t, h.WaveHeight, 3)
	assert.Nil(t, h.WaveHeight[0])
	assert.Equal(t, 0.8, *h.WaveHeight[1])
	assert.Equal(t, 1.1, *h.WaveHeight[2])
	assert.Equal(t, 6.0, *h.WavePeriod[1])
	assert.Nil(t, h.WavePeriod[2])
	assert.Equal(t, 220.0, *h.WaveDirection[2])
}

func TestMergeWaves_Nil(t *testing.T) {
	h := HourlyWeather{Time: make([]time.Time, 4)}
	h.MergeWaves(nil)
	assert.Len(t, h.WaveHeight, 4)
	assert.Len(t, h.WavePeriod, 4)
	assert.Len(t, h.WaveDirection, 4)
}

func TestAt(t *testing.T) {
	s := []*float64{Float(1), nil}
	assert.Equal(t, 1.0, *At(s, 0))
	assert.Nil(t, At(s, 1))
	assert.Nil(t, At(s, 2))
	assert.Nil(t, At(s, -1))
}

func TestDashboardNow(t *testing.T) {
	var d *Dashboard
	assert.Nil(t, d.Now())

	d = &Dashboard{NowIndex: 1, Rows: []ForecastRow{{Compass: "N"}, {Compass: "SSW"}}}
	require.NotNil(t, d.Now())
	assert.Equal(t, "SSW", d.Now().Compass)

	d.NowIndex = 5
	assert.Nil(t, d.Now())
}

func TestTideEventHasHeight(t *testing.T) {
	assert.True(t, TideEvent{Height: Float(0)}.HasHeight())
	assert.False(t, TideEvent{}.HasHeight())
	assert.False(t, TideEvent{Height: Float(math.NaN())}.HasHeight())
	assert.False(t, TideEvent{Height: Float(math.Inf(-1))}.HasHeight())
}
