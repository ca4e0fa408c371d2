package score

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kite-forecast/internal/models"
)

func f(v float64) *float64 { return models.Float(v) }

func midTide() (*models.TideLevel, *models.TideRange) {
	return &models.TideLevel{Height: 3}, &models.TideRange{Min: 1, Max: 5}
}

func TestStars_Boundaries(t *testing.T) {
	cases := []struct {
		ki    float64
		stars int
	}{
		{1, 5},
		{0.8, 5},
		{0.7999, 4},
		{0.65, 4},
		{0.6499, 3},
		{0.5, 3},
		{0.35, 2},
		{0.34999, 0},
		{0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.stars, Stars(c.ki), "ki=%v", c.ki)
	}
}

func TestScore_Scenario(t *testing.T) {
	level, rng := midTide()

	for _, p := range []Profile{Classic(), Wave()} {
		t.Run(p.Name, func(t *testing.T) {
			in := Input{
				WindSpeed:     f(15),
				GustSpeed:     f(18),
				WindDirection: f(180),
				Tide:          level,
				TideRange:     rng,
				Daylight:      true,
			}
			onshore := Score(in, p)

			require.NotNil(t, onshore.GustFactor)
			assert.InDelta(t, 1.2, *onshore.GustFactor, 1e-9)
			assert.Equal(t, 1.0, onshore.Subscores.Gust)
			assert.Equal(t, 1.0, onshore.Subscores.Direction)
			assert.Equal(t, 1.0, onshore.Subscores.Daylight)
			assert.Equal(t, 0.0, onshore.Subscores.WaveDelta)

			in.WindDirection = f(0)
			offshore := Score(in, p)

			assert.Greater(t, onshore.Index, offshore.Index)
			assert.Less(t, offshore.Subscores.Direction, 0.5)
		})
	}
}

func TestComposite_MonotoneInWind(t *testing.T) {
	prev := -1.0
	for w := 0.0; w <= 1.0; w += 0.05 {
		ki := Composite(models.Subscores{Wind: w, Gust: 1, Direction: 1, Tide: 1, Daylight: 1})
		assert.GreaterOrEqual(t, ki, prev)
		assert.GreaterOrEqual(t, ki, 0.0)
		assert.LessOrEqual(t, ki, 1.0)
		prev = ki
	}
}

func TestComposite_ZeroFactorWinsOverWaves(t *testing.T) {
	ki := Composite(models.Subscores{Wind: 0, Gust: 1, Direction: 1, Tide: 1, Daylight: 1, WaveDelta: 0.18})
	assert.Equal(t, 0.0, ki)

	ki = Composite(models.Subscores{Wind: 1, Gust: 1, Direction: 1, Tide: 1, Daylight: 1, WaveDelta: 0.18})
	assert.Equal(t, 1.0, ki)
}

func TestWind(t *testing.T) {
	classic, wave := Classic(), Wave()

	cases := []struct {
		kt             float64
		classic, waves float64
	}{
		{0, 0, 0},
		{7.9, 0, 0},
		{8, 0, 0.1},
		{9, 0.1, 0.1},
		{13, 0.5, 0.5},
		{18, 1, 1},
		{21.5, 0.5, 0.5},
		{25, 0, 0},
		{40, 0, 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.classic, evaluate(classic.Wind, c.kt), 1e-9, "classic %v kt", c.kt)
		assert.InDelta(t, c.waves, evaluate(wave.Wind, c.kt), 1e-9, "wave %v kt", c.kt)
	}
}

func TestScore_MissingWindCountsAsCalm(t *testing.T) {
	res := Score(Input{GustSpeed: f(20), WindDirection: f(180), Daylight: true}, Classic())

	assert.Nil(t, res.GustFactor)
	assert.Equal(t, 0.0, res.Subscores.Wind)
	assert.Equal(t, 0.0, res.Subscores.Gust)
	assert.Equal(t, 0.0, res.Index)
	assert.Equal(t, 0, res.Stars)
}

func TestGust(t *testing.T) {
	assert.Equal(t, 1.0, gustScore(f(1.0), 0))
	assert.Equal(t, 1.0, gustScore(f(1.3), 0))
	assert.InDelta(t, 0.5, gustScore(f(1.45), 0), 1e-9)
	assert.Equal(t, 0.0, gustScore(f(1.6), 0))
	assert.Equal(t, 0.3, gustScore(f(2.5), 0.3))
	assert.Equal(t, 0.3, gustScore(nil, 0.3))
}

func TestDirection(t *testing.T) {
	classic, wave := Classic(), Wave()

	cases := []struct {
		deg            *float64
		classic, waves float64
	}{
		{f(180), 1, 1},
		{f(135), 1, 1},
		{f(225), 1, 1},
		{f(110), 0.7, 0.75},
		{f(255), 0.7, 0.75},
		{f(300), 0, 0.75},
		{f(50), 0, 0.75},
		{f(0), 0, 0.2},
		{f(330), 0, 0.2},
		{f(-180), 1, 1},
		{f(540), 1, 1},
		{nil, 0, 0.2},
	}
	for _, c := range cases {
		deg := normalizeDegrees(c.deg)
		assert.Equal(t, c.classic, evaluate(classic.Direction, deg), "classic %v", deg)
		assert.Equal(t, c.waves, evaluate(wave.Direction, deg), "wave %v", deg)
	}
	assert.True(t, math.IsNaN(normalizeDegrees(nil)))
}

func TestTide(t *testing.T) {
	classic, wave := Classic(), Wave()
	rng := &models.TideRange{Min: 0, Max: 10}

	assert.Equal(t, tideUnknown, tideScore(nil, rng, classic))
	assert.Equal(t, tideUnknown, tideScore(&models.TideLevel{Height: 2}, nil, wave))
	assert.Equal(t, tideUnknown, tideScore(&models.TideLevel{Height: 2}, &models.TideRange{Min: 2, Max: 2}, wave))

	assert.InDelta(t, 1.0, tideScore(&models.TideLevel{Height: 6}, rng, classic), 1e-9)
	assert.InDelta(t, 0.0, tideScore(&models.TideLevel{Height: 0}, rng, classic), 1e-9)

	assert.InDelta(t, 1.0, tideScore(&models.TideLevel{Height: 2}, rng, wave), 1e-9)
	assert.Equal(t, 0.3, tideScore(&models.TideLevel{Height: 10}, rng, wave))
}

func TestDaylight(t *testing.T) {
	level, rng := midTide()
	in := Input{WindSpeed: f(15), GustSpeed: f(16), WindDirection: f(180), Tide: level, TideRange: rng}

	classic := Score(in, Classic())
	assert.Equal(t, 0.1, classic.Subscores.Daylight)
	assert.Greater(t, classic.Index, 0.0)

	wave := Score(in, Wave())
	assert.Equal(t, 0.0, wave.Subscores.Daylight)
	assert.Equal(t, 0.0, wave.Index)
}

func TestWaveDelta(t *testing.T) {
	assert.Equal(t, 0.0, WaveDelta(nil, f(8), nil, nil))
	assert.Equal(t, 0.0, WaveDelta(f(1), nil, nil, nil))
	assert.Equal(t, 0.0, WaveDelta(f(0.2), f(8), nil, nil), "flat water is neutral")

	aligned := WaveDelta(f(0.8), f(10), f(200), f(200))
	assert.InDelta(t, 0.18, aligned, 1e-9)

	against := WaveDelta(f(0.8), f(10), f(20), f(200))
	assert.InDelta(t, 0.0, against, 1e-9)

	unknown := WaveDelta(f(0.8), f(10), nil, f(200))
	assert.InDelta(t, 0.09, unknown, 1e-9)

	storm := WaveDelta(f(3), f(4), f(200), f(200))
	assert.InDelta(t, -0.25, storm, 1e-9)

	for h := 0.3; h < 6; h += 0.1 {
		for p := 2.0; p < 16; p++ {
			d := WaveDelta(f(h), f(p), f(180), f(190))
			assert.GreaterOrEqual(t, d, -0.25)
			assert.LessOrEqual(t, d, 0.18)
		}
	}
}

func TestScore_ClassicIgnoresWaves(t *testing.T) {
	level, rng := midTide()
	in := Input{
		WindSpeed: f(15), GustSpeed: f(16), WindDirection: f(180),
		Tide: level, TideRange: rng, Daylight: true,
		WaveHeight: f(3), WavePeriod: f(4),
	}

	assert.Equal(t, 0.0, Score(in, Classic()).Subscores.WaveDelta)
	assert.Less(t, Score(in, Wave()).Subscores.WaveDelta, 0.0)
}

func TestScore_Explanation(t *testing.T) {
	level, rng := midTide()
	res := Score(Input{
		WindSpeed: f(15), GustSpeed: f(18), WindDirection: f(180),
		Tide: level, TideRange: rng, Daylight: true,
		WaveHeight: f(0.8), WavePeriod: f(9),
	}, Wave())

	require.Len(t, res.Explanation, 6)
	assert.Equal(t, "Wind 15 kt → S_w 0.70", res.Explanation[0])
	assert.Equal(t, "Gust factor 1.20 → S_g 1.00", res.Explanation[1])
	assert.Equal(t, "Direction 180° → S_d 1.00", res.Explanation[2])
	assert.True(t, strings.HasPrefix(res.Explanation[3], "Tide → S_t"))
	assert.Equal(t, "Daylight → S_l 1.0", res.Explanation[4])
	assert.True(t, strings.HasPrefix(res.Explanation[5], "Waves 0.8 m @ 9 s → +"))
}

func TestByName(t *testing.T) {
	p, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, ProfileWave, p.Name)

	p, err = ByName("classic")
	require.NoError(t, err)
	assert.Equal(t, ProfileClassic, p.Name)

	_, err = ByName("freestyle")
	assert.Error(t, err)
}

func TestScore_NonFiniteInputsCountAsMissing(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)

	for _, in := range []Input{
		{WindSpeed: f(15), GustSpeed: f(nan), WindDirection: f(180), Daylight: true},
		{WindSpeed: f(inf), GustSpeed: f(18), WindDirection: f(180), Daylight: true},
		{WindSpeed: f(15), GustSpeed: f(18), WindDirection: f(-inf), Daylight: true},
		{WindSpeed: f(15), GustSpeed: f(18), Tide: &models.TideLevel{Height: nan}, TideRange: &models.TideRange{Min: 0, Max: 6}, Daylight: true},
		{WindSpeed: f(15), GustSpeed: f(18), Tide: &models.TideLevel{Height: 2}, TideRange: &models.TideRange{Min: nan, Max: 6}, Daylight: true},
		{WindSpeed: f(15), GustSpeed: f(18), Tide: &models.TideLevel{Height: 2}, TideRange: &models.TideRange{Min: 0, Max: inf}, Daylight: true},
		{WindSpeed: f(15), GustSpeed: f(18), WaveHeight: f(inf), WavePeriod: f(7), WaveDirection: f(nan), Daylight: true},
	} {
		for _, p := range []Profile{Classic(), Wave()} {
			res := Score(in, p)
			assert.False(t, math.IsNaN(res.Index), "%s: %+v", p.Name, in)
			assert.GreaterOrEqual(t, res.Index, 0.0)
			assert.LessOrEqual(t, res.Index, 1.0)
			for _, line := range res.Explanation {
				assert.NotContains(t, line, "-9223372036854775808")
				assert.NotContains(t, line, "NaN")
			}
		}
	}

	assert.Nil(t, GustFactor(f(inf), f(18)))
	assert.Nil(t, GustFactor(f(15), f(nan)))
	assert.Equal(t, tideUnknown, tideScore(&models.TideLevel{Height: nan}, &models.TideRange{Min: 0, Max: 6}, Wave()))
	assert.Zero(t, WaveDelta(f(inf), f(7), nil, nil))
	assert.Equal(t, 0.5, alignment(f(nan), f(180)))

	res := Score(Input{WindSpeed: f(inf), GustSpeed: f(18), Daylight: true}, Wave())
	assert.Equal(t, "Wind 0 kt → S_w 0.00", res.Explanation[0])
}
