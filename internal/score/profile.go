package score

import (
	"fmt"
	"math"

	"kite-forecast/pkg/numeric"
)

// Rule is one row of an ordered scoring table. The first rule whose
// Match accepts the value decides the score.
type Rule struct {
	Match func(v float64) bool
	Score func(v float64) float64
}

// Profile holds the tunables of one scoring revision.
type Profile struct {
	Name string

	Wind      []Rule
	Direction []Rule

	GustFloor float64

	TideTarget    float64
	TideHalfWidth float64
	TideFloor     float64

	Night float64

	Waves bool
}

const (
	ProfileClassic = "classic"
	ProfileWave    = "wave"
)

// ByName returns a built-in profile. Empty selects the wave profile.
func ByName(name string) (Profile, error) {
	switch name {
	case "", ProfileWave:
		return Wave(), nil
	case ProfileClassic:
		return Classic(), nil
	default:
		return Profile{}, fmt.Errorf("unknown scoring profile %q", name)
	}
}

// Classic is the first scoring revision. It scores zero outside the
// direction arc and has neither a gust floor nor a wave term.
func Classic() Profile {
	return Profile{
		Name: ProfileClassic,
		Wind: windRules(0),
		Direction: []Rule{
			{Match: arc(135, 225), Score: fixed(1)},
			{Match: arc(100, 260), Score: fixed(0.7)},
			{Match: always, Score: fixed(0)},
		},
		TideTarget:    0.6,
		TideHalfWidth: 0.6,
		Night:         0.1,
	}
}

// Wave is the later revision with floors on every factor but wind and
// an additive wave term.
func Wave() Profile {
	return Profile{
		Name: ProfileWave,
		Wind: windRules(0.1),
		Direction: []Rule{
			{Match: arc(135, 225), Score: fixed(1)},
			{Match: arc(45, 315), Score: fixed(0.75)},
			{Match: always, Score: fixed(0.2)},
		},
		GustFloor:     0.3,
		TideTarget:    0.2,
		TideHalfWidth: 0.8,
		TideFloor:     0.3,
		Night:         0,
		Waves:         true,
	}
}

const (
	windMin  = 8.0
	windBest = 18.0
	windMax  = 25.0
)

func windRules(floor float64) []Rule {
	return []Rule{
		{Match: below(windMin), Score: fixed(0)},
		{Match: atMost(windBest), Score: func(kt float64) float64 {
			return math.Max(floor, numeric.Clamp01((kt-windMin)/(windBest-windMin)))
		}},
		{Match: always, Score: func(kt float64) float64 {
			return numeric.Clamp01(1 - (kt-windBest)/(windMax-windBest))
		}},
	}
}

func evaluate(rules []Rule, v float64) float64 {
	for _, r := range rules {
		if r.Match(v) {
			return r.Score(v)
		}
	}
	return 0
}

func arc(from, to float64) func(float64) bool {
	return func(deg float64) bool { return deg >= from && deg <= to }
}

func below(limit float64) func(float64) bool {
	return func(v float64) bool { return v < limit }
}

func atMost(limit float64) func(float64) bool {
	return func(v float64) bool { return v <= limit }
}

func always(float64) bool { return true }

func fixed(score float64) func(float64) float64 {
	return func(float64) float64 { return score }
}
