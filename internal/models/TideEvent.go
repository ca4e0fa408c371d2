package models

import (
	"math"
	"time"
)

// TideType is the kind of a tide event.
type TideType string

const (
	TideHigh TideType = "HIGH"
	TideLow  TideType = "LOW"
	TideAny  TideType = "TIDE"
)

// TideEvent is a single high or low water occurrence.
type TideEvent struct {
	Type      TideType  `json:"type" example:"HIGH"`
	Height    *float64  `json:"height" example:"6.42"` // meters, nil when unknown
	Time      time.Time `json:"time" example:"2026-10-17T14:32:00Z"`
	Predicted bool      `json:"predicted" example:"false"`
}

// HasHeight reports whether the event carries a usable height: present
// and finite.
func (e TideEvent) HasHeight() bool {
	return e.Height != nil && !math.IsNaN(*e.Height) && !math.IsInf(*e.Height, 0)
}

// TideLevel is the interpolated water level at an instant.
type TideLevel struct {
	Height    float64 `json:"height" example:"3.87"`
	LowerHalf bool    `json:"lower_half" example:"true"`
}

// TideRange spans the heights of a tide series.
type TideRange struct {
	Min float64 `json:"min" example:"0.61"`
	Max float64 `json:"max" example:"7.48"`
}

// Span returns Max - Min.
func (r TideRange) Span() float64 {
	return r.Max - r.Min
}

// TideCoverage describes how many days a tide series spans.
type TideCoverage struct {
	Days        int    `json:"days" example:"7"`
	Description string `json:"description" example:"Tides available for ~7 days."`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
