package models

// Subscores is the per-factor breakdown of a Kiteability Index.
type Subscores struct {
	Wind      float64 `json:"wind" example:"0.73"`
	Gust      float64 `json:"gust" example:"1"`
	Direction float64 `json:"direction" example:"1"`
	Tide      float64 `json:"tide" example:"0.5"`
	Daylight  float64 `json:"daylight" example:"1"`
	WaveDelta float64 `json:"wave_delta" example:"0.04"`
}

// ScoreResult is the Kiteability Index for one forecast column.
type ScoreResult struct {
	Index       float64   `json:"index" example:"0.82"`
	Stars       int       `json:"stars" example:"5"`
	Subscores   Subscores `json:"subscores"`
	GustFactor  *float64  `json:"gust_factor,omitempty" example:"1.2"`
	Explanation []string  `json:"explanation"`
}
