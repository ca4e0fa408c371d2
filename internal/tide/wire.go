package tide

import (
	"encoding/json"
	"time"

	"kite-forecast/internal/models"
	"kite-forecast/pkg/numeric"
)

// WireEvent is the UKHO-shaped representation served by the API and
// accepted back by Parse.
type WireEvent struct {
	EventType   string   `json:"EventType"`
	DateTime    string   `json:"DateTime"`
	Height      *float64 `json:"Height"`
	IsPredicted bool     `json:"IsPredicted"`
}

var wireTypes = map[models.TideType]string{
	models.TideHigh: "HighWater",
	models.TideLow:  "LowWater",
	models.TideAny:  "Tide",
}

// Marshal encodes events as a JSON array. Heights are rounded to 0.01 m.
func Marshal(events []models.TideEvent) ([]byte, error) {
	return json.Marshal(ToWire(events))
}

// ToWire converts events to their wire form without encoding.
func ToWire(events []models.TideEvent) []WireEvent {
	out := make([]WireEvent, 0, len(events))
	for _, e := range events {
		typ, ok := wireTypes[e.Type]
		if !ok {
			typ = wireTypes[models.TideAny]
		}

		var h *float64
		if e.HasHeight() {
			h = models.Float(numeric.Round2(*e.Height))
		}

		out = append(out, WireEvent{
			EventType:   typ,
			DateTime:    e.Time.UTC().Format(time.RFC3339),
			Height:      h,
			IsPredicted: e.Predicted,
		})
	}
	return out
}
