package http

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"kite-forecast/internal/models"
	"kite-forecast/internal/score"
	"kite-forecast/internal/services/forecast"
	"kite-forecast/internal/tide"
)

const (
	headerCache     = "X-Cache"
	headerUpdatedAt = "X-Updated-At"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"offline"`
}

// GetForecast godoc
// @Summary Get the kiteability forecast
// @Description Joins weather, tide and wave forecasts into scored time windows for the configured spot.
// @Tags Forecast
// @Produce json
// @Param refresh query integer false "Set to 1 to bypass the upstream caches" example(1)
// @Success 200 {object} models.Dashboard "Successful response"
// @Header 200 {string} X-Cache "HIT, MISS or STALE for the weather feed"
// @Header 200 {string} X-Updated-At "When the weather payload was fetched (RFC 3339)"
// @Failure 503 {object} ErrorResponse "Weather feed unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /forecast [get]
func (r *routes) handleForecast(c *fiber.Ctx) error {
	force := c.QueryBool("refresh", false)

	d, err := r.service.Dashboard(c.UserContext(), force)
	if errors.Is(err, forecast.ErrOffline) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "offline"})
	}
	if err != nil {
		r.l.Error(err, map[string]any{"route": "/forecast", "refresh": force})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to build forecast",
		})
	}

	setFeedHeaders(c, d.Feeds["weather"])
	return c.JSON(d)
}

// GetTides godoc
// @Summary Get tide events
// @Description Observed high and low water events for the configured station, extended with predicted events.
// @Tags Tides
// @Produce json
// @Param refresh query integer false "Set to 1 to bypass the tide cache" example(1)
// @Success 200 {array} tide.WireEvent "Successful response"
// @Header 200 {string} X-Cache "HIT, MISS or STALE"
// @Header 200 {string} X-Updated-At "When the tide payload was fetched (RFC 3339)"
// @Failure 404 {object} ErrorResponse "No tide provider configured"
// @Failure 502 {object} ErrorResponse "Tide feed unavailable"
// @Router /tides [get]
func (r *routes) handleTides(c *fiber.Ctx) error {
	force := c.QueryBool("refresh", false)

	events, status, err := r.service.Tides(c.UserContext(), force)
	if errors.Is(err, forecast.ErrTidesDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		r.l.Warning("tide request failed", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "Tide data unavailable"})
	}

	setFeedHeaders(c, status)
	return c.JSON(tide.ToWire(events))
}

// GetScore godoc
// @Summary Score a set of conditions
// @Description Computes the Kiteability Index for ad-hoc inputs with the configured scoring profile.
// @Tags Score
// @Produce json
// @Param wind query number false "Sustained wind (kt)" example(15)
// @Param gust query number false "Gust (kt)" example(18)
// @Param dir query number false "Wind direction (degrees, from)" example(200)
// @Param tide query number false "Water level (m)" example(3.2)
// @Param min query number false "Lowest level of the tide range (m)" example(0.6)
// @Param max query number false "Highest level of the tide range (m)" example(7.4)
// @Param daylight query boolean false "Whether it is daylight (default true)" example(true)
// @Param wave_height query number false "Wave height (m)" example(0.8)
// @Param wave_period query number false "Wave period (s)" example(7)
// @Param wave_dir query number false "Wave direction (degrees)" example(210)
// @Success 200 {object} models.ScoreResult "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Router /score [get]
func (r *routes) handleScore(c *fiber.Ctx) error {
	var (
		in  score.Input
		err error
	)

	fields := []struct {
		key string
		dst **float64
	}{
		{"wind", &in.WindSpeed},
		{"gust", &in.GustSpeed},
		{"dir", &in.WindDirection},
		{"wave_height", &in.WaveHeight},
		{"wave_period", &in.WavePeriod},
		{"wave_dir", &in.WaveDirection},
	}
	for _, f := range fields {
		if *f.dst, err = queryFloat(c, f.key); err != nil {
			return badRequest(c, "Invalid "+f.key+" format")
		}
	}

	level, err := queryFloat(c, "tide")
	if err != nil {
		return badRequest(c, "Invalid tide format")
	}
	lo, err := queryFloat(c, "min")
	if err != nil {
		return badRequest(c, "Invalid min format")
	}
	hi, err := queryFloat(c, "max")
	if err != nil {
		return badRequest(c, "Invalid max format")
	}
	if level != nil {
		in.Tide = &models.TideLevel{Height: *level}
	}
	if lo != nil && hi != nil {
		if *hi < *lo {
			return badRequest(c, "max must not be below min")
		}
		in.TideRange = &models.TideRange{Min: *lo, Max: *hi}
	}

	in.Daylight = true
	if v := c.Query("daylight"); v != "" {
		if in.Daylight, err = strconv.ParseBool(v); err != nil {
			return badRequest(c, "Invalid daylight format")
		}
	}

	return c.JSON(r.service.Score(in))
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s must be a finite number", key)
	}
	return &f, nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

func setFeedHeaders(c *fiber.Ctx, st models.FeedStatus) {
	if st.Cache != "" {
		c.Set(headerCache, string(st.Cache))
	}
	if st.UpdatedAt != nil {
		c.Set(headerUpdatedAt, st.UpdatedAt.UTC().Format(time.RFC3339))
	}
}
