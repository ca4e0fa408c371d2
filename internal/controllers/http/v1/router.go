package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"kite-forecast/internal/models"
	"kite-forecast/internal/score"
	"kite-forecast/pkg/observe"
)

// ForecastService is what the routes need from forecast.Service.
type ForecastService interface {
	Dashboard(ctx context.Context, force bool) (*models.Dashboard, error)
	Tides(ctx context.Context, force bool) ([]models.TideEvent, models.FeedStatus, error)
	Score(in score.Input) models.ScoreResult
}

type routes struct {
	service ForecastService
	l       *observe.Logger
}

func NewRouter(
	app *fiber.App,
	forecastService ForecastService,
	l *observe.Logger,
) {
	r := &routes{
		service: forecastService,
		l:       l,
	}

	// Swagger documentation, served from the document registered by package docs
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	app.Get("/forecast", r.handleForecast)
	app.Get("/tides", r.handleTides)
	app.Get("/score", r.handleScore)
}
