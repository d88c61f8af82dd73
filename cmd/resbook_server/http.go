package main

import (
	"errors"
	"log/slog"
	"runtime/pprof"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avdonin/resbook/internal/model"
	"github.com/avdonin/resbook/internal/service"
	"github.com/avdonin/resbook/internal/timeline"
	"github.com/avdonin/resbook/pkg/log"
)

func NewHttp(app *App) *fiber.App {
	f := fiber.New(fiber.Config{
		EnablePrintRoutes:     false,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "api", DoMetrics: true, LogErrorsOnly: true}))

	addMissionRoutes(app, f)
	addCatalogRoutes(app, f)

	addTimelineAPI(f, app.stations)
	addTimelineAPI(f, app.crawlers)
	addTimelineAPI(f, app.platforms)
	addTimelineAPI(f, app.rts)
	addTimelineAPI(f, app.operators)

	f.Get("/health", getHealthHandler())
	f.Get("/stack", getStackHandler())
	f.Get("/metrics", getMetricsHandler())

	return f
}

// errorHandler maps domain errors to HTTP statuses. Overlap and availability
// failures are conflicts, validation failures are bad requests.
func errorHandler(ctx *fiber.Ctx, err error) error {
	var (
		conflict    *timeline.ConflictError
		notFound    *timeline.NotFoundError
		unavailable *service.UnavailableError
		integrity   *service.IntegrityError
		fiberErr    *fiber.Error
	)

	switch {
	case errors.As(err, &conflict):
		conflictsMetric.WithLabelValues("overlap").Inc()

		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      conflict.Error(),
			"prev_id":    conflict.PrevID,
			"next_id":    conflict.NextID,
			"prev_end":   conflict.PrevEnd,
			"next_start": conflict.NextStart,
		})
	case errors.As(err, &unavailable):
		conflictsMetric.WithLabelValues("unavailable").Inc()

		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":       unavailable.Error(),
			"resource":    unavailable.Resource,
			"resource_id": unavailable.ResourceID,
		})
	case errors.As(err, &integrity):
		conflictsMetric.WithLabelValues("integrity").Inc()

		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": integrity.Error()})
	case errors.As(err, &notFound), errors.Is(err, service.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidInterval), errors.Is(err, model.ErrInvalidChannel):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &fiberErr):
		return ctx.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	default:
		slog.Error("api error", slog.Any("error", err))

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

func getHealthHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok", "version": gitRevision})
	}
}

func getStackHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return pprof.Lookup("goroutine").WriteTo(ctx.Response().BodyWriter(), 1)
	}
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{DisableCompression: true},
	))
}
