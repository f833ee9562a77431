package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cpu-scheduler/config"
	"cpu-scheduler/internal/telemetry"
)

// bodyLimit caps request bodies before they are decoded.
const bodyLimit = 1 << 20

// NewApp wires every route of the scheduler api.
func NewApp(config *config.SchedulerConfig, recorder *telemetry.Recorder) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
	})
	handler := NewSchedulerHandlerImpl(config, recorder)
	Register(app, handler)
	return app
}

func Register(app *fiber.App, handler SchedulerHandler) {
	app.Get("/metrics", handler.Metrics)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/fifo", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/srtf", handler.ShortestRemainingTimeFirst)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/mlfq", handler.MultilevelFeedbackQueue)
		v1.Post("/all", handler.AllAlgorithms)
		v1.Get("/processes/random", handler.RandomProcesses)
	}
}

func errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return ctx.Status(code).JSON(fiber.Map{"error": err.Error()})
}
