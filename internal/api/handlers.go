package api

import (
	"errors"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loadplan/internal/domain"
	"loadplan/internal/service"
)

func SetupRoutes(app *fiber.App, planner *service.Planner, gatherer prometheus.Gatherer) {
	app.Get("/healthz", HealthCheckHandler)
	app.Get("/actuator/health", HealthCheckHandler)
	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := app.Group("/api/v1")
	loadPlanner := v1.Group("/load-planner")
	loadPlanner.Post("/plan", PlanHandler(planner))
}

func HealthCheckHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "UP",
		"service": "Load Planner API",
		"version": "1.0.0",
	})
}

func PlanHandler(planner *service.Planner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request domain.PlanRequest
		if err := c.BodyParser(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "INVALID_JSON",
					"message": "Invalid JSON format",
					"details": err.Error(),
				},
			})
		}

		plan, err := planner.Plan(c.UserContext(), request)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidInput):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fiber.Map{
						"code":    "INVALID_INPUT",
						"message": err.Error(),
					},
				})
			case errors.Is(err, domain.ErrInternalConsistency):
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": fiber.Map{
						"code":    "INTERNAL_CONSISTENCY",
						"message": "planner produced an invalid plan; no plan returned",
					},
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "INTERNAL",
					"message": err.Error(),
				},
			})
		}

		return c.Status(fiber.StatusOK).JSON(domain.ToResponse(plan))
	}
}

func RequestSizeLimiter(maxBytes int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Request().Header.ContentLength() > maxBytes {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "BODY_TOO_LARGE",
					"message": "Request body too large",
				},
			})
		}
		return c.Next()
	}
}
