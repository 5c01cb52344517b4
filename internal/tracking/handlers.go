package tracking

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req StartRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.DeviceID == "" {
			if id, ok := c.Locals("device_id").(string); ok {
				req.DeviceID = id
			}
		}
		if req.DeviceID == "" || len(req.Geometry.Coordinates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "device_id and geometry required")
		}
		walk, err := svc.StartWalk(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(walk)
	})

	r.Post("/:id/positions", authMiddleware, func(c *fiber.Ctx) error {
		var pos Position
		if err := c.BodyParser(&pos); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		progress, err := svc.AddPosition(c.Context(), c.Params("id"), pos)
		if err != nil {
			if errors.Is(err, ErrWalkNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "walk not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(progress)
	})

	r.Post("/:id/end", authMiddleware, func(c *fiber.Ctx) error {
		summary, err := svc.EndWalk(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, ErrWalkNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "walk not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(summary)
	})

	r.Get("/:id/summary", func(c *fiber.Ctx) error {
		summary, err := svc.GetSummary(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "summary not found")
		}
		return c.JSON(summary)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		deviceID, _ := c.Locals("device_id").(string)
		if q := c.Query("device_id"); q != "" {
			deviceID = q
		}
		if deviceID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "device_id required")
		}
		summaries, err := svc.History(c.Context(), deviceID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(summaries)
	})
}
