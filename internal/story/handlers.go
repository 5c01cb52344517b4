package story

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req GenerateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.TargetDurationMinutes <= 0 {
			req.TargetDurationMinutes = 30
		}
		result, err := svc.GenerateStory(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		result, err := svc.GetStory(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "story not found")
		}
		return c.JSON(result)
	})
}
