package prefs

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		deviceID, _ := c.Locals("device_id").(string)
		if deviceID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "device required")
		}
		p, err := svc.Get(c.Context(), deviceID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Put("/", authMiddleware, func(c *fiber.Ctx) error {
		deviceID, _ := c.Locals("device_id").(string)
		if deviceID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "device required")
		}
		var p Preferences
		if err := c.BodyParser(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.Set(c.Context(), deviceID, p); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})
}
