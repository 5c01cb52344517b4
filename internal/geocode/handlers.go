package geocode

import (
	"context"
	"errors"
	"strconv"

	"backend-storywalk/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

// Geocoder is the collaborator contract consumed by the handlers.
type Geocoder interface {
	Forward(ctx context.Context, address string) (geo.Coordinate, error)
	Reverse(ctx context.Context, pos geo.Coordinate) (string, error)
}

func RegisterRoutes(r fiber.Router, geocoder Geocoder) {
	r.Get("/", func(c *fiber.Ctx) error {
		address := c.Query("address")
		if address == "" {
			return fiber.NewError(fiber.StatusBadRequest, "address required")
		}
		pos, err := geocoder.Forward(c.Context(), address)
		if err != nil {
			if errors.Is(err, ErrAddressNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "address not found")
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(pos)
	})

	r.Get("/reverse", func(c *fiber.Ctx) error {
		lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
		lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
		if err1 != nil || err2 != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}
		address, err := geocoder.Reverse(c.Context(), geo.Coordinate{Lat: lat, Lng: lng})
		if err != nil {
			if errors.Is(err, ErrAddressNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no address at position")
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(fiber.Map{"address": address})
	})
}
