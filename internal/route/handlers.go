package route

import (
	"context"
	"errors"

	"backend-storywalk/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

// Router is the routing-provider contract consumed by the handlers.
// *Client satisfies it; tests substitute a fake.
type Router interface {
	Route(ctx context.Context, origin, destination geo.Coordinate, waypoints []geo.Coordinate) (Geometry, []string, error)
}

type planRequest struct {
	Origin          geo.Coordinate   `json:"origin"`
	Destination     geo.Coordinate   `json:"destination"`
	Waypoints       []geo.Coordinate `json:"waypoints,omitempty"`
	CheckpointCount int              `json:"checkpoint_count"`
}

type planResponse struct {
	Geometry     Geometry     `json:"geometry"`
	Checkpoints  []Checkpoint `json:"checkpoints"`
	Instructions []string     `json:"instructions,omitempty"`
}

func RegisterRoutes(r fiber.Router, router Router) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req planRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.CheckpointCount < MinCheckpoints || req.CheckpointCount > MaxCheckpoints {
			return fiber.NewError(fiber.StatusBadRequest, "checkpoint_count must be between 2 and 5")
		}

		geom, instructions, err := router.Route(c.Context(), req.Origin, req.Destination, req.Waypoints)
		if err != nil {
			if errors.Is(err, ErrRouteNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no walking route found")
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}

		return c.JSON(planResponse{
			Geometry:     geom,
			Checkpoints:  PlanCheckpoints(geom, req.CheckpointCount, instructions),
			Instructions: instructions,
		})
	})
}
