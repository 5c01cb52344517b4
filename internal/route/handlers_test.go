package route

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-storywalk/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

type fakeRouter struct {
	geom Geometry
	err  error
}

func (f *fakeRouter) Route(_ context.Context, _, _ geo.Coordinate, _ []geo.Coordinate) (Geometry, []string, error) {
	return f.geom, nil, f.err
}

func TestPlanHandler(t *testing.T) {
	geom := evenGeometry(20)
	app := fiber.New()
	RegisterRoutes(app.Group("/routes"), &fakeRouter{geom: geom})

	body, _ := json.Marshal(planRequest{
		Origin:          geo.Coordinate{Lat: 10.776, Lng: 106.700},
		Destination:     geo.Coordinate{Lat: 10.780, Lng: 106.705},
		CheckpointCount: 4,
	})
	req := httptest.NewRequest(http.MethodPost, "/routes/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("plan status: %v %d", err, resp.StatusCode)
	}

	var out planResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Checkpoints) != 4 {
		t.Fatalf("expected 4 checkpoints, got %d", len(out.Checkpoints))
	}
}

func TestPlanHandlerValidatesCount(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/routes"), &fakeRouter{})

	for _, count := range []int{0, 1, 6} {
		body, _ := json.Marshal(planRequest{CheckpointCount: count})
		req := httptest.NewRequest(http.MethodPost, "/routes/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("count %d: expected bad request, got %d", count, resp.StatusCode)
		}
	}
}

func TestPlanHandlerRouteNotFound(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/routes"), &fakeRouter{err: ErrRouteNotFound})

	body, _ := json.Marshal(planRequest{CheckpointCount: 3})
	req := httptest.NewRequest(http.MethodPost, "/routes/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
}
