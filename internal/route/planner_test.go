package route

import (
	"testing"

	"backend-storywalk/internal/shared/geo"
)

func evenGeometry(points int) Geometry {
	coords := make([]geo.Coordinate, points)
	for i := range coords {
		frac := float64(i) / float64(points-1)
		coords[i] = geo.Coordinate{
			Lat: 10.776 + frac*(10.780-10.776),
			Lng: 106.700 + frac*(106.705-106.700),
		}
	}
	return Geometry{Coordinates: coords, DistanceMeters: 700, DurationSeconds: 600}
}

func TestPlanCheckpointsEvenSpacing(t *testing.T) {
	g := evenGeometry(20)
	cps := PlanCheckpoints(g, 4, nil)

	if len(cps) != 4 {
		t.Fatalf("expected 4 checkpoints, got %d", len(cps))
	}
	// interval = 20/5 = 4, so point indices 4, 8, 12, 16
	for i, cp := range cps {
		if cp.Index != i+1 {
			t.Fatalf("expected index %d, got %d", i+1, cp.Index)
		}
		want := g.Coordinates[(i+1)*4]
		if cp.Position != want {
			t.Fatalf("checkpoint %d at %v, want %v", cp.Index, cp.Position, want)
		}
		if cp.Label != "" && cp.Label[:10] != "Checkpoint" {
			t.Fatalf("unexpected label %q", cp.Label)
		}
	}
}

func TestPlanCheckpointsShortRoute(t *testing.T) {
	g := evenGeometry(3)
	cps := PlanCheckpoints(g, 4, nil)

	// interval = 3/5 = 0: all requested checkpoints degenerate to point 0.
	// The planner must return a well-defined result, never panic.
	if len(cps) > 4 {
		t.Fatalf("too many checkpoints: %d", len(cps))
	}
	for _, cp := range cps {
		if cp.Position != g.Coordinates[0] {
			t.Fatalf("degenerate checkpoint not at first point")
		}
	}
}

func TestPlanCheckpointsEmptyGeometry(t *testing.T) {
	if cps := PlanCheckpoints(Geometry{}, 3, nil); cps != nil {
		t.Fatalf("expected nil for empty geometry, got %v", cps)
	}
}

func TestPlanCheckpointsInstructionLabels(t *testing.T) {
	g := evenGeometry(12)
	cps := PlanCheckpoints(g, 2, []string{"<b>Turn left</b> onto Main St", "  "})

	if len(cps) != 2 {
		t.Fatalf("expected 2 checkpoints, got %d", len(cps))
	}
	if cps[0].Label != "Turn left onto Main St" {
		t.Fatalf("markup not stripped: %q", cps[0].Label)
	}
	if cps[1].Label != "Checkpoint 2" {
		t.Fatalf("blank instruction should fall back to default label, got %q", cps[1].Label)
	}
}
