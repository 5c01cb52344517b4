package route

import "backend-storywalk/internal/shared/geo"

// Geometry is a provider route normalized into one shape so the planner and
// tracker never branch on provider-specific responses. Immutable once built.
type Geometry struct {
	Coordinates     []geo.Coordinate `json:"coordinates"`
	DistanceMeters  float64          `json:"distance_m"`
	DurationSeconds float64          `json:"duration_sec"`
}

// Destination returns the last coordinate of the geometry.
func (g Geometry) Destination() geo.Coordinate {
	if len(g.Coordinates) == 0 {
		return geo.Coordinate{}
	}
	return g.Coordinates[len(g.Coordinates)-1]
}

// Checkpoint is a waypoint along the route that advances the narration when
// the walker comes within the arrival threshold. Index is 1-based and is the
// only meaningful ordering.
type Checkpoint struct {
	Position geo.Coordinate `json:"position"`
	Index    int            `json:"index"`
	Label    string         `json:"label"`
}
