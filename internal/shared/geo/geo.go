package geo

import "math"

// earthRadiusM is the mean Earth radius used for great-circle distances.
const earthRadiusM = 6371000.0

// ArrivalThresholdM is the radius within which a walker counts as having
// reached a checkpoint or the destination. 50 m reflects typical consumer
// GPS accuracy.
const ArrivalThresholdM = 50.0

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceMeters returns the haversine great-circle distance between a and b.
// Coordinates are not validated; garbage in, garbage out.
func DistanceMeters(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// IsNear reports whether pos is within thresholdM meters of target.
func IsNear(pos, target Coordinate, thresholdM float64) bool {
	return DistanceMeters(pos, target) <= thresholdM
}
