package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"backend-storywalk/internal/shared/geo"
)

var (
	// ErrRouteNotFound means the provider could not connect origin and
	// destination with a pedestrian route.
	ErrRouteNotFound = errors.New("route not found")
	// ErrProvider covers transport and HTTP failures from the routing service.
	ErrProvider = errors.New("routing provider error")
)

// Client talks to an OSRM-compatible routing service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// osrmResponse is the subset of the OSRM route response we consume.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
		Legs []struct {
			Steps []struct {
				Maneuver struct {
					Type     string `json:"type"`
					Modifier string `json:"modifier"`
				} `json:"maneuver"`
				Name string `json:"name"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route asks the provider for a walking route through the given points and
// normalizes the response into a Geometry. This is the only place provider
// response shapes are interpreted.
func (c *Client) Route(ctx context.Context, origin, destination geo.Coordinate, waypoints []geo.Coordinate) (Geometry, []string, error) {
	var sb strings.Builder
	writeCoord := func(p geo.Coordinate) {
		fmt.Fprintf(&sb, "%f,%f", p.Lng, p.Lat)
	}
	writeCoord(origin)
	for _, w := range waypoints {
		sb.WriteByte(';')
		writeCoord(w)
	}
	sb.WriteByte(';')
	writeCoord(destination)

	url := fmt.Sprintf("%s/route/v1/foot/%s?overview=full&geometries=geojson&steps=true", c.baseURL, sb.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Geometry{}, nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Geometry{}, nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusOK {
		var body osrmResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return Geometry{}, nil, fmt.Errorf("%w: decode: %v", ErrProvider, err)
		}
		return normalize(body)
	}
	return Geometry{}, nil, fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
}

func normalize(body osrmResponse) (Geometry, []string, error) {
	if body.Code == "NoRoute" || (body.Code == "Ok" && len(body.Routes) == 0) {
		return Geometry{}, nil, ErrRouteNotFound
	}
	if body.Code != "Ok" {
		return Geometry{}, nil, fmt.Errorf("%w: code %s", ErrProvider, body.Code)
	}

	r := body.Routes[0]
	coords := make([]geo.Coordinate, 0, len(r.Geometry.Coordinates))
	for _, pair := range r.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		coords = append(coords, geo.Coordinate{Lat: pair[1], Lng: pair[0]})
	}

	var instructions []string
	for _, leg := range r.Legs {
		for _, step := range leg.Steps {
			text := step.Maneuver.Type
			if step.Maneuver.Modifier != "" {
				text += " " + step.Maneuver.Modifier
			}
			if step.Name != "" {
				text += " onto " + step.Name
			}
			instructions = append(instructions, text)
		}
	}

	return Geometry{
		Coordinates:     coords,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
	}, instructions, nil
}
