package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"backend-storywalk/internal/shared/geo"
)

var (
	// ErrAddressNotFound means the geocoder returned no match.
	ErrAddressNotFound = errors.New("address not found")
	// ErrProvider covers transport and HTTP failures from the geocoder.
	ErrProvider = errors.New("geocoder error")
)

// Client talks to a Nominatim-compatible geocoding service.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "storywalk/1.0",
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Forward resolves a free-form address into a coordinate.
func (c *Client) Forward(ctx context.Context, address string) (geo.Coordinate, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(address))

	var results []searchResult
	if err := c.getJSON(ctx, endpoint, &results); err != nil {
		return geo.Coordinate{}, err
	}
	if len(results) == 0 {
		return geo.Coordinate{}, ErrAddressNotFound
	}

	lat, err1 := strconv.ParseFloat(results[0].Lat, 64)
	lng, err2 := strconv.ParseFloat(results[0].Lon, 64)
	if err1 != nil || err2 != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: bad coordinates in response", ErrProvider)
	}
	return geo.Coordinate{Lat: lat, Lng: lng}, nil
}

// Reverse resolves a coordinate into a display address.
func (c *Client) Reverse(ctx context.Context, pos geo.Coordinate) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", c.baseURL, pos.Lat, pos.Lng)

	var result searchResult
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return "", err
	}
	if result.DisplayName == "" {
		return "", ErrAddressNotFound
	}
	return result.DisplayName, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	// Nominatim requires an identifying user agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrProvider, err)
	}
	return nil
}
