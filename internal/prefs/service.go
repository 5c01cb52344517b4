package prefs

import (
	"context"
	"encoding/json"

	"backend-storywalk/internal/narration"

	"github.com/redis/go-redis/v9"
)

const prefsKeyPrefix = "prefs:device:"

// Preferences are the playback settings a device keeps between walks.
type Preferences struct {
	Voice  string  `json:"voice"`
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
}

// DefaultPreferences returns the playback settings used before a device has
// saved any.
func DefaultPreferences() Preferences {
	return Preferences{Rate: 1, Pitch: 1, Volume: 1}
}

// NarrationOptions maps the saved preferences onto playback options for a
// narration.Narrator.
func (p Preferences) NarrationOptions() narration.Options {
	return narration.Options{
		Voice:  p.Voice,
		Rate:   p.Rate,
		Pitch:  p.Pitch,
		Volume: p.Volume,
	}
}

type Service struct {
	redis *redis.Client
}

func NewService(client *redis.Client) *Service {
	return &Service{redis: client}
}

// Get returns the device's saved preferences, or defaults on miss.
func (s *Service) Get(ctx context.Context, deviceID string) (Preferences, error) {
	data, err := s.redis.Get(ctx, prefsKeyPrefix+deviceID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return DefaultPreferences(), nil
		}
		return Preferences{}, err
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

// Set persists the device's preferences. No TTL; preferences live until
// overwritten.
func (s *Service) Set(ctx context.Context, deviceID string, p Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, prefsKeyPrefix+deviceID, data, 0).Err()
}
