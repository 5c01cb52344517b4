package story

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	storyCachePrefix = "cache:story:"
	storyCacheTTL    = 24 * time.Hour
)

// Cache stores generated stories in Redis keyed by the walk parameters, so
// replanning the same walk does not burn another generation request.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Key derives the cache key from origin, destination and checkpoint count.
func Key(req GenerateRequest) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%f,%f|%f,%f|%d",
		req.Origin.Lat, req.Origin.Lng,
		req.Destination.Lat, req.Destination.Lng,
		len(req.CheckpointLabels))))
	return storyCachePrefix + hex.EncodeToString(sum[:16])
}

// Get returns the cached story, or nil on miss.
func (c *Cache) Get(ctx context.Context, key string) (*Story, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var s Story
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Cache) Set(ctx context.Context, key string, s Story) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, storyCacheTTL).Err()
}
