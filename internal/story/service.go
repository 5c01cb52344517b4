package story

import (
	"context"
	"encoding/json"
	"log"

	"backend-storywalk/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db       db.Querier
	gen      Generator
	fallback Generator
	cache    *Cache
}

func NewService(database db.Querier, gen Generator, cache *Cache) *Service {
	return &Service{
		db:       database,
		gen:      gen,
		fallback: NewFallback(),
		cache:    cache,
	}
}

// GenerateStory resolves a story for the walk: cache first, then the remote
// generator, then the deterministic fallback. Generation failures never
// propagate; the walk always gets a story.
func (s *Service) GenerateStory(ctx context.Context, req GenerateRequest) (Story, error) {
	key := Key(req)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("story cache read error: %v", err)
	} else if cached != nil {
		cached.Source = "cache"
		return *cached, nil
	}

	result, err := s.gen.Generate(ctx, req)
	if err != nil {
		log.Printf("story generation failed, using fallback: %v", err)
		result, _ = s.fallback.Generate(ctx, req)
	}

	result.ID = uuid.NewString()
	if err := s.save(ctx, &result); err != nil {
		// A failed save must not block the walk.
		log.Printf("story save error: %v", err)
	}
	if err := s.cache.Set(ctx, key, result); err != nil {
		log.Printf("story cache write error: %v", err)
	}
	return result, nil
}

func (s *Service) save(ctx context.Context, result *Story) error {
	if s.db == nil {
		return nil
	}
	chapters, err := json.Marshal(result.Chapters)
	if err != nil {
		return err
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO stories (id, title, chapters, source)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, result.ID, result.Title, chapters, result.Source)
	return row.Scan(&result.CreatedAt)
}

func (s *Service) GetStory(ctx context.Context, id string) (Story, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, chapters, source, created_at
		FROM stories WHERE id=$1
	`, id)

	var result Story
	var chapters []byte
	if err := row.Scan(&result.ID, &result.Title, &chapters, &result.Source, &result.CreatedAt); err != nil {
		return Story{}, err
	}
	if err := json.Unmarshal(chapters, &result.Chapters); err != nil {
		return Story{}, err
	}
	return result, nil
}
