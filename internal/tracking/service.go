package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"backend-storywalk/internal/db"
	"backend-storywalk/internal/narration"
	"backend-storywalk/internal/route"
	"backend-storywalk/internal/story"
	"backend-storywalk/internal/stream"

	"github.com/google/uuid"
)

// ErrWalkNotFound means the walk is unknown or no longer live.
var ErrWalkNotFound = errors.New("walk not found")

// StartRequest carries everything a walk needs: the planned geometry and
// checkpoints, and the story chapters to bind to them.
type StartRequest struct {
	DeviceID    string             `json:"device_id"`
	StoryID     string             `json:"story_id,omitempty"`
	Geometry    route.Geometry     `json:"geometry"`
	Checkpoints []route.Checkpoint `json:"checkpoints"`
	Chapters    []story.Chapter    `json:"chapters"`
}

type liveWalk struct {
	mu      sync.Mutex
	walk    Walk
	tracker *Tracker
}

type Service struct {
	db  db.Querier
	hub *stream.Hub

	mu    sync.RWMutex
	walks map[string]*liveWalk
}

func NewService(database db.Querier, hub *stream.Hub) *Service {
	return &Service{
		db:    database,
		hub:   hub,
		walks: map[string]*liveWalk{},
	}
}

// StartWalk creates the walk record and its in-memory tracker. The tracker
// lives until the walk completes or is force-ended.
func (s *Service) StartWalk(ctx context.Context, req StartRequest) (Walk, error) {
	walk := Walk{
		ID:       uuid.NewString(),
		DeviceID: req.DeviceID,
		StoryID:  req.StoryID,
		Status:   "active",
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO walks (id, device_id, story_id, status)
		VALUES ($1,$2,NULLIF($3,''),$4)
		RETURNING started_at
	`, walk.ID, walk.DeviceID, walk.StoryID, walk.Status)
	if err := row.Scan(&walk.StartedAt); err != nil {
		return Walk{}, err
	}

	seq := narration.NewSequencer()
	seq.Bind(len(req.Checkpoints), req.Chapters)

	s.mu.Lock()
	s.walks[walk.ID] = &liveWalk{
		walk:    walk,
		tracker: NewTracker(req.Geometry, req.Checkpoints, seq, walk.StartedAt),
	}
	s.mu.Unlock()

	return walk, nil
}

// AddPosition ingests one position sample for a live walk. A bad or unknown
// sample never mutates trip state; the error is surfaced to the caller.
func (s *Service) AddPosition(ctx context.Context, walkID string, pos Position) (Progress, error) {
	lw, err := s.live(walkID)
	if err != nil {
		return Progress{}, err
	}
	if pos.RecordedAt.IsZero() {
		pos.RecordedAt = time.Now()
	}

	lw.mu.Lock()
	reached, summary := lw.tracker.Observe(pos.Coordinate(), pos.RecordedAt)
	progress := lw.tracker.Progress()
	lw.mu.Unlock()
	progress.WalkID = walkID

	// Position history is best effort: a failed write must not stop tracking.
	if _, err := s.db.Exec(ctx, `
		INSERT INTO walk_positions (walk_id, lat, lng, accuracy_m, recorded_at)
		VALUES ($1,$2,$3,$4,$5)
	`, walkID, pos.Lat, pos.Lng, pos.AccuracyM, pos.RecordedAt); err != nil {
		log.Printf("walk position save error: %v", err)
	}

	s.broadcast(walkID, "position", pos)
	for _, cp := range reached {
		s.broadcast(walkID, "checkpoint_reached", cp)
	}
	if summary != nil {
		s.complete(ctx, lw, *summary, pos.RecordedAt)
	}
	return progress, nil
}

// EndWalk force-finalizes a live walk, producing a summary from whatever
// state exists.
func (s *Service) EndWalk(ctx context.Context, walkID string) (Summary, error) {
	lw, err := s.live(walkID)
	if err != nil {
		return Summary{}, err
	}

	now := time.Now()
	lw.mu.Lock()
	summary := lw.tracker.ForceEnd(now)
	lw.mu.Unlock()

	s.complete(ctx, lw, summary, now)
	return summary, nil
}

// complete persists the summary, closes the walk row and retires the
// tracker. Storage failures are logged and swallowed: a failed save must not
// keep the user from the summary screen.
func (s *Service) complete(ctx context.Context, lw *liveWalk, summary Summary, endedAt time.Time) {
	summary.WalkID = lw.walk.ID
	summary.DeviceID = lw.walk.DeviceID

	if _, err := s.db.Exec(ctx, `
		UPDATE walks SET status='completed', ended_at=$2 WHERE id=$1
	`, lw.walk.ID, endedAt); err != nil {
		log.Printf("walk close error: %v", err)
	}

	if err := s.saveSummary(ctx, summary); err != nil {
		log.Printf("walk summary save error: %v", err)
	}

	s.broadcast(lw.walk.ID, "walk_completed", summary)

	s.mu.Lock()
	delete(s.walks, lw.walk.ID)
	s.mu.Unlock()
}

func (s *Service) saveSummary(ctx context.Context, summary Summary) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO walk_summaries (walk_id, device_id, start_time, end_time,
			estimated_distance_m, actual_distance_m,
			estimated_duration_sec, actual_duration_sec,
			checkpoints_completed, total_checkpoints, estimated_calories)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (walk_id) DO NOTHING
	`, summary.WalkID, summary.DeviceID, summary.StartTime, summary.EndTime,
		summary.EstimatedDistanceM, summary.ActualDistanceM,
		summary.EstimatedDurationSec, summary.ActualDurationSec,
		summary.CheckpointsCompleted, summary.TotalCheckpoints, summary.EstimatedCalories)
	return err
}

// GetSummary reads a persisted walk summary.
func (s *Service) GetSummary(ctx context.Context, walkID string) (Summary, error) {
	row := s.db.QueryRow(ctx, `
		SELECT walk_id, device_id, start_time, end_time,
		       estimated_distance_m, actual_distance_m,
		       estimated_duration_sec, actual_duration_sec,
		       checkpoints_completed, total_checkpoints, estimated_calories
		FROM walk_summaries WHERE walk_id=$1
	`, walkID)
	return scanSummary(row.Scan)
}

// History lists summaries for a device, most recent first.
func (s *Service) History(ctx context.Context, deviceID string) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT walk_id, device_id, start_time, end_time,
		       estimated_distance_m, actual_distance_m,
		       estimated_duration_sec, actual_duration_sec,
		       checkpoints_completed, total_checkpoints, estimated_calories
		FROM walk_summaries WHERE device_id=$1
		ORDER BY end_time DESC
	`, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		summary, err := scanSummary(rows.Scan)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func scanSummary(scan func(...any) error) (Summary, error) {
	var s Summary
	err := scan(&s.WalkID, &s.DeviceID, &s.StartTime, &s.EndTime,
		&s.EstimatedDistanceM, &s.ActualDistanceM,
		&s.EstimatedDurationSec, &s.ActualDurationSec,
		&s.CheckpointsCompleted, &s.TotalCheckpoints, &s.EstimatedCalories)
	return s, err
}

func (s *Service) live(walkID string) (*liveWalk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lw, ok := s.walks[walkID]
	if !ok {
		return nil, ErrWalkNotFound
	}
	return lw, nil
}

func (s *Service) broadcast(walkID, kind string, payload any) {
	if s.hub == nil {
		return
	}
	msg, err := json.Marshal(map[string]any{"type": kind, "data": payload})
	if err != nil {
		return
	}
	s.hub.Broadcast(walkID, msg)
}
