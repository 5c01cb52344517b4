package tracking

import (
	"time"

	"backend-storywalk/internal/narration"
	"backend-storywalk/internal/route"
	"backend-storywalk/internal/shared/geo"
)

// Walking MET and the default walker weight used for the calorie estimate.
// Leisure-walk accuracy, not fitness-grade.
const (
	walkingMET      = 3.5
	defaultWeightKg = 70.0
)

// Tracker consumes a stream of position samples for one walk, accumulates
// traveled distance, detects checkpoint arrival and trip completion.
//
// It does no I/O and is not safe for concurrent use; callers serialize
// samples, mirroring the single event stream the browser delivers.
type Tracker struct {
	geom        route.Geometry
	checkpoints []route.Checkpoint
	seq         *narration.Sequencer

	startTime    time.Time
	lastPosition *geo.Coordinate
	traveledM    float64

	finished bool
	summary  Summary
}

func NewTracker(geom route.Geometry, checkpoints []route.Checkpoint, seq *narration.Sequencer, startTime time.Time) *Tracker {
	return &Tracker{
		geom:        geom,
		checkpoints: checkpoints,
		seq:         seq,
		startTime:   startTime,
	}
}

// Observe ingests one position sample. It returns the checkpoints newly
// reached by this sample and, when the walk just completed, its summary.
// Samples after completion are ignored.
//
// Distance accumulates as the raw haversine delta between consecutive
// samples; no smoothing or outlier rejection.
func (t *Tracker) Observe(pos geo.Coordinate, at time.Time) ([]route.Checkpoint, *Summary) {
	if t.finished {
		return nil, nil
	}

	if t.lastPosition != nil {
		t.traveledM += geo.DistanceMeters(*t.lastPosition, pos)
	}
	p := pos
	t.lastPosition = &p

	var reached []route.Checkpoint
	for _, cp := range t.checkpoints {
		if t.seq.Completed(cp.Index) {
			continue
		}
		if geo.IsNear(pos, cp.Position, geo.ArrivalThresholdM) {
			t.seq.OnCheckpointReached(cp.Index)
			reached = append(reached, cp)
		}
	}

	atDestination := geo.IsNear(pos, t.geom.Destination(), geo.ArrivalThresholdM)
	allCheckpoints := len(t.checkpoints) > 0 && t.seq.CompletedCount() >= len(t.checkpoints)
	if atDestination || allCheckpoints {
		s := t.finalize(at)
		return reached, &s
	}
	return reached, nil
}

// ForceEnd finalizes the walk from whatever state exists. Ending an already
// finished walk returns the original summary.
func (t *Tracker) ForceEnd(at time.Time) Summary {
	if t.finished {
		return t.summary
	}
	return t.finalize(at)
}

func (t *Tracker) Finished() bool {
	return t.finished
}

func (t *Tracker) Progress() Progress {
	return Progress{
		TraveledDistanceM:    t.traveledM,
		CurrentChapter:       t.seq.Current(),
		CheckpointsCompleted: t.seq.CompletedCount(),
		TotalCheckpoints:     len(t.checkpoints),
		Finished:             t.finished,
	}
}

func (t *Tracker) finalize(at time.Time) Summary {
	duration := at.Sub(t.startTime)
	t.summary = Summary{
		StartTime:            t.startTime,
		EndTime:              at,
		EstimatedDistanceM:   t.geom.DistanceMeters,
		ActualDistanceM:      t.traveledM,
		EstimatedDurationSec: t.geom.DurationSeconds,
		ActualDurationSec:    duration.Seconds(),
		CheckpointsCompleted: t.seq.CompletedCount(),
		TotalCheckpoints:     len(t.checkpoints),
		EstimatedCalories:    walkingMET * defaultWeightKg * duration.Hours(),
	}
	t.finished = true
	return t.summary
}
