package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/stats"
	"github.com/2beens/gymtrack/internal/gymtrack/training"
	"github.com/2beens/gymtrack/internal/telemetry/metrics"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=store_test

type PersistPolicy string

const (
	// PersistEveryMutation writes the snapshot after each successful mutation.
	PersistEveryMutation PersistPolicy = "every_mutation"
	// PersistManual only marks the store dirty, Flush writes it.
	PersistManual PersistPolicy = "manual"
)

type snapshotRepo interface {
	Save(ctx context.Context, snapshot *training.Snapshot) error
}

// Store owns the training aggregate and the active training pointer. All
// access goes through its methods, guarded by a single mutex. Reads return
// deep copies.
type Store struct {
	mu               sync.Mutex
	trainings        []training.Training
	activeTrainingID string
	dirty            bool
	// trainingToRefresh is set by a mutation that completed a training
	trainingToRefresh string

	repo           snapshotRepo
	stats          *stats.Engine
	metricsManager *metrics.Manager
	persistPolicy  PersistPolicy
	now            func() time.Time
	newID          func() string
}

type Option func(*Store)

func WithPersistPolicy(policy PersistPolicy) Option {
	return func(s *Store) { s.persistPolicy = policy }
}

func WithMetrics(metricsManager *metrics.Manager) Option {
	return func(s *Store) { s.metricsManager = metricsManager }
}

func WithStatsEngine(engine *stats.Engine) Option {
	return func(s *Store) { s.stats = engine }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a store holding the loaded snapshot. A nil snapshot starts empty.
func New(snapshot *training.Snapshot, repo snapshotRepo, opts ...Option) *Store {
	s := &Store{
		trainings:     []training.Training{},
		repo:          repo,
		persistPolicy: PersistEveryMutation,
		now:           func() time.Time { return time.Now().UTC() },
		newID:         training.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.stats == nil {
		s.stats = stats.NewEngine(stats.DefaultCacheSize)
	}

	if snapshot != nil {
		s.trainings = training.CloneAll(snapshot.Trainings)
		if s.trainings == nil {
			s.trainings = []training.Training{}
		}
		s.activeTrainingID = snapshot.ActiveTrainingID
	}
	if s.metricsManager != nil {
		s.metricsManager.GaugeTrainings.Set(float64(len(s.trainings)))
	}

	return s
}

// mutate runs fn under the lock. When fn succeeds the stats cache is dropped
// and the snapshot is persisted according to the policy. fn must leave the
// aggregate untouched when it returns an error.
func (s *Store) mutate(ctx context.Context, op string, fn func(now time.Time) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store."+op)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.now()); err != nil {
		return err
	}

	s.stats.Clear()
	if s.trainingToRefresh != "" {
		s.refreshStats(s.trainingToRefresh)
		s.trainingToRefresh = ""
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterStoreMutations.With(prometheus.Labels{"op": op}).Inc()
		s.metricsManager.GaugeTrainings.Set(float64(len(s.trainings)))
	}

	s.dirty = true
	if s.persistPolicy == PersistEveryMutation {
		// the mutation stays applied in memory even if the write fails
		if err := s.persist(ctx, op); err == nil {
			s.dirty = false
		}
	}

	return nil
}

func (s *Store) persist(ctx context.Context, op string) error {
	if s.repo == nil {
		return nil
	}

	start := time.Now()
	err := s.repo.Save(ctx, s.snapshot())
	if s.metricsManager != nil {
		s.metricsManager.HistogramPersistDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		log.WithError(err).WithField("op", op).Error("persist training snapshot")
		if s.metricsManager != nil {
			s.metricsManager.CounterPersistFailures.Inc()
		}
		return err
	}

	log.Tracef("training snapshot persisted after [%s]", op)
	return nil
}

// Flush writes the current snapshot regardless of the persist policy.
func (s *Store) Flush(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.flush")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	span.SetAttributes(attribute.Bool("dirty", s.dirty))
	if err := s.persist(ctx, "flush"); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Dirty reports whether there are mutations not yet written.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Store) Snapshot() *training.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() *training.Snapshot {
	return &training.Snapshot{
		Trainings:        training.CloneAll(s.trainings),
		ActiveTrainingID: s.activeTrainingID,
	}
}

// refreshStats recomputes and caches the stats of every exercise of the
// given training, so the new records are visible right after completion.
func (s *Store) refreshStats(trainingID string) {
	ti := s.trainingIndex(trainingID)
	if ti < 0 {
		return
	}
	for _, ex := range s.trainings[ti].Exercises {
		exStats := s.stats.ExerciseStats(s.trainings, ex.ExerciseName)
		if exStats == nil || exStats.PersonalRecord == nil {
			continue
		}
		record := fmt.Sprintf("%.2f", exStats.PersonalRecord.Value)
		if exStats.Type == training.TimeBased {
			record = training.FormatDuration(int(exStats.PersonalRecord.Value))
		}
		log.Debugf(
			"stats refreshed for [%s]: personal record %s (training %s)",
			exStats.ExerciseName, record, exStats.PersonalRecord.TrainingID,
		)
	}

	hits, misses := s.stats.CacheCounts()
	log.Tracef("stats cache: %d hits, %d misses", hits, misses)
}
