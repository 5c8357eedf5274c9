package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymtrack/internal/gymtrack/migration"
	"github.com/2beens/gymtrack/internal/gymtrack/training"
	"github.com/2beens/gymtrack/internal/persistence"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=repo_mocks_test.go -package=repo_test

type snapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type snapshotMigrator interface {
	Migrate(raw []byte) ([]byte, migration.Report, error)
}

// Repo loads and saves the whole training aggregate as one snapshot blob.
type Repo struct {
	adapter  snapshotStore
	key      string
	migrator snapshotMigrator
}

// New takes any persistence.Adapter as the snapshot store.
func New(adapter snapshotStore, key string, migrator snapshotMigrator) *Repo {
	return &Repo{
		adapter:  adapter,
		key:      key,
		migrator: migrator,
	}
}

func (r *Repo) Key() string {
	return r.key
}

// Load reads the snapshot, upgrading legacy records on the way. Migrated
// bytes are written back so the upgrade happens once. A missing key yields
// an empty snapshot.
func (r *Repo) Load(ctx context.Context) (_ *training.Snapshot, _ migration.Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", r.key))

	var report migration.Report

	raw, err := r.adapter.Get(ctx, r.key)
	if errors.Is(err, persistence.ErrKeyNotFound) {
		log.Infof("no snapshot under [%s], starting empty", r.key)
		return &training.Snapshot{Trainings: []training.Training{}}, report, nil
	}
	if err != nil {
		return nil, report, fmt.Errorf("%w: read snapshot [%s]: %w", training.ErrSerialization, r.key, err)
	}

	migrated, report, err := r.migrator.Migrate(raw)
	if err != nil {
		return nil, report, fmt.Errorf("%w: migrate snapshot [%s]: %w", training.ErrSerialization, r.key, err)
	}

	snapshot, err := training.DecodeSnapshot(migrated)
	if err != nil {
		return nil, report, err
	}

	if report.Changed() {
		log.Infof(
			"migrated %d trainings, %d exercises, %d sets from the legacy format",
			report.Trainings, report.Exercises, report.Sets,
		)
		if err := r.adapter.Set(ctx, r.key, migrated); err != nil {
			return nil, report, fmt.Errorf("%w: write migrated snapshot [%s]: %w", training.ErrSerialization, r.key, err)
		}
	}

	if id := snapshot.ActiveTrainingID; id != "" && !containsTraining(snapshot.Trainings, id) {
		// kept as is, lookups resolve it to no active training
		log.Warnf("active training [%s] not found in snapshot [%s]", id, r.key)
	}

	span.SetAttributes(attribute.Int("trainings", len(snapshot.Trainings)))
	return snapshot, report, nil
}

func (r *Repo) Save(ctx context.Context, snapshot *training.Snapshot) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("key", r.key),
		attribute.Int("trainings", len(snapshot.Trainings)),
	)

	data, err := training.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	if err := r.adapter.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("%w: write snapshot [%s]: %w", training.ErrSerialization, r.key, err)
	}
	return nil
}

func containsTraining(trainings []training.Training, id string) bool {
	for i := range trainings {
		if trainings[i].ID == id {
			return true
		}
	}
	return false
}
