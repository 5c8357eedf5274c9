package migration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/training"
)

// Config holds the heuristics used to decide whether a legacy exercise was
// time based. The decision is not reversible once the migrated snapshot has
// been written back, so the thresholds are configurable.
type Config struct {
	TimeBasedKeywords []string `toml:"time_based_keywords" yaml:"time_based_keywords"`
	// MinAvgWeight: below this average legacy weight an exercise is time based
	MinAvgWeight float64 `toml:"min_avg_weight" yaml:"min_avg_weight"`
	// MaxAvgReps: above this average legacy "repetitions" value (then seconds)
	// an exercise is time based
	MaxAvgReps float64 `toml:"max_avg_reps" yaml:"max_avg_reps"`
}

func DefaultConfig() Config {
	return Config{
		TimeBasedKeywords: []string{
			"plank",
			"planking",
			"running",
			"bieg",
			"jogging",
			"cycling",
			"rower",
			"walking",
			"chodzenie",
			"swimming",
			"pływanie",
			"hold",
			"trzymanie",
			"wall sit",
			"przysiad przy ścianie",
			"bridge",
			"mostek",
		},
		MinAvgWeight: 5,
		MaxAvgReps:   60,
	}
}

type Report struct {
	Trainings int `json:"trainings"`
	Exercises int `json:"exercises"`
	Sets      int `json:"sets"`
}

func (r Report) Changed() bool {
	return r.Trainings > 0
}

type Migrator struct {
	config Config
	now    func() time.Time
	newID  func() string
}

type Option func(*Migrator)

func WithClock(now func() time.Time) Option {
	return func(m *Migrator) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Migrator) { m.newID = newID }
}

func New(config Config, opts ...Option) *Migrator {
	m := &Migrator{
		config: config,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  training.NewID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LegacySet is one entry of a legacy exercise "repetitions" array.
type LegacySet struct {
	Repetitions float64 `json:"repetitions"`
	Weight      float64 `json:"weight"`
}

type legacyExercise struct {
	ExerciseName string      `json:"exerciseName"`
	Repetitions  []LegacySet `json:"repetitions"`
}

// persistedEnvelope is the shape written by the older web client, where the
// snapshot lives under "state" next to a store version.
type persistedEnvelope struct {
	State   *json.RawMessage `json:"state"`
	Version json.RawMessage  `json:"version,omitempty"`
}

type rawSnapshot struct {
	Trainings        []json.RawMessage `json:"trainings"`
	ActiveTrainingID string            `json:"activeTrainingId"`
}

// Migrate upgrades every legacy shaped training found in the raw snapshot.
// When nothing needs migration, raw is returned as is, which makes repeated
// runs no-ops.
func (m *Migrator) Migrate(raw []byte) ([]byte, Report, error) {
	var report Report

	snapshot, wrapped, err := readSnapshot(raw)
	if err != nil {
		return nil, report, err
	}

	migrated := make([]json.RawMessage, len(snapshot.Trainings))
	for i, rawTraining := range snapshot.Trainings {
		needs, err := NeedsMigration(rawTraining)
		if err != nil {
			return nil, report, fmt.Errorf("training %d: %w", i, err)
		}
		if !needs {
			migrated[i] = rawTraining
			continue
		}

		t, exercises, sets, err := m.migrateTraining(rawTraining)
		if err != nil {
			return nil, report, fmt.Errorf("migrate training %d: %w", i, err)
		}
		data, err := json.Marshal(t)
		if err != nil {
			return nil, report, fmt.Errorf("marshal migrated training %s: %w", t.ID, err)
		}

		migrated[i] = data
		report.Trainings++
		report.Exercises += exercises
		report.Sets += sets
	}

	if !report.Changed() && !wrapped {
		return raw, report, nil
	}

	snapshot.Trainings = migrated
	if snapshot.Trainings == nil {
		snapshot.Trainings = []json.RawMessage{}
	}
	out, err := json.Marshal(snapshot)
	if err != nil {
		return nil, report, fmt.Errorf("marshal migrated snapshot: %w", err)
	}
	return out, report, nil
}

// readSnapshot accepts a snapshot object, the older client's {"state": ...}
// envelope or a bare array of trainings. wrapped is true for the latter two
// since their layout differs from the one written back.
func readSnapshot(raw []byte) (_ rawSnapshot, wrapped bool, _ error) {
	var snapshot rawSnapshot

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &snapshot.Trainings); err != nil {
			return snapshot, false, fmt.Errorf("unmarshal trainings: %w", err)
		}
		return snapshot, true, nil
	}

	var envelope persistedEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return snapshot, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if envelope.State != nil {
		if err := json.Unmarshal(*envelope.State, &snapshot); err != nil {
			return snapshot, false, fmt.Errorf("unmarshal snapshot state: %w", err)
		}
		return snapshot, true, nil
	}

	if err := json.Unmarshal(trimmed, &snapshot); err != nil {
		return snapshot, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snapshot, false, nil
}

// NeedsMigration reports whether at least one exercise of the raw training
// still has the legacy "repetitions" array and no "sets".
func NeedsMigration(rawTraining json.RawMessage) (bool, error) {
	var t struct {
		Exercises []map[string]json.RawMessage `json:"exercises"`
	}
	if err := json.Unmarshal(rawTraining, &t); err != nil {
		return false, fmt.Errorf("unmarshal training: %w", err)
	}
	for _, ex := range t.Exercises {
		if isLegacyExercise(ex) {
			return true, nil
		}
	}
	return false, nil
}

func isLegacyExercise(fields map[string]json.RawMessage) bool {
	reps, hasReps := fields["repetitions"]
	if !hasReps {
		return false
	}
	if _, hasSets := fields["sets"]; hasSets {
		return false
	}
	reps = bytes.TrimSpace(reps)
	return len(reps) > 0 && reps[0] == '['
}

func (m *Migrator) migrateTraining(rawTraining json.RawMessage) (_ training.Training, exercises, sets int, _ error) {
	var head struct {
		ID        string                       `json:"id"`
		Date      time.Time                    `json:"date"`
		Name      string                       `json:"name"`
		Notes     string                       `json:"notes"`
		StartTime *time.Time                   `json:"startTime"`
		EndTime   *time.Time                   `json:"endTime"`
		Exercises []map[string]json.RawMessage `json:"exercises"`
	}
	if err := json.Unmarshal(rawTraining, &head); err != nil {
		return training.Training{}, 0, 0, fmt.Errorf("unmarshal training: %w", err)
	}

	t := training.Training{
		ID:        head.ID,
		Date:      head.Date,
		Name:      head.Name,
		Notes:     head.Notes,
		StartTime: head.StartTime,
		EndTime:   head.EndTime,
		Exercises: make([]training.Exercise, 0, len(head.Exercises)),
		// sessions recorded by the old client were all finished ones
		Completed: true,
	}

	for _, fields := range head.Exercises {
		rawExercise, err := json.Marshal(fields)
		if err != nil {
			return t, 0, 0, err
		}

		if !isLegacyExercise(fields) {
			var current training.Exercise
			if err := json.Unmarshal(rawExercise, &current); err != nil {
				return t, 0, 0, fmt.Errorf("unmarshal exercise: %w", err)
			}
			t.Exercises = append(t.Exercises, current)
			continue
		}

		var legacy legacyExercise
		if err := json.Unmarshal(rawExercise, &legacy); err != nil {
			return t, 0, 0, fmt.Errorf("unmarshal legacy exercise: %w", err)
		}
		ex := m.migrateExercise(legacy)
		t.Exercises = append(t.Exercises, ex)
		exercises++
		sets += len(ex.Sets)
	}

	return t, exercises, sets, nil
}

func (m *Migrator) migrateExercise(legacy legacyExercise) training.Exercise {
	exType := m.InferType(legacy.ExerciseName, legacy.Repetitions)
	now := m.now()

	ex := training.Exercise{
		ID:           m.newID(),
		ExerciseName: legacy.ExerciseName,
		Type:         exType,
		Sets:         make([]training.WorkoutSet, 0, len(legacy.Repetitions)),
		CreatedAt:    now,
	}

	for _, old := range legacy.Repetitions {
		s := training.WorkoutSet{
			ID:        m.newID(),
			Kind:      exType,
			CreatedAt: now,
			Completed: true,
		}
		if exType == training.TimeBased {
			s.Duration = int(old.Repetitions)
			if old.Weight > 0 {
				distance := old.Weight
				s.Distance = &distance
			}
		} else {
			s.Repetitions = int(old.Repetitions)
			s.Weight = old.Weight
		}
		ex.Sets = append(ex.Sets, s)
	}

	return ex
}

// InferType guesses the exercise type of a legacy exercise, first match wins:
// a known time based name, a low average weight, a high average rep count
// (then read as seconds). Everything else is weight based.
func (m *Migrator) InferType(exerciseName string, sets []LegacySet) training.ExerciseType {
	if m.isTypicallyTimeBased(exerciseName) {
		return training.TimeBased
	}
	if len(sets) == 0 {
		return training.WeightBased
	}

	var totalWeight, totalReps float64
	for _, s := range sets {
		totalWeight += s.Weight
		totalReps += s.Repetitions
	}
	if totalWeight/float64(len(sets)) < m.config.MinAvgWeight {
		return training.TimeBased
	}
	if totalReps/float64(len(sets)) > m.config.MaxAvgReps {
		return training.TimeBased
	}

	return training.WeightBased
}

func (m *Migrator) isTypicallyTimeBased(exerciseName string) bool {
	name := strings.ToLower(exerciseName)
	for _, keyword := range m.config.TimeBasedKeywords {
		if keyword != "" && strings.Contains(name, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
