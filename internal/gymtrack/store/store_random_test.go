package store_test

import (
	"context"
	"testing"

	"github.com/2beens/gymtrack/internal/gymtrack/store"
	"github.com/2beens/gymtrack/internal/gymtrack/training"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exerciseNames = []string{"Squat", "Bench Press", "Deadlift", "Running", "Plank"}

// TestStore_RandomOperations runs random operation sequences and checks the
// aggregate invariants after every step.
func TestStore_RandomOperations(t *testing.T) {
	ctx := context.Background()

	for seed := int64(1); seed <= 5; seed++ {
		faker := gofakeit.New(seed)
		s := store.New(nil, newMemoryRepo())
		var knownIDs []string

		for step := 0; step < 300; step++ {
			trainings := s.Trainings()
			activeBefore := s.ActiveTraining()

			switch faker.IntRange(0, 8) {
			case 0:
				s.StartNewTraining(ctx)
				if activeBefore != nil && !activeBefore.Completed {
					prev, err := s.Training(activeBefore.ID)
					require.NoError(t, err)
					assert.True(t, prev.Completed)
				}
				assertCompletedOnly(t, trainings, s.Trainings(), activeIDOf(activeBefore))
			case 1:
				// reuse an id now and then to hit the duplicate check
				id := ""
				if len(knownIDs) > 0 && faker.Bool() {
					id = knownIDs[faker.IntRange(0, len(knownIDs)-1)]
				}
				added, err := s.AddTraining(ctx, training.Training{ID: id, Name: faker.Word()})
				if err == nil {
					knownIDs = append(knownIDs, added.ID)
				} else {
					assert.ErrorIs(t, err, training.ErrDuplicateID)
				}
			case 2:
				if len(trainings) > 0 {
					victim := trainings[faker.IntRange(0, len(trainings)-1)]
					require.NoError(t, s.RemoveTraining(ctx, victim.ID))
				}
			case 3, 4:
				if len(trainings) > 0 {
					target := trainings[faker.IntRange(0, len(trainings)-1)]
					name := exerciseNames[faker.IntRange(0, len(exerciseNames)-1)]
					_, err := s.AddExercise(ctx, target.ID, randomExercise(faker, name))
					require.NoError(t, err)
				}
			case 5:
				if setID := randomSetID(faker, trainings); setID != "" {
					require.NoError(t, s.RemoveSet(ctx, setID))
				}
			case 6:
				if len(trainings) > 0 {
					s.SetActiveTraining(ctx, trainings[faker.IntRange(0, len(trainings)-1)].ID)
				} else {
					s.SetActiveTraining(ctx, faker.UUID())
				}
			case 7:
				if len(trainings) > 0 {
					require.NoError(t, s.FinishTraining(ctx, trainings[faker.IntRange(0, len(trainings)-1)].ID))
				}
			case 8:
				_ = s.AllExerciseStats()
				_, _ = s.LastMaxWeight(exerciseNames[faker.IntRange(0, len(exerciseNames)-1)], "")
			}

			assertNoDuplicateIDs(t, s.Trainings())
		}
	}
}

func randomExercise(faker *gofakeit.Faker, name string) training.Exercise {
	exType := training.WeightBased
	if name == "Running" || name == "Plank" {
		exType = training.TimeBased
	}
	ex := training.Exercise{ExerciseName: name, Type: exType}
	for i := faker.IntRange(1, 4); i > 0; i-- {
		if exType == training.WeightBased {
			ex.Sets = append(ex.Sets, weightSet(faker.IntRange(1, 12), float64(faker.IntRange(0, 200))))
		} else {
			ex.Sets = append(ex.Sets, timeSet(faker.IntRange(10, 1800)))
		}
	}
	return ex
}

func randomSetID(faker *gofakeit.Faker, trainings []training.Training) string {
	var ids []string
	for _, tr := range trainings {
		for _, ex := range tr.Exercises {
			for _, set := range ex.Sets {
				ids = append(ids, set.ID)
			}
		}
	}
	if len(ids) == 0 {
		return ""
	}
	return ids[faker.IntRange(0, len(ids)-1)]
}

func activeIDOf(t *training.Training) string {
	if t == nil {
		return ""
	}
	return t.ID
}

// assertCompletedOnly checks that no training other than activeID changed
// its completed flag.
func assertCompletedOnly(t *testing.T, before, after []training.Training, activeID string) {
	t.Helper()
	completedBefore := make(map[string]bool, len(before))
	for _, tr := range before {
		completedBefore[tr.ID] = tr.Completed
	}
	for _, tr := range after {
		was, existed := completedBefore[tr.ID]
		if !existed || tr.ID == activeID {
			continue
		}
		assert.Equal(t, was, tr.Completed, "training %s changed", tr.ID)
	}
}

func assertNoDuplicateIDs(t *testing.T, trainings []training.Training) {
	t.Helper()
	seen := make(map[string]bool, len(trainings))
	seenExercises := map[string]bool{}
	seenSets := map[string]bool{}
	for _, tr := range trainings {
		require.False(t, seen[tr.ID], "duplicate training id %s", tr.ID)
		seen[tr.ID] = true
		for _, ex := range tr.Exercises {
			require.False(t, seenExercises[ex.ID], "duplicate exercise id %s", ex.ID)
			seenExercises[ex.ID] = true
			for _, set := range ex.Sets {
				require.False(t, seenSets[set.ID], "duplicate set id %s", set.ID)
				seenSets[set.ID] = true
			}
		}
	}
}
