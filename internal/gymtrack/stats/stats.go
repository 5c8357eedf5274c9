package stats

import (
	"sort"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/training"
)

type PersonalRecord struct {
	// Value is a weight (kg) for weight based exercises, or a duration (seconds)
	Value      float64   `json:"value"`
	Date       time.Time `json:"date"`
	TrainingID string    `json:"trainingId"`
}

// ExerciseStats is derived from the training history and never stored as
// a source of truth.
type ExerciseStats struct {
	ExerciseName     string                `json:"exerciseName"`
	Type             training.ExerciseType `json:"type"`
	LastMaxWeight    *float64              `json:"lastMaxWeight,omitempty"`
	LastMaxDuration  *int                  `json:"lastMaxDuration,omitempty"`
	LastTrainingDate *time.Time            `json:"lastTrainingDate,omitempty"`
	TotalVolume      float64               `json:"totalVolume"`
	PersonalRecord   *PersonalRecord       `json:"personalRecord,omitempty"`
}

// Compute derives the stats for exerciseName from trainings, which are expected
// in creation order (the last one is the most recent). Names are matched case
// insensitively and only the first matching exercise of a training counts.
// Returns nil if no training contains the exercise.
func Compute(trainings []training.Training, exerciseName string) *ExerciseStats {
	if training.NormalizeName(exerciseName) == "" {
		return nil
	}

	var stats *ExerciseStats
	for i := len(trainings) - 1; i >= 0; i-- {
		t := &trainings[i]
		ex := findExercise(t, exerciseName)
		if ex == nil {
			continue
		}

		if stats == nil {
			date := t.Date
			stats = &ExerciseStats{
				ExerciseName:     ex.ExerciseName,
				LastTrainingDate: &date,
			}
		}
		// going back in time, so the type ends up being the one of the oldest exercise
		stats.Type = ex.Type

		if w, ok := maxWeight(ex.Sets); ok && stats.LastMaxWeight == nil {
			stats.LastMaxWeight = &w
		}
		if d, ok := maxDuration(ex.Sets); ok && stats.LastMaxDuration == nil {
			stats.LastMaxDuration = &d
		}

		for _, s := range ex.Sets {
			var value float64
			switch s.Kind {
			case training.WeightBased:
				value = s.Weight
				stats.TotalVolume += s.Weight * float64(s.Repetitions)
			case training.TimeBased:
				value = float64(s.Duration)
				stats.TotalVolume += float64(s.Duration)
			default:
				continue
			}

			// strictly greater: on ties the most recent occurrence is kept
			if stats.PersonalRecord == nil || value > stats.PersonalRecord.Value {
				stats.PersonalRecord = &PersonalRecord{
					Value:      value,
					Date:       t.Date,
					TrainingID: t.ID,
				}
			}
		}
	}

	return stats
}

// LastMaxWeight returns the max weight of the most recent training (skipping
// excludeTrainingID) where the exercise was done with a non zero weight.
// ok is false when there is no such training.
func LastMaxWeight(trainings []training.Training, exerciseName, excludeTrainingID string) (_ float64, ok bool) {
	for i := len(trainings) - 1; i >= 0; i-- {
		t := &trainings[i]
		if excludeTrainingID != "" && t.ID == excludeTrainingID {
			continue
		}
		ex := findExercise(t, exerciseName)
		if ex == nil {
			continue
		}
		if w, found := maxWeight(ex.Sets); found && w > 0 {
			return w, true
		}
	}
	return 0, false
}

// All computes the stats of every distinct exercise name found in trainings,
// sorted by normalized name.
func All(trainings []training.Training) []ExerciseStats {
	seen := make(map[string]bool)
	var names []string
	for _, t := range trainings {
		for _, ex := range t.Exercises {
			n := training.NormalizeName(ex.ExerciseName)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)

	all := make([]ExerciseStats, 0, len(names))
	for _, n := range names {
		if s := Compute(trainings, n); s != nil {
			all = append(all, *s)
		}
	}
	return all
}

// LastSets returns the sets of the most recent occurrence of the exercise.
func LastSets(trainings []training.Training, exerciseName string) []training.WorkoutSet {
	for i := len(trainings) - 1; i >= 0; i-- {
		if ex := findExercise(&trainings[i], exerciseName); ex != nil && len(ex.Sets) > 0 {
			return ex.Sets
		}
	}
	return nil
}

func findExercise(t *training.Training, exerciseName string) *training.Exercise {
	for i := range t.Exercises {
		if t.Exercises[i].MatchesName(exerciseName) {
			return &t.Exercises[i]
		}
	}
	return nil
}

func maxWeight(sets []training.WorkoutSet) (float64, bool) {
	var top float64
	found := false
	for _, s := range sets {
		if !s.IsWeightBased() {
			continue
		}
		if !found || s.Weight > top {
			top = s.Weight
		}
		found = true
	}
	return top, found
}

func maxDuration(sets []training.WorkoutSet) (int, bool) {
	var top int
	found := false
	for _, s := range sets {
		if !s.IsTimeBased() {
			continue
		}
		if !found || s.Duration > top {
			top = s.Duration
		}
		found = true
	}
	return top, found
}
