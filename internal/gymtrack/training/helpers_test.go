package training_test

import (
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/training"
)

func newWeightSet(repetitions int, weight float64) training.WorkoutSet {
	return training.WorkoutSet{
		ID:          training.NewID(),
		Kind:        training.WeightBased,
		CreatedAt:   time.Now().UTC(),
		Repetitions: repetitions,
		Weight:      weight,
	}
}

func newTimeSet(duration int, distance *float64, intensity string) training.WorkoutSet {
	return training.WorkoutSet{
		ID:        training.NewID(),
		Kind:      training.TimeBased,
		CreatedAt: time.Now().UTC(),
		Duration:  duration,
		Distance:  distance,
		Intensity: intensity,
	}
}
