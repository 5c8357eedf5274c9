package stats

import (
	"math"

	"github.com/2beens/gymtrack/internal/gymtrack/training"
)

const (
	DefaultSuggestedDuration = 60 // seconds
	similarRepsRange         = 2
	recentDurationSets       = 3
)

// SuggestWeight picks the weight of the last previous set within ±2 reps of
// targetReps, falling back to the weight of the last set. Returns 0 when there
// are no weight based sets.
func SuggestWeight(previousSets []training.WorkoutSet, targetReps int) float64 {
	var weightSets []training.WorkoutSet
	for _, s := range previousSets {
		if s.IsWeightBased() {
			weightSets = append(weightSets, s)
		}
	}
	if len(weightSets) == 0 {
		return 0
	}

	for i := len(weightSets) - 1; i >= 0; i-- {
		diff := weightSets[i].Repetitions - targetReps
		if diff >= -similarRepsRange && diff <= similarRepsRange {
			return weightSets[i].Weight
		}
	}

	return weightSets[len(weightSets)-1].Weight
}

// SuggestDuration is the rounded average of the last 3 time based sets.
func SuggestDuration(previousSets []training.WorkoutSet) int {
	var durations []int
	for _, s := range previousSets {
		if s.IsTimeBased() {
			durations = append(durations, s.Duration)
		}
	}
	if len(durations) == 0 {
		return DefaultSuggestedDuration
	}

	if len(durations) > recentDurationSets {
		durations = durations[len(durations)-recentDurationSets:]
	}
	total := 0
	for _, d := range durations {
		total += d
	}

	return int(math.Round(float64(total) / float64(len(durations))))
}
