package training

import (
	"fmt"
	"strconv"
	"strings"
)

type ExerciseSummary struct {
	Type          ExerciseType `json:"type"`
	TotalSets     int          `json:"totalSets"`
	CompletedSets int          `json:"completedSets"`

	// weight based
	TotalVolume float64 `json:"totalVolume,omitempty"`
	MaxWeight   float64 `json:"maxWeight,omitempty"`

	// time based, seconds
	TotalTime     int     `json:"totalTime,omitempty"`
	MaxDuration   int     `json:"maxDuration,omitempty"`
	TotalDistance float64 `json:"totalDistance,omitempty"`
}

func (e *Exercise) Summary() ExerciseSummary {
	summary := ExerciseSummary{
		Type:      e.Type,
		TotalSets: len(e.Sets),
	}
	for _, s := range e.Sets {
		if s.Completed {
			summary.CompletedSets++
		}
		switch {
		case e.Type == WeightBased && s.IsWeightBased():
			summary.TotalVolume += s.Weight * float64(s.Repetitions)
			if s.Weight > summary.MaxWeight {
				summary.MaxWeight = s.Weight
			}
		case e.Type == TimeBased && s.IsTimeBased():
			summary.TotalTime += s.Duration
			if s.Duration > summary.MaxDuration {
				summary.MaxDuration = s.Duration
			}
			if s.Distance != nil {
				summary.TotalDistance += *s.Distance
			}
		}
	}
	return summary
}

// FormatDuration renders seconds as M:SS, e.g. 150 -> "2:30".
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ParseDuration accepts either "M:SS" or a plain number of seconds.
func ParseDuration(duration string) (int, error) {
	duration = strings.TrimSpace(duration)
	if minutesStr, secondsStr, ok := strings.Cut(duration, ":"); ok {
		minutes, err := strconv.Atoi(minutesStr)
		if err != nil {
			return 0, fmt.Errorf("parse minutes %q: %w", minutesStr, err)
		}
		seconds, err := strconv.Atoi(secondsStr)
		if err != nil {
			return 0, fmt.Errorf("parse seconds %q: %w", secondsStr, err)
		}
		return minutes*60 + seconds, nil
	}
	seconds, err := strconv.Atoi(duration)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", duration, err)
	}
	return seconds, nil
}
