package store

import (
	"github.com/2beens/gymtrack/internal/gymtrack/stats"
)

// ExerciseStats returns nil when the exercise was never done.
func (s *Store) ExerciseStats(exerciseName string) *stats.ExerciseStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.ExerciseStats(s.trainings, exerciseName)
}

func (s *Store) AllExerciseStats() []stats.ExerciseStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.All(s.trainings)
}

// LastMaxWeight skips excludeTrainingID, usually the training in progress.
// ok is false when no earlier weight was recorded.
func (s *Store) LastMaxWeight(exerciseName, excludeTrainingID string) (_ float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.LastMaxWeight(s.trainings, exerciseName, excludeTrainingID)
}

func (s *Store) PersonalRecord(exerciseName string) *stats.PersonalRecord {
	exStats := s.ExerciseStats(exerciseName)
	if exStats == nil {
		return nil
	}
	return exStats.PersonalRecord
}

func (s *Store) SuggestWeight(exerciseName string, targetReps int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.SuggestWeight(stats.LastSets(s.trainings, exerciseName), targetReps)
}

func (s *Store) SuggestDuration(exerciseName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.SuggestDuration(stats.LastSets(s.trainings, exerciseName))
}
