package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/training"
)

const (
	opAddExercise    = "add_exercise"
	opUpdateExercise = "update_exercise"
	opRemoveExercise = "remove_exercise"
)

// AddExercise appends ex to the training. Missing ids and creation times
// are filled in.
func (s *Store) AddExercise(ctx context.Context, trainingID string, ex training.Exercise) (added training.Exercise, err error) {
	err = s.mutate(ctx, opAddExercise, func(now time.Time) error {
		ti := s.trainingIndex(trainingID)
		if ti < 0 {
			return fmt.Errorf("%w: %s", training.ErrTrainingNotFound, trainingID)
		}

		ex = ex.Clone()
		s.prepareExercise(&ex, now)
		if err := training.ValidateExercise(ex); err != nil {
			return err
		}
		if err := s.storedIDs(-1, -1).claim(ex); err != nil {
			return err
		}

		s.trainings[ti].Exercises = append(s.trainings[ti].Exercises, ex)
		added = ex.Clone()
		return nil
	})
	return added, err
}

// UpdateExercise replaces the exercise with the same id, wherever it is.
func (s *Store) UpdateExercise(ctx context.Context, ex training.Exercise) error {
	return s.mutate(ctx, opUpdateExercise, func(now time.Time) error {
		ti, ei := s.exerciseIndex(ex.ID)
		if ei < 0 {
			return fmt.Errorf("%w: %s", training.ErrExerciseNotFound, ex.ID)
		}

		ex = ex.Clone()
		if ex.CreatedAt.IsZero() {
			ex.CreatedAt = s.trainings[ti].Exercises[ei].CreatedAt
		}
		s.prepareExercise(&ex, now)
		if err := training.ValidateExercise(ex); err != nil {
			return err
		}
		if err := s.storedIDs(ti, ei).claim(ex); err != nil {
			return err
		}

		s.trainings[ti].Exercises[ei] = ex
		return nil
	})
}

func (s *Store) RemoveExercise(ctx context.Context, exerciseID string) error {
	return s.mutate(ctx, opRemoveExercise, func(time.Time) error {
		ti, ei := s.exerciseIndex(exerciseID)
		if ei < 0 {
			return fmt.Errorf("%w: %s", training.ErrExerciseNotFound, exerciseID)
		}
		s.trainings[ti].Exercises = slices.Delete(s.trainings[ti].Exercises, ei, ei+1)
		return nil
	})
}

func (s *Store) FindExercise(exerciseID string) (training.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti, ei := s.exerciseIndex(exerciseID)
	if ei < 0 {
		return training.Exercise{}, fmt.Errorf("%w: %s", training.ErrExerciseNotFound, exerciseID)
	}
	return s.trainings[ti].Exercises[ei].Clone(), nil
}

func (s *Store) FindTrainingForExercise(exerciseID string) (training.Training, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti, ei := s.exerciseIndex(exerciseID)
	if ei < 0 {
		return training.Training{}, fmt.Errorf("%w: %s", training.ErrExerciseNotFound, exerciseID)
	}
	return s.trainings[ti].Clone(), nil
}

func (s *Store) ExerciseSummary(exerciseID string) (training.ExerciseSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti, ei := s.exerciseIndex(exerciseID)
	if ei < 0 {
		return training.ExerciseSummary{}, fmt.Errorf("%w: %s", training.ErrExerciseNotFound, exerciseID)
	}
	return s.trainings[ti].Exercises[ei].Summary(), nil
}

// exerciseIndex returns the training and exercise positions, ei is -1 when
// the exercise is not found.
func (s *Store) exerciseIndex(exerciseID string) (ti, ei int) {
	if exerciseID == "" {
		return -1, -1
	}
	for ti = range s.trainings {
		if ei = s.trainings[ti].ExerciseIndex(exerciseID); ei >= 0 {
			return ti, ei
		}
	}
	return -1, -1
}

func (s *Store) prepareExercise(ex *training.Exercise, now time.Time) {
	if ex.ID == "" {
		ex.ID = s.newID()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = now
	}
	if ex.Sets == nil {
		ex.Sets = []training.WorkoutSet{}
	}
	for i := range ex.Sets {
		s.prepareSet(&ex.Sets[i], now)
	}
}
