package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/training"
)

const (
	opAddSet    = "add_set"
	opUpdateSet = "update_set"
	opRemoveSet = "remove_set"
)

// AddSetToExercise appends set to the exercise with the given id.
func (s *Store) AddSetToExercise(ctx context.Context, exerciseID string, set training.WorkoutSet) (added training.WorkoutSet, err error) {
	err = s.mutate(ctx, opAddSet, func(now time.Time) error {
		ti, ei := s.exerciseIndex(exerciseID)
		if ei < 0 {
			return fmt.Errorf("%w: %s", training.ErrExerciseNotFound, exerciseID)
		}
		added, err = s.appendSet(&s.trainings[ti].Exercises[ei], set, now)
		return err
	})
	return added, err
}

// AddSetByName appends set to the first exercise of the training named
// exactly exerciseName.
func (s *Store) AddSetByName(ctx context.Context, trainingID, exerciseName string, set training.WorkoutSet) (added training.WorkoutSet, err error) {
	err = s.mutate(ctx, opAddSet, func(now time.Time) error {
		ti := s.trainingIndex(trainingID)
		if ti < 0 {
			return fmt.Errorf("%w: %s", training.ErrTrainingNotFound, trainingID)
		}
		ex := s.trainings[ti].ExerciseByName(exerciseName)
		if ex == nil {
			return fmt.Errorf("%w: %q in training %s", training.ErrExerciseNotFound, exerciseName, trainingID)
		}
		added, err = s.appendSet(ex, set, now)
		return err
	})
	return added, err
}

// UpdateSet replaces the set with the given id, keeping its id.
func (s *Store) UpdateSet(ctx context.Context, setID string, set training.WorkoutSet) error {
	return s.mutate(ctx, opUpdateSet, func(time.Time) error {
		ti, ei, si := s.setIndex(setID)
		if si < 0 {
			return fmt.Errorf("%w: %s", training.ErrSetNotFound, setID)
		}
		return replaceSet(&s.trainings[ti].Exercises[ei], si, set)
	})
}

// RemoveSet deletes the set with the given id. Removing the last set of an
// exercise removes the exercise too.
func (s *Store) RemoveSet(ctx context.Context, setID string) error {
	return s.mutate(ctx, opRemoveSet, func(time.Time) error {
		ti, ei, si := s.setIndex(setID)
		if si < 0 {
			return fmt.Errorf("%w: %s", training.ErrSetNotFound, setID)
		}
		s.removeSet(ti, ei, si)
		return nil
	})
}

// UpdateSetAt replaces the set at index of the exercise named exactly
// exerciseName in the training.
func (s *Store) UpdateSetAt(ctx context.Context, trainingID, exerciseName string, index int, set training.WorkoutSet) error {
	return s.mutate(ctx, opUpdateSet, func(time.Time) error {
		ti, ei, err := s.setPosition(trainingID, exerciseName, index)
		if err != nil {
			return err
		}
		return replaceSet(&s.trainings[ti].Exercises[ei], index, set)
	})
}

// RemoveSetAt deletes the set at index, with the same last set rule as RemoveSet.
func (s *Store) RemoveSetAt(ctx context.Context, trainingID, exerciseName string, index int) error {
	return s.mutate(ctx, opRemoveSet, func(time.Time) error {
		ti, ei, err := s.setPosition(trainingID, exerciseName, index)
		if err != nil {
			return err
		}
		s.removeSet(ti, ei, index)
		return nil
	})
}

func (s *Store) FindSet(setID string) (training.WorkoutSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti, ei, si := s.setIndex(setID)
	if si < 0 {
		return training.WorkoutSet{}, fmt.Errorf("%w: %s", training.ErrSetNotFound, setID)
	}
	return s.trainings[ti].Exercises[ei].Sets[si].Clone(), nil
}

func (s *Store) appendSet(ex *training.Exercise, set training.WorkoutSet, now time.Time) (training.WorkoutSet, error) {
	set = set.Clone()
	s.prepareSet(&set, now)
	if err := checkSet(ex, set); err != nil {
		return training.WorkoutSet{}, err
	}
	if _, _, si := s.setIndex(set.ID); si >= 0 {
		return training.WorkoutSet{}, fmt.Errorf("%w: set %s", training.ErrDuplicateID, set.ID)
	}

	ex.Sets = append(ex.Sets, set)
	return set.Clone(), nil
}

func replaceSet(ex *training.Exercise, si int, set training.WorkoutSet) error {
	current := ex.Sets[si]
	set = set.Clone()
	set.ID = current.ID
	if set.CreatedAt.IsZero() {
		set.CreatedAt = current.CreatedAt
	}
	if err := checkSet(ex, set); err != nil {
		return err
	}
	ex.Sets[si] = set
	return nil
}

func (s *Store) removeSet(ti, ei, si int) {
	t := &s.trainings[ti]
	if len(t.Exercises[ei].Sets) <= 1 {
		// an exercise goes away with its last set
		t.Exercises = slices.Delete(t.Exercises, ei, ei+1)
		return
	}
	t.Exercises[ei].Sets = slices.Delete(t.Exercises[ei].Sets, si, si+1)
}

// checkSet reports ErrTypeMismatch before looking at the set values.
func checkSet(ex *training.Exercise, set training.WorkoutSet) error {
	if set.Kind.Valid() && set.Kind != ex.Type {
		return fmt.Errorf(
			"%w: set %s is %s, exercise %q is %s",
			training.ErrTypeMismatch, set.ID, set.Kind, ex.ExerciseName, ex.Type,
		)
	}
	return training.ValidateSet(set)
}

func (s *Store) setPosition(trainingID, exerciseName string, index int) (ti, ei int, _ error) {
	ti = s.trainingIndex(trainingID)
	if ti < 0 {
		return -1, -1, fmt.Errorf("%w: %s", training.ErrTrainingNotFound, trainingID)
	}
	ei = -1
	for i := range s.trainings[ti].Exercises {
		if s.trainings[ti].Exercises[i].ExerciseName == exerciseName {
			ei = i
			break
		}
	}
	if ei < 0 {
		return -1, -1, fmt.Errorf("%w: %q in training %s", training.ErrExerciseNotFound, exerciseName, trainingID)
	}
	if index < 0 || index >= len(s.trainings[ti].Exercises[ei].Sets) {
		return -1, -1, fmt.Errorf("%w: index %d of %q", training.ErrSetNotFound, index, exerciseName)
	}
	return ti, ei, nil
}

func (s *Store) setIndex(setID string) (ti, ei, si int) {
	if setID == "" {
		return -1, -1, -1
	}
	for ti = range s.trainings {
		for ei = range s.trainings[ti].Exercises {
			if si = s.trainings[ti].Exercises[ei].SetIndex(setID); si >= 0 {
				return ti, ei, si
			}
		}
	}
	return -1, -1, -1
}

func (s *Store) prepareSet(set *training.WorkoutSet, now time.Time) {
	if set.ID == "" {
		set.ID = s.newID()
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = now
	}
}
