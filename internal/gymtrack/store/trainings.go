package store

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymtrack/internal/gymtrack/training"
)

const (
	opStartTraining     = "start_training"
	opAddTraining       = "add_training"
	opUpdateTraining    = "update_training"
	opSetTrainings      = "set_trainings"
	opRemoveTraining    = "remove_training"
	opFinishTraining    = "finish_training"
	opSetActive         = "set_active_training"
	opClearAllTrainings = "clear_all_trainings"
)

// StartNewTraining creates an empty training dated now and makes it the
// active one. A previously active training that is not completed yet gets
// completed first. No other training is touched.
func (s *Store) StartNewTraining(ctx context.Context) string {
	var id string
	_ = s.mutate(ctx, opStartTraining, func(now time.Time) error {
		if ti := s.trainingIndex(s.activeTrainingID); ti >= 0 && !s.trainings[ti].Completed {
			s.complete(ti, now)
		}

		id = s.newID()
		startTime := now
		s.trainings = append(s.trainings, training.Training{
			ID:        id,
			Date:      now,
			Exercises: []training.Exercise{},
			StartTime: &startTime,
		})
		s.activeTrainingID = id
		return nil
	})
	return id
}

// AddTraining appends t. Missing ids and dates are filled in.
func (s *Store) AddTraining(ctx context.Context, t training.Training) (added training.Training, err error) {
	err = s.mutate(ctx, opAddTraining, func(now time.Time) error {
		t = t.Clone()
		s.prepareTraining(&t, now)
		if err := training.ValidateTraining(t); err != nil {
			return err
		}
		if s.trainingIndex(t.ID) >= 0 {
			return fmt.Errorf("%w: training %s", training.ErrDuplicateID, t.ID)
		}
		if err := s.storedIDs(-1, -1).claim(t.Exercises...); err != nil {
			return err
		}

		s.trainings = append(s.trainings, t)
		added = t.Clone()
		return nil
	})
	return added, err
}

// UpdateTraining replaces the stored training with the same id.
func (s *Store) UpdateTraining(ctx context.Context, t training.Training) error {
	return s.mutate(ctx, opUpdateTraining, func(now time.Time) error {
		ti := s.trainingIndex(t.ID)
		if ti < 0 {
			return fmt.Errorf("%w: %s", training.ErrTrainingNotFound, t.ID)
		}

		t = t.Clone()
		s.prepareTraining(&t, now)
		if err := training.ValidateTraining(t); err != nil {
			return err
		}
		if err := s.storedIDs(ti, -1).claim(t.Exercises...); err != nil {
			return err
		}

		if t.Completed && !s.trainings[ti].Completed {
			s.trainingToRefresh = t.ID
		}
		s.trainings[ti] = t
		return nil
	})
}

// SetTrainings replaces the whole training list. The active pointer is kept
// as is, even if it no longer resolves.
func (s *Store) SetTrainings(ctx context.Context, trainings []training.Training) error {
	return s.mutate(ctx, opSetTrainings, func(now time.Time) error {
		replacement := training.CloneAll(trainings)
		if replacement == nil {
			replacement = []training.Training{}
		}

		seen := make(map[string]bool, len(replacement))
		taken := newTakenIDs()
		for i := range replacement {
			s.prepareTraining(&replacement[i], now)
			if err := training.ValidateTraining(replacement[i]); err != nil {
				return err
			}
			if seen[replacement[i].ID] {
				return fmt.Errorf("%w: training %s", training.ErrDuplicateID, replacement[i].ID)
			}
			seen[replacement[i].ID] = true
			if err := taken.claim(replacement[i].Exercises...); err != nil {
				return err
			}
		}

		s.trainings = replacement
		return nil
	})
}

// RemoveTraining deletes the training, clearing the active pointer if it
// pointed to it.
func (s *Store) RemoveTraining(ctx context.Context, trainingID string) error {
	return s.mutate(ctx, opRemoveTraining, func(time.Time) error {
		ti := s.trainingIndex(trainingID)
		if ti < 0 {
			return fmt.Errorf("%w: %s", training.ErrTrainingNotFound, trainingID)
		}

		s.trainings = append(s.trainings[:ti], s.trainings[ti+1:]...)
		if s.activeTrainingID == trainingID {
			s.activeTrainingID = ""
		}
		return nil
	})
}

// FinishTraining marks the training completed and refreshes its exercise stats.
func (s *Store) FinishTraining(ctx context.Context, trainingID string) error {
	return s.mutate(ctx, opFinishTraining, func(now time.Time) error {
		ti := s.trainingIndex(trainingID)
		if ti < 0 {
			return fmt.Errorf("%w: %s", training.ErrTrainingNotFound, trainingID)
		}
		s.complete(ti, now)
		return nil
	})
}

// SetActiveTraining points the active training to trainingID without
// checking that it exists.
func (s *Store) SetActiveTraining(ctx context.Context, trainingID string) {
	_ = s.mutate(ctx, opSetActive, func(time.Time) error {
		s.activeTrainingID = trainingID
		return nil
	})
}

func (s *Store) ClearAllTrainings(ctx context.Context) {
	_ = s.mutate(ctx, opClearAllTrainings, func(time.Time) error {
		s.trainings = []training.Training{}
		s.activeTrainingID = ""
		return nil
	})
}

// ActiveTraining returns nil when no training is active or the pointer
// does not resolve.
func (s *Store) ActiveTraining() *training.Training {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.trainingIndex(s.activeTrainingID)
	if ti < 0 {
		return nil
	}
	t := s.trainings[ti].Clone()
	return &t
}

func (s *Store) ActiveTrainingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTrainingID
}

func (s *Store) Trainings() []training.Training {
	s.mu.Lock()
	defer s.mu.Unlock()
	return training.CloneAll(s.trainings)
}

func (s *Store) Training(trainingID string) (training.Training, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.trainingIndex(trainingID)
	if ti < 0 {
		return training.Training{}, fmt.Errorf("%w: %s", training.ErrTrainingNotFound, trainingID)
	}
	return s.trainings[ti].Clone(), nil
}

func (s *Store) complete(ti int, now time.Time) {
	t := &s.trainings[ti]
	t.Completed = true
	if t.EndTime == nil {
		endTime := now
		t.EndTime = &endTime
	}
	s.trainingToRefresh = t.ID
}

func (s *Store) trainingIndex(trainingID string) int {
	if trainingID == "" {
		return -1
	}
	for i := range s.trainings {
		if s.trainings[i].ID == trainingID {
			return i
		}
	}
	return -1
}

func (s *Store) prepareTraining(t *training.Training, now time.Time) {
	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.Date.IsZero() {
		t.Date = now
	}
	if t.Exercises == nil {
		t.Exercises = []training.Exercise{}
	}
	for i := range t.Exercises {
		s.prepareExercise(&t.Exercises[i], now)
	}
}
