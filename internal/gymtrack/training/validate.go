package training

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ValidateSet checks the numeric invariants of a set. All violations are
// reported together, wrapped in ErrValidation.
func ValidateSet(s WorkoutSet) error {
	var err error
	switch s.Kind {
	case WeightBased:
		if s.Repetitions <= 0 {
			err = multierr.Append(err, errors.New("repetitions must be greater than 0"))
		}
		if s.Weight < 0 {
			err = multierr.Append(err, errors.New("weight cannot be negative"))
		}
	case TimeBased:
		if s.Duration <= 0 {
			err = multierr.Append(err, errors.New("duration must be greater than 0"))
		}
		if s.Distance != nil && *s.Distance < 0 {
			err = multierr.Append(err, errors.New("distance cannot be negative"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("invalid set kind %q", s.Kind))
	}

	if err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrValidation, s.ID, err)
	}
	return nil
}

// ValidateExercise validates the exercise and all of its sets. A set whose
// kind differs from the exercise type yields ErrTypeMismatch.
func ValidateExercise(e Exercise) error {
	var err error
	if strings.TrimSpace(e.ExerciseName) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: exercise %s: name empty", ErrValidation, e.ID))
	}
	if !e.Type.Valid() {
		err = multierr.Append(err, fmt.Errorf("%w: exercise %s: invalid type %q", ErrValidation, e.ID, e.Type))
	}
	for _, s := range e.Sets {
		if e.Type.Valid() && s.Kind != e.Type {
			err = multierr.Append(err, fmt.Errorf("%w: set %s is %s, exercise %s is %s", ErrTypeMismatch, s.ID, s.Kind, e.ID, e.Type))
			continue
		}
		err = multierr.Append(err, ValidateSet(s))
	}
	return err
}

func ValidateTraining(t Training) error {
	var err error
	if t.ID == "" {
		err = multierr.Append(err, fmt.Errorf("%w: training id empty", ErrValidation))
	}
	for _, e := range t.Exercises {
		err = multierr.Append(err, ValidateExercise(e))
	}
	return err
}
