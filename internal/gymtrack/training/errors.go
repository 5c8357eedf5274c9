package training

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrTrainingNotFound = fmt.Errorf("training %w", ErrNotFound)
	ErrExerciseNotFound = fmt.Errorf("exercise %w", ErrNotFound)
	ErrSetNotFound      = fmt.Errorf("set %w", ErrNotFound)

	ErrTypeMismatch  = errors.New("set kind does not match exercise type")
	ErrValidation    = errors.New("validation failed")
	ErrDuplicateID   = errors.New("duplicate id")
	ErrSerialization = errors.New("snapshot serialization failed")
)
