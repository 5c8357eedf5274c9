package store

import (
	"fmt"

	"github.com/2beens/gymtrack/internal/gymtrack/training"
)

// takenIDs holds exercise and set ids already in use. The two kinds are
// tracked separately.
type takenIDs struct {
	exercises map[string]bool
	sets      map[string]bool
}

func newTakenIDs() *takenIDs {
	return &takenIDs{
		exercises: make(map[string]bool),
		sets:      make(map[string]bool),
	}
}

// storedIDs collects the exercise and set ids of the aggregate. The training
// at skipTi is left out, or only its exercise at skipEi when skipEi >= 0.
func (s *Store) storedIDs(skipTi, skipEi int) *takenIDs {
	taken := newTakenIDs()
	for ti := range s.trainings {
		if ti == skipTi && skipEi < 0 {
			continue
		}
		for ei := range s.trainings[ti].Exercises {
			if ti == skipTi && ei == skipEi {
				continue
			}
			ex := &s.trainings[ti].Exercises[ei]
			taken.exercises[ex.ID] = true
			for _, set := range ex.Sets {
				taken.sets[set.ID] = true
			}
		}
	}
	return taken
}

// claim marks the ids of exercises and their sets as taken. It fails on the
// first id that is taken already, including one repeated within exercises.
func (t *takenIDs) claim(exercises ...training.Exercise) error {
	for i := range exercises {
		ex := &exercises[i]
		if t.exercises[ex.ID] {
			return fmt.Errorf("%w: exercise %s", training.ErrDuplicateID, ex.ID)
		}
		t.exercises[ex.ID] = true

		for _, set := range ex.Sets {
			if t.sets[set.ID] {
				return fmt.Errorf("%w: set %s in exercise %s", training.ErrDuplicateID, set.ID, ex.ID)
			}
			t.sets[set.ID] = true
		}
	}
	return nil
}
