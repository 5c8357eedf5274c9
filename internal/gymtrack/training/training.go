package training

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ExerciseType string

const (
	WeightBased ExerciseType = "weight_based"
	TimeBased   ExerciseType = "time_based"
)

func (t ExerciseType) Valid() bool {
	return t == WeightBased || t == TimeBased
}

type Exercise struct {
	ID           string       `json:"id"`
	ExerciseName string       `json:"exerciseName"`
	Type         ExerciseType `json:"type"`
	Sets         []WorkoutSet `json:"sets"`
	Notes        string       `json:"notes,omitempty"`
	// RestTime is the suggested rest between sets, in seconds
	RestTime  *int      `json:"restTime,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Training struct {
	ID        string     `json:"id"`
	Date      time.Time  `json:"date"`
	Name      string     `json:"name,omitempty"`
	Exercises []Exercise `json:"exercises"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Completed bool       `json:"completed"`
}

func NewID() string {
	return uuid.NewString()
}

// NormalizeName is the identity form of an exercise name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MatchesName reports whether the exercise has the given name, ignoring case
// and surrounding whitespace.
func (e *Exercise) MatchesName(name string) bool {
	return NormalizeName(e.ExerciseName) == NormalizeName(name)
}

func (e *Exercise) SetIndex(setID string) int {
	for i := range e.Sets {
		if e.Sets[i].ID == setID {
			return i
		}
	}
	return -1
}

func (e Exercise) Clone() Exercise {
	c := e
	if e.Sets != nil {
		c.Sets = make([]WorkoutSet, len(e.Sets))
		for i := range e.Sets {
			c.Sets[i] = e.Sets[i].Clone()
		}
	}
	if e.RestTime != nil {
		rt := *e.RestTime
		c.RestTime = &rt
	}
	return c
}

// ExerciseIndex returns the position of the exercise with the given id, or -1.
func (t *Training) ExerciseIndex(exerciseID string) int {
	for i := range t.Exercises {
		if t.Exercises[i].ID == exerciseID {
			return i
		}
	}
	return -1
}

// ExerciseByName returns the first exercise named exactly exerciseName.
func (t *Training) ExerciseByName(exerciseName string) *Exercise {
	for i := range t.Exercises {
		if t.Exercises[i].ExerciseName == exerciseName {
			return &t.Exercises[i]
		}
	}
	return nil
}

func (t Training) Clone() Training {
	c := t
	if t.Exercises != nil {
		c.Exercises = make([]Exercise, len(t.Exercises))
		for i := range t.Exercises {
			c.Exercises[i] = t.Exercises[i].Clone()
		}
	}
	if t.StartTime != nil {
		st := *t.StartTime
		c.StartTime = &st
	}
	if t.EndTime != nil {
		et := *t.EndTime
		c.EndTime = &et
	}
	return c
}

func CloneAll(trainings []Training) []Training {
	if trainings == nil {
		return nil
	}
	c := make([]Training, len(trainings))
	for i := range trainings {
		c[i] = trainings[i].Clone()
	}
	return c
}
