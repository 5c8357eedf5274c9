package training

import (
	"encoding/json"
	"fmt"
	"time"
)

// WorkoutSet is one performed unit of an exercise. Kind selects which of the
// variant fields are meaningful: Repetitions and Weight for weight based sets,
// Duration, Distance and Intensity for time based ones.
type WorkoutSet struct {
	ID        string
	Kind      ExerciseType
	CreatedAt time.Time
	Completed bool

	// weight based
	Repetitions int
	Weight      float64

	// time based, Duration in seconds
	Duration  int
	Distance  *float64
	Intensity string
}

func (s WorkoutSet) IsWeightBased() bool { return s.Kind == WeightBased }
func (s WorkoutSet) IsTimeBased() bool   { return s.Kind == TimeBased }

func (s WorkoutSet) Clone() WorkoutSet {
	c := s
	if s.Distance != nil {
		d := *s.Distance
		c.Distance = &d
	}
	return c
}

type weightSetJSON struct {
	ID          string       `json:"id"`
	Kind        ExerciseType `json:"kind"`
	CreatedAt   time.Time    `json:"createdAt"`
	Completed   bool         `json:"completed"`
	Repetitions int          `json:"repetitions"`
	Weight      float64      `json:"weight"`
}

type timeSetJSON struct {
	ID        string       `json:"id"`
	Kind      ExerciseType `json:"kind"`
	CreatedAt time.Time    `json:"createdAt"`
	Completed bool         `json:"completed"`
	Duration  int          `json:"duration"`
	Distance  *float64     `json:"distance,omitempty"`
	Intensity string       `json:"intensity,omitempty"`
}

// anySetJSON is used for decoding only, pointers tell apart missing fields
// from zero values for snapshots written before sets carried a kind.
type anySetJSON struct {
	ID          string        `json:"id"`
	Kind        ExerciseType  `json:"kind"`
	CreatedAt   time.Time     `json:"createdAt"`
	Completed   bool          `json:"completed"`
	Repetitions *int          `json:"repetitions"`
	Weight      *float64      `json:"weight"`
	Duration    *durationJSON `json:"duration"`
	Distance    *float64      `json:"distance"`
	Intensity   string        `json:"intensity"`
}

// durationJSON decodes seconds given either as a number or as an "M:SS" string.
type durationJSON int

func (d *durationJSON) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		seconds, err := ParseDuration(str)
		if err != nil {
			return err
		}
		*d = durationJSON(seconds)
		return nil
	}

	var seconds int
	if err := json.Unmarshal(data, &seconds); err != nil {
		return err
	}
	*d = durationJSON(seconds)
	return nil
}

func (s WorkoutSet) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case WeightBased:
		return json.Marshal(weightSetJSON{
			ID:          s.ID,
			Kind:        s.Kind,
			CreatedAt:   s.CreatedAt,
			Completed:   s.Completed,
			Repetitions: s.Repetitions,
			Weight:      s.Weight,
		})
	case TimeBased:
		return json.Marshal(timeSetJSON{
			ID:        s.ID,
			Kind:      s.Kind,
			CreatedAt: s.CreatedAt,
			Completed: s.Completed,
			Duration:  s.Duration,
			Distance:  s.Distance,
			Intensity: s.Intensity,
		})
	default:
		return nil, fmt.Errorf("marshal set %s: unknown kind %q", s.ID, s.Kind)
	}
}

func (s *WorkoutSet) UnmarshalJSON(data []byte) error {
	var raw anySetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	kind := raw.Kind
	if kind == "" {
		switch {
		case raw.Weight != nil || raw.Repetitions != nil:
			kind = WeightBased
		case raw.Duration != nil:
			kind = TimeBased
		default:
			return fmt.Errorf("unmarshal set %s: cannot determine kind", raw.ID)
		}
	}

	*s = WorkoutSet{
		ID:        raw.ID,
		Kind:      kind,
		CreatedAt: raw.CreatedAt,
		Completed: raw.Completed,
	}

	switch kind {
	case WeightBased:
		if raw.Repetitions != nil {
			s.Repetitions = *raw.Repetitions
		}
		if raw.Weight != nil {
			s.Weight = *raw.Weight
		}
	case TimeBased:
		if raw.Duration != nil {
			s.Duration = int(*raw.Duration)
		}
		s.Distance = raw.Distance
		s.Intensity = raw.Intensity
	default:
		return fmt.Errorf("unmarshal set %s: unknown kind %q", raw.ID, kind)
	}

	return nil
}
