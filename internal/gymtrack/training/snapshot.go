package training

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the persisted form of the whole aggregate.
type Snapshot struct {
	Trainings        []Training `json:"trainings"`
	ActiveTrainingID string     `json:"activeTrainingId"`
	// ExerciseStats may be present in snapshots written by other clients.
	// It is derived data and is never read back.
	ExerciseStats json.RawMessage `json:"exerciseStats,omitempty"`
}

func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	out := *s
	if out.Trainings == nil {
		out.Trainings = []Training{}
	}
	for i := range out.Trainings {
		if out.Trainings[i].Exercises == nil {
			out.Trainings[i].Exercises = []Exercise{}
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrSerialization, err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (*Snapshot, error) {
	s := &Snapshot{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrSerialization, err)
	}
	s.ExerciseStats = nil
	if s.Trainings == nil {
		s.Trainings = []Training{}
	}
	return s, nil
}
