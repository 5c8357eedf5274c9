package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/gymtrack/internal/gymtrack/stats"
	"github.com/2beens/gymtrack/internal/gymtrack/training"
	"github.com/2beens/gymtrack/pkg"

	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type trainingStore interface {
	StartNewTraining(ctx context.Context) string
	AddTraining(ctx context.Context, t training.Training) (training.Training, error)
	UpdateTraining(ctx context.Context, t training.Training) error
	RemoveTraining(ctx context.Context, trainingID string) error
	FinishTraining(ctx context.Context, trainingID string) error
	SetActiveTraining(ctx context.Context, trainingID string)
	ClearAllTrainings(ctx context.Context)
	ActiveTraining() *training.Training
	Trainings() []training.Training
	Training(trainingID string) (training.Training, error)

	AddExercise(ctx context.Context, trainingID string, ex training.Exercise) (training.Exercise, error)
	UpdateExercise(ctx context.Context, ex training.Exercise) error
	RemoveExercise(ctx context.Context, exerciseID string) error
	FindExercise(exerciseID string) (training.Exercise, error)
	ExerciseSummary(exerciseID string) (training.ExerciseSummary, error)

	AddSetToExercise(ctx context.Context, exerciseID string, set training.WorkoutSet) (training.WorkoutSet, error)
	AddSetByName(ctx context.Context, trainingID, exerciseName string, set training.WorkoutSet) (training.WorkoutSet, error)
	UpdateSet(ctx context.Context, setID string, set training.WorkoutSet) error
	RemoveSet(ctx context.Context, setID string) error
	UpdateSetAt(ctx context.Context, trainingID, exerciseName string, index int, set training.WorkoutSet) error
	RemoveSetAt(ctx context.Context, trainingID, exerciseName string, index int) error
	FindSet(setID string) (training.WorkoutSet, error)

	ExerciseStats(exerciseName string) *stats.ExerciseStats
	AllExerciseStats() []stats.ExerciseStats
	LastMaxWeight(exerciseName, excludeTrainingID string) (float64, bool)
	SuggestWeight(exerciseName string, targetReps int) float64
	SuggestDuration(exerciseName string) int
}

type Handler struct {
	store trainingStore
}

func New(store trainingStore) *Handler {
	return &Handler{
		store: store,
	}
}

type StartTrainingResponse struct {
	ID string `json:"id"`
}

type LastMaxWeightResponse struct {
	ExerciseName  string   `json:"exerciseName"`
	LastMaxWeight *float64 `json:"lastMaxWeight"`
}

type SuggestionResponse struct {
	ExerciseName string  `json:"exerciseName"`
	Weight       float64 `json:"weight"`
	Duration     int     `json:"duration"`
}

// decodeBody reads a JSON body into v, writing the 400 response itself
// when it fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, pkg.ContentType.JSON) {
		pkg.WriteError(w, "invalid content type", http.StatusBadRequest)
		return false
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		log.Debugf("%s %s, unmarshal json body: %s", r.Method, r.URL.Path, err)
		pkg.WriteError(w, fmt.Sprintf("invalid json body: %s", err), http.StatusBadRequest)
		return false
	}
	return true
}

// writeStoreError maps store errors to status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, training.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, training.ErrTypeMismatch), errors.Is(err, training.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, training.ErrDuplicateID):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Errorf("store operation failed: %s", err)
		pkg.WriteError(w, "internal error", status)
		return
	}
	pkg.WriteError(w, err.Error(), status)
}

func parseIndex(w http.ResponseWriter, indexStr string) (int, bool) {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		pkg.WriteError(w, "error, set index NaN", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}
