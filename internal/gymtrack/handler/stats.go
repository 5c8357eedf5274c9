package handler

import (
	"net/http"
	"strconv"

	"github.com/2beens/gymtrack/internal/telemetry/tracing"
	"github.com/2beens/gymtrack/pkg"

	"github.com/gorilla/mux"
)

const defaultTargetReps = 8

func (h *Handler) HandleAllStats(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.all")
	defer span.End()

	pkg.WriteJSON(w, h.store.AllExerciseStats(), http.StatusOK)
}

func (h *Handler) HandleExerciseStats(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exercise")
	defer span.End()

	name := mux.Vars(r)["name"]
	exStats := h.store.ExerciseStats(name)
	if exStats == nil {
		pkg.WriteError(w, "no history for exercise "+name, http.StatusNotFound)
		return
	}
	pkg.WriteJSON(w, exStats, http.StatusOK)
}

// HandleLastMaxWeight responds with a null weight when nothing was found.
// The exclude query param skips a training, usually the active one.
func (h *Handler) HandleLastMaxWeight(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.last_max_weight")
	defer span.End()

	name := mux.Vars(r)["name"]
	resp := LastMaxWeightResponse{ExerciseName: name}
	if weight, ok := h.store.LastMaxWeight(name, r.URL.Query().Get("exclude")); ok {
		resp.LastMaxWeight = &weight
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) HandleSuggestion(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.suggestion")
	defer span.End()

	targetReps := defaultTargetReps
	if repsStr := r.URL.Query().Get("reps"); repsStr != "" {
		reps, err := strconv.Atoi(repsStr)
		if err != nil || reps <= 0 {
			pkg.WriteError(w, "parameter <reps> must be a positive number", http.StatusBadRequest)
			return
		}
		targetReps = reps
	}

	name := mux.Vars(r)["name"]
	pkg.WriteJSON(w, SuggestionResponse{
		ExerciseName: name,
		Weight:       h.store.SuggestWeight(name, targetReps),
		Duration:     h.store.SuggestDuration(name),
	}, http.StatusOK)
}
