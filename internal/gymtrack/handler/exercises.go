package handler

import (
	"net/http"

	"github.com/2beens/gymtrack/internal/gymtrack/training"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"
	"github.com/2beens/gymtrack/pkg"

	"github.com/gorilla/mux"
)

func (h *Handler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	ex, err := h.store.FindExercise(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pkg.WriteJSON(w, ex, http.StatusOK)
}

func (h *Handler) HandleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update")
	defer span.End()

	var ex training.Exercise
	if !decodeBody(w, r, &ex) {
		return
	}
	ex.ID = mux.Vars(r)["id"]

	if err := h.store.UpdateExercise(ctx, ex); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	if err := h.store.RemoveExercise(ctx, mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleExerciseSummary(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.summary")
	defer span.End()

	summary, err := h.store.ExerciseSummary(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add_set")
	defer span.End()

	var set training.WorkoutSet
	if !decodeBody(w, r, &set) {
		return
	}

	added, err := h.store.AddSetToExercise(ctx, mux.Vars(r)["id"], set)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleGetSet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.get")
	defer span.End()

	set, err := h.store.FindSet(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pkg.WriteJSON(w, set, http.StatusOK)
}

func (h *Handler) HandleUpdateSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.update")
	defer span.End()

	var set training.WorkoutSet
	if !decodeBody(w, r, &set) {
		return
	}

	if err := h.store.UpdateSet(ctx, mux.Vars(r)["id"], set); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.delete")
	defer span.End()

	if err := h.store.RemoveSet(ctx, mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
