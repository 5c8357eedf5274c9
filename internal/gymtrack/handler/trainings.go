package handler

import (
	"net/http"

	"github.com/2beens/gymtrack/internal/gymtrack/training"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"
	"github.com/2beens/gymtrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.start")
	defer span.End()

	id := h.store.StartNewTraining(ctx)
	log.Debugf("new training started: %s", id)
	pkg.WriteJSON(w, StartTrainingResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.list")
	defer span.End()

	pkg.WriteJSON(w, h.store.Trainings(), http.StatusOK)
}

func (h *Handler) HandleClearAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.clear")
	defer span.End()

	h.store.ClearAllTrainings(ctx)
	log.Warnln("all trainings cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.add")
	defer span.End()

	var t training.Training
	if !decodeBody(w, r, &t) {
		return
	}

	added, err := h.store.AddTraining(ctx, t)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pkg.WriteJSON(w, added, http.StatusCreated)
}

// HandleGetActive responds with null when no training is active.
func (h *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.active")
	defer span.End()

	pkg.WriteJSON(w, h.store.ActiveTraining(), http.StatusOK)
}

func (h *Handler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.set_active")
	defer span.End()

	h.store.SetActiveTraining(ctx, mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.get")
	defer span.End()

	t, err := h.store.Training(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pkg.WriteJSON(w, t, http.StatusOK)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.update")
	defer span.End()

	var t training.Training
	if !decodeBody(w, r, &t) {
		return
	}
	t.ID = mux.Vars(r)["id"]

	if err := h.store.UpdateTraining(ctx, t); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.delete")
	defer span.End()

	if err := h.store.RemoveTraining(ctx, mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.finish")
	defer span.End()

	if err := h.store.FinishTraining(ctx, mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.add_exercise")
	defer span.End()

	var ex training.Exercise
	if !decodeBody(w, r, &ex) {
		return
	}

	added, err := h.store.AddExercise(ctx, mux.Vars(r)["id"], ex)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleAddSetByName(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.add_set_by_name")
	defer span.End()

	var set training.WorkoutSet
	if !decodeBody(w, r, &set) {
		return
	}

	vars := mux.Vars(r)
	added, err := h.store.AddSetByName(ctx, vars["id"], vars["name"], set)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleUpdateSetAt(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.update_set_at")
	defer span.End()

	vars := mux.Vars(r)
	index, ok := parseIndex(w, vars["index"])
	if !ok {
		return
	}
	var set training.WorkoutSet
	if !decodeBody(w, r, &set) {
		return
	}

	if err := h.store.UpdateSetAt(ctx, vars["id"], vars["name"], index, set); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleRemoveSetAt(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainings.remove_set_at")
	defer span.End()

	vars := mux.Vars(r)
	index, ok := parseIndex(w, vars["index"])
	if !ok {
		return
	}

	if err := h.store.RemoveSetAt(ctx, vars["id"], vars["name"], index); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
