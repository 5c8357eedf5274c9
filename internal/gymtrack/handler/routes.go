package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes registers the training API on r. Mutating routes are wrapped
// with limitMutations when it is not nil.
func SetupRoutes(r *mux.Router, h *Handler, limitMutations func(http.Handler) http.Handler) {
	mutating := func(f http.HandlerFunc) http.Handler {
		if limitMutations == nil {
			return f
		}
		return limitMutations(f)
	}

	// fixed paths go before /trainings/{id}
	r.Handle("/trainings/start", mutating(h.HandleStart)).Methods("POST")
	r.HandleFunc("/trainings/active", h.HandleGetActive).Methods("GET")
	r.Handle("/trainings/active/{id}", mutating(h.HandleSetActive)).Methods("PUT")
	r.HandleFunc("/trainings", h.HandleList).Methods("GET")
	r.Handle("/trainings", mutating(h.HandleAdd)).Methods("POST")
	r.Handle("/trainings", mutating(h.HandleClearAll)).Methods("DELETE")

	r.HandleFunc("/trainings/{id}", h.HandleGet).Methods("GET")
	r.Handle("/trainings/{id}", mutating(h.HandleUpdate)).Methods("PUT")
	r.Handle("/trainings/{id}", mutating(h.HandleDelete)).Methods("DELETE")
	r.Handle("/trainings/{id}/finish", mutating(h.HandleFinish)).Methods("POST")
	r.Handle("/trainings/{id}/exercises", mutating(h.HandleAddExercise)).Methods("POST")
	r.Handle("/trainings/{id}/exercises/by-name/{name}/sets", mutating(h.HandleAddSetByName)).Methods("POST")
	r.Handle("/trainings/{id}/exercises/by-name/{name}/sets/{index}", mutating(h.HandleUpdateSetAt)).Methods("PUT")
	r.Handle("/trainings/{id}/exercises/by-name/{name}/sets/{index}", mutating(h.HandleRemoveSetAt)).Methods("DELETE")

	r.HandleFunc("/exercises/{id}", h.HandleGetExercise).Methods("GET")
	r.Handle("/exercises/{id}", mutating(h.HandleUpdateExercise)).Methods("PUT")
	r.Handle("/exercises/{id}", mutating(h.HandleDeleteExercise)).Methods("DELETE")
	r.HandleFunc("/exercises/{id}/summary", h.HandleExerciseSummary).Methods("GET")
	r.Handle("/exercises/{id}/sets", mutating(h.HandleAddSet)).Methods("POST")

	r.HandleFunc("/sets/{id}", h.HandleGetSet).Methods("GET")
	r.Handle("/sets/{id}", mutating(h.HandleUpdateSet)).Methods("PUT")
	r.Handle("/sets/{id}", mutating(h.HandleDeleteSet)).Methods("DELETE")

	r.HandleFunc("/stats", h.HandleAllStats).Methods("GET")
	r.HandleFunc("/stats/{name}", h.HandleExerciseStats).Methods("GET")
	r.HandleFunc("/stats/{name}/last-max-weight", h.HandleLastMaxWeight).Methods("GET")
	r.HandleFunc("/stats/{name}/suggestion", h.HandleSuggestion).Methods("GET")
}
