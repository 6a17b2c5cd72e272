package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"workflowpro-backend/errs"
	"workflowpro-backend/jwt"
	"workflowpro-backend/service"
)

type sprintHandler struct {
	sprints *service.SprintService
}

func NewSprintHandler(sprints *service.SprintService) *sprintHandler {
	return &sprintHandler{
		sprints: sprints,
	}
}

func (h *sprintHandler) Register(r *mux.Router) {
	r.HandleFunc("/sprints", h.create).Methods(http.MethodPost)
	r.HandleFunc("/sprints/{id}", h.update).Methods(http.MethodPatch)
	r.HandleFunc("/sprints/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/sprints/{id}/start", h.start).Methods(http.MethodPost)
	r.HandleFunc("/sprints/{id}/complete", h.complete).Methods(http.MethodPost)
}

func (h *sprintHandler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.GetClaimsFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrJWT)
		return
	}

	data := service.CreateSprintData{}
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.sprints.CreateSprint(r.Context(), data, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *sprintHandler) update(w http.ResponseWriter, r *http.Request) {
	update := &service.SprintUpdate{}
	if err := decodeJSON(r, update); err != nil {
		writeError(w, err)
		return
	}

	if err := h.sprints.UpdateSprint(r.Context(), mux.Vars(r)["id"], update); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *sprintHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sprints.DeleteSprint(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *sprintHandler) start(w http.ResponseWriter, r *http.Request) {
	if err := h.sprints.StartSprint(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *sprintHandler) complete(w http.ResponseWriter, r *http.Request) {
	if err := h.sprints.CompleteSprint(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
