package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"workflowpro-backend/errs"
	"workflowpro-backend/jwt"
	"workflowpro-backend/service"
)

type taskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *taskHandler {
	return &taskHandler{
		tasks: tasks,
	}
}

func (h *taskHandler) Register(r *mux.Router) {
	r.HandleFunc("/tasks", h.create).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", h.update).Methods(http.MethodPatch)
	r.HandleFunc("/tasks/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/tasks/{id}/assignees/{userID}", h.assign).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/assignees/{userID}", h.unassign).Methods(http.MethodDelete)
}

func (h *taskHandler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.GetClaimsFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrJWT)
		return
	}

	data := service.CreateTaskData{}
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.tasks.CreateTask(r.Context(), data, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// update is the drag-and-drop target: moving a task between columns is a
// PATCH with only the status field set.
func (h *taskHandler) update(w http.ResponseWriter, r *http.Request) {
	update := &service.TaskUpdate{}
	if err := decodeJSON(r, update); err != nil {
		writeError(w, err)
		return
	}

	if err := h.tasks.UpdateTask(r.Context(), mux.Vars(r)["id"], update); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *taskHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.DeleteTask(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *taskHandler) assign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.tasks.AssignUser(r.Context(), vars["id"], vars["userID"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *taskHandler) unassign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.tasks.UnassignUser(r.Context(), vars["id"], vars["userID"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
