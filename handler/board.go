package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"workflowpro-backend/entity"
	"workflowpro-backend/service"
)

type boardHandler struct {
	boards *service.BoardService
	tasks  *service.TaskService
}

func NewBoardHandler(boards *service.BoardService, tasks *service.TaskService) *boardHandler {
	return &boardHandler{
		boards: boards,
		tasks:  tasks,
	}
}

func (h *boardHandler) Register(r *mux.Router) {
	r.HandleFunc("/boards/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/boards/{id}/columns", h.updateColumns).Methods(http.MethodPut)
	r.HandleFunc("/boards/{id}/tasks", h.listTasks).Methods(http.MethodGet)
}

func (h *boardHandler) get(w http.ResponseWriter, r *http.Request) {
	board, err := h.boards.GetBoard(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, board)
}

func (h *boardHandler) updateColumns(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Columns []entity.Column `json:"columns"`
	}{}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.boards.UpdateColumns(r.Context(), mux.Vars(r)["id"], req.Columns); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *boardHandler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.GetBoardTasks(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}
