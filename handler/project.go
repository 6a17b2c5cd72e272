package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"workflowpro-backend/errs"
	"workflowpro-backend/jwt"
	"workflowpro-backend/service"
)

type projectHandler struct {
	projects *service.ProjectService
	boards   *service.BoardService
	sprints  *service.SprintService
}

func NewProjectHandler(projects *service.ProjectService, boards *service.BoardService, sprints *service.SprintService) *projectHandler {
	return &projectHandler{
		projects: projects,
		boards:   boards,
		sprints:  sprints,
	}
}

func (h *projectHandler) Register(r *mux.Router) {
	r.HandleFunc("/projects", h.list).Methods(http.MethodGet)
	r.HandleFunc("/projects", h.create).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}", h.update).Methods(http.MethodPatch)
	r.HandleFunc("/projects/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{id}/boards", h.listBoards).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}/boards", h.createBoard).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}/sprints", h.listSprints).Methods(http.MethodGet)
}

func (h *projectHandler) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.GetClaimsFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrJWT)
		return
	}

	projects, err := h.projects.GetUserProjects(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *projectHandler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.GetClaimsFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrJWT)
		return
	}

	data := service.CreateProjectData{}
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.projects.CreateProject(r.Context(), data, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *projectHandler) update(w http.ResponseWriter, r *http.Request) {
	update := &service.ProjectUpdate{}
	if err := decodeJSON(r, update); err != nil {
		writeError(w, err)
		return
	}

	if err := h.projects.UpdateProject(r.Context(), mux.Vars(r)["id"], update); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *projectHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.DeleteProject(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *projectHandler) listBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boards.GetProjectBoards(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, boards)
}

// createBoard is the one create that answers with the full record, so the
// caller immediately sees the generated default columns.
func (h *projectHandler) createBoard(w http.ResponseWriter, r *http.Request) {
	data := service.CreateBoardData{}
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, err)
		return
	}
	data.ProjectID = mux.Vars(r)["id"]

	board, err := h.boards.CreateBoard(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, board)
}

func (h *projectHandler) listSprints(w http.ResponseWriter, r *http.Request) {
	sprints, err := h.sprints.GetProjectSprints(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sprints)
}
