package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"workflowpro-backend/errs"
	"workflowpro-backend/jwt"
	"workflowpro-backend/service"
)

type teamHandler struct {
	teams    *service.TeamService
	projects *service.ProjectService
}

func NewTeamHandler(teams *service.TeamService, projects *service.ProjectService) *teamHandler {
	return &teamHandler{
		teams:    teams,
		projects: projects,
	}
}

func (h *teamHandler) Register(r *mux.Router) {
	r.HandleFunc("/teams", h.list).Methods(http.MethodGet)
	r.HandleFunc("/teams", h.create).Methods(http.MethodPost)
	r.HandleFunc("/teams/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id}", h.update).Methods(http.MethodPatch)
	r.HandleFunc("/teams/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/teams/{id}/members/{userID}", h.addMember).Methods(http.MethodPost)
	r.HandleFunc("/teams/{id}/members/{userID}", h.removeMember).Methods(http.MethodDelete)
	r.HandleFunc("/teams/{id}/projects", h.listProjects).Methods(http.MethodGet)
}

func (h *teamHandler) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.GetClaimsFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrJWT)
		return
	}

	teams, err := h.teams.GetUserTeams(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, teams)
}

func (h *teamHandler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.GetClaimsFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrJWT)
		return
	}

	data := service.CreateTeamData{}
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.teams.CreateTeam(r.Context(), data, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *teamHandler) get(w http.ResponseWriter, r *http.Request) {
	team, err := h.teams.GetTeam(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, team)
}

func (h *teamHandler) update(w http.ResponseWriter, r *http.Request) {
	update := &service.TeamUpdate{}
	if err := decodeJSON(r, update); err != nil {
		writeError(w, err)
		return
	}

	if err := h.teams.UpdateTeam(r.Context(), mux.Vars(r)["id"], update); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *teamHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.teams.DeleteTeam(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *teamHandler) addMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.teams.AddMember(r.Context(), vars["id"], vars["userID"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *teamHandler) removeMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.teams.RemoveMember(r.Context(), vars["id"], vars["userID"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listProjects resolves a team's projects. The team itself is not looked up:
// orphaned projects of a deleted team are still returned.
func (h *teamHandler) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.GetTeamProjects(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}
