package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"workflowpro-backend/errs"
	"workflowpro-backend/events"
	"workflowpro-backend/jwt"
	"workflowpro-backend/log"
	"workflowpro-backend/service"
)

type inviteHandler struct {
	invites *service.InviteService
}

func NewInviteHandler(invites *service.InviteService) *inviteHandler {
	return &inviteHandler{
		invites: invites,
	}
}

func (h *inviteHandler) Register(r *mux.Router) {
	r.HandleFunc("/invites", h.create).Methods(http.MethodPost)
	r.HandleFunc("/invites/{token}/accept", h.accept).Methods(http.MethodPost)
}

// create persists a pending invite and queues the email. Delivery happens in
// the mailer worker, not on this request path.
func (h *inviteHandler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.GetClaimsFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrJWT)
		return
	}

	data := service.CreateInviteData{}
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, err)
		return
	}

	invite, err := h.invites.CreateInvite(r.Context(), data, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	err = events.PublishInvite(&events.InviteEvent{
		Email:    invite.Email,
		TeamName: invite.TeamName,
		Inviter:  claims.Name,
		Token:    invite.Token,
	})
	if err != nil {
		log.Logger.Error("failed queueing invite", zap.Error(err), zap.String("email", invite.Email))
		writeError(w, errs.ErrQueue)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Invitation sent"})
}

func (h *inviteHandler) accept(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.GetClaimsFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrJWT)
		return
	}

	if err := h.invites.AcceptInvite(r.Context(), mux.Vars(r)["token"], claims.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Invitation accepted"})
}
