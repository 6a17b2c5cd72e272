package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
)

type healthHandler struct {
	client *mongo.Client
}

func NewHealthHandler(client *mongo.Client) *healthHandler {
	return &healthHandler{
		client: client,
	}
}

func (h *healthHandler) Register(r *mux.Router) {
	r.HandleFunc("/livez", h.liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.readiness).Methods(http.MethodGet)
}

func (h *healthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *healthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Ping(r.Context(), nil); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}
