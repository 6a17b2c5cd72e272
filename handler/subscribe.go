package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"workflowpro-backend/entity"
	"workflowpro-backend/log"
	"workflowpro-backend/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

type subscribeHandler struct {
	tasks *service.TaskService
}

func NewSubscribeHandler(tasks *service.TaskService) *subscribeHandler {
	return &subscribeHandler{
		tasks: tasks,
	}
}

func (h *subscribeHandler) Register(r *mux.Router) {
	r.HandleFunc("/boards/{id}/subscribe", h.subscribe).Methods(http.MethodGet)
}

// subscribe streams the board's full sorted task set over a websocket: once
// on connect and again after every store-side change. The subscription is
// torn down when the client disconnects.
func (h *subscribeHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["id"]

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	sub, err := h.tasks.SubscribeToTasks(context.Background(), boardID, func(tasks []entity.Task) {
		payload, err := json.Marshal(tasks)
		if err != nil {
			log.Logger.Error("failed marshaling task snapshot", zap.Error(err))
			return
		}

		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Logger.Debug("websocket send failed", zap.Error(err))
			conn.Close()
		}
	})
	if err != nil {
		conn.Close()
		return
	}
	defer sub.Close()
	defer conn.Close()

	// Drain the connection; a read error means the client went away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
