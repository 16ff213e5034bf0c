// Package transport wires HTTP routing and the websocket upgrade handler.
// The route table, httprouter.New() mux, and websocket.Upgrader fields are
// grounded on the teacher corpus's Seednode-partybox serveWSForManager and
// upgrader wiring, adapted from path-cookie player identity to the three
// URL path parameters spec.md §6 requires (room_id, user_token, username).
package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"literature/internal/registry"
	"literature/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NewRouter builds the complete HTTP handler: the websocket upgrade route
// plus the supplemented REST surface for room discovery.
func NewRouter(ctx context.Context, reg *registry.Registry, log *logrus.Logger) http.Handler {
	mux := httprouter.New()
	mux.GET("/ws/:room_id/:user_token/:username", serveWebSocket(ctx, reg, log))
	mux.GET("/rooms", listRooms(reg))
	mux.POST("/rooms", createRoom(reg))
	return mux
}

func serveWebSocket(ctx context.Context, reg *registry.Registry, log *logrus.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		roomID := ps.ByName("room_id")
		token := ps.ByName("user_token")
		username := ps.ByName("username")
		if roomID == "" || token == "" || username == "" {
			http.Error(w, "room_id, user_token, and username are all required", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.WithError(err).Warn("websocket upgrade failed")
			return
		}

		consumer := session.New(roomID, token, username, reg.GetRoom, conn, log.WithField("component", "session"))
		consumer.Serve(ctx)
	}
}

// roomsResponse is the supplemented REST surface's list payload.
type roomsResponse struct {
	Rooms []registry.Descriptor `json:"rooms"`
}

func listRooms(reg *registry.Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, roomsResponse{Rooms: reg.ListAvailableRooms()})
	}
}

type createRoomRequest struct {
	GameType string `json:"game_type"`
}

type createRoomResponse struct {
	RoomID   string `json:"room_id"`
	GameType string `json:"game_type"`
}

func createRoom(reg *registry.Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req createRoomRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		if req.GameType == "" {
			req.GameType = "literature"
		}
		rm, err := reg.CreateRoom(req.GameType, "")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, createRoomResponse{RoomID: rm.ID, GameType: rm.GameType})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
