package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/kurobon/gitbttf/internal/console"
)

// WSMessage is an inbound frame. Type is "command" (the default), "reset",
// "demo" or "state".
type WSMessage struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
}

// WSReply answers every inbound frame with what changed and the new state.
type WSReply struct {
	Type     string            `json:"type"`
	Response *console.Response `json:"response,omitempty"`
	State    console.Snapshot  `json:"state"`
	Error    string            `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r.URL.Query().Get("sessionId"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	send := func(reply WSReply) error {
		data, err := json.Marshal(reply)
		if err != nil {
			return err
		}
		return conn.WriteMessage(websocket.TextMessage, data)
	}

	if err := send(WSReply{Type: "state", State: sess.Snapshot()}); err != nil {
		return
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if send(WSReply{Type: "error", Error: "invalid message", State: sess.Snapshot()}) != nil {
				return
			}
			continue
		}

		reply := WSReply{Type: msg.Type}
		switch msg.Type {
		case "", "command":
			reply.Type = "result"
			s.logger.Info("command received", "session", sess.ID, "cmd", msg.Command, "via", "ws")
			reply.Response = sess.Execute(r.Context(), msg.Command)
		case "reset":
			reply.Response = sess.Reset(r.Context())
		case "demo":
			reply.Response = sess.LoadDemo(r.Context())
		case "state":
		default:
			reply.Type = "error"
			reply.Error = "unknown message type " + msg.Type
		}
		reply.State = sess.Snapshot()
		if err := send(reply); err != nil {
			return
		}
	}
}
