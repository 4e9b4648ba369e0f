package handlers

import (
	"encoding/json"
	"net/http"
)

// Heartbeat always reports ok: refreshing a dead token is a no-op rather
// than an error, so clients can retry freely.
func Heartbeat(w http.ResponseWriter, r *http.Request) {
	type HeartbeatRequest struct {
		SessionID string `json:"sessionId"`
		Username  string `json:"username"`
		Color     string `json:"color"`
	}

	var req HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sugar.Debug(err)
		sendError(w, "Invalid request body")
		return
	}

	chatStore.Heartbeat(req.SessionID, req.Username, req.Color)
	sendOK(w)
}

func GetUsers(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, map[string]any{"users": chatStore.OnlineUsers()})
}
