package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/RygelGasparTheOG/rycord/internal/store"
)

func GetChannels(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, map[string][]string{"channels": chatStore.ListChannels()})
}

func GetMessages(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		channel = "general"
	}

	sendJSON(w, map[string]any{"messages": chatStore.ListMessages(channel)})
}

func SendMessage(w http.ResponseWriter, r *http.Request) {
	type SendRequest struct {
		SessionID string `json:"sessionId"`
		Username  string `json:"username"`
		Channel   string `json:"channel"`
		ID        string `json:"id"`
		Text      string `json:"text"`
		Color     string `json:"color"`
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sugar.Debug(err)
		sendError(w, "Invalid request body")
		return
	}
	if req.Channel == "" {
		req.Channel = "general"
	}

	draft := store.Draft{ID: req.ID, Text: req.Text, Color: req.Color}
	if err := chatStore.PostMessage(req.SessionID, req.Username, req.Channel, draft); err != nil {
		sendStoreError(w, err)
		return
	}

	sendOK(w)
}

func DeleteMessage(w http.ResponseWriter, r *http.Request) {
	type DeleteRequest struct {
		SessionID string `json:"sessionId"`
		Channel   string `json:"channel"`
		MessageID string `json:"messageId"`
		Username  string `json:"username"`
	}

	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sugar.Debug(err)
		sendError(w, "Invalid request body")
		return
	}

	if err := chatStore.DeleteMessage(req.SessionID, req.Channel, req.MessageID, req.Username); err != nil {
		sendStoreError(w, err)
		return
	}

	sendOK(w)
}
