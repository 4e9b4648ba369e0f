package handlers

import (
	"encoding/json"
	"net/http"
)

func AdminLogin(w http.ResponseWriter, r *http.Request) {
	type AdminLoginRequest struct {
		Password string `json:"password"`
	}

	var req AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sugar.Debug(err)
		sendError(w, "Invalid request body")
		return
	}

	sessionID, err := chatStore.AdminAuthenticate(req.Password)
	if err != nil {
		sendStoreError(w, err)
		return
	}

	sendJSON(w, map[string]string{"status": "ok", "sessionId": sessionID})
}

func GetAdminData(w http.ResponseWriter, r *http.Request) {
	data, err := chatStore.AdminSnapshot(r.URL.Query().Get("session"))
	if err != nil {
		sendStoreError(w, err)
		return
	}

	sendJSON(w, data)
}

func SaveAdminData(w http.ResponseWriter, r *http.Request) {
	type SaveRequest struct {
		SessionID          string              `json:"sessionId"`
		Channels           []string            `json:"channels"`
		BannedUsers        []string            `json:"banned_users"`
		RestrictedChannels map[string][]string `json:"restricted_channels"`
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sugar.Debug(err)
		sendError(w, "Invalid request body")
		return
	}

	if err := chatStore.AdminReplace(req.SessionID, req.Channels, req.BannedUsers, req.RestrictedChannels); err != nil {
		sendStoreError(w, err)
		return
	}

	sendOK(w)
}
