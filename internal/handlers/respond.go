package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RygelGasparTheOG/rycord/internal/store"
)

// The API always answers with a definite JSON envelope: {"status":"ok"} or
// {"status":"error","message":...}. Transport-level status codes stay 200
// for API errors; clients switch on the envelope.

func sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		sugar.Error(err)
	}
}

func sendOK(w http.ResponseWriter) {
	sendJSON(w, map[string]string{"status": "ok"})
}

func sendError(w http.ResponseWriter, message string) {
	sendJSON(w, map[string]string{"status": "error", "message": message})
}

// sendStoreError maps a store error to the wire message clients expect.
func sendStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		sendError(w, "Username already exists")
	case errors.Is(err, store.ErrInvalidCredentials):
		sendError(w, "Invalid username or password")
	case errors.Is(err, store.ErrBanned):
		sendError(w, "You are banned")
	case errors.Is(err, store.ErrInvalidSession):
		sendError(w, "Invalid session")
	case errors.Is(err, store.ErrChannelRestricted):
		sendError(w, "You cannot access this channel")
	case errors.Is(err, store.ErrMessageNotFound):
		sendError(w, "Message not found")
	case errors.Is(err, store.ErrNotMessageAuthor):
		sendError(w, "Not authorized")
	case errors.Is(err, store.ErrInvalidFileData):
		sendError(w, "Invalid file data")
	case errors.Is(err, store.ErrFileTooLarge):
		sendError(w, "File too large. Maximum size is 100MB.")
	case errors.Is(err, store.ErrInvalidAdminPassword):
		sendError(w, "Invalid password")
	case errors.Is(err, store.ErrInvalidAdminSession):
		sendError(w, "Unauthorized")
	default:
		sugar.Error(err)
		sendError(w, "Internal server error")
	}
}
