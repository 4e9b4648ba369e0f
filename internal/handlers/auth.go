package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/RygelGasparTheOG/rycord/internal/store"
)

type credentials struct {
	Username string `json:"username" validate:"required,max=32"`
	Password string `json:"password" validate:"required"`
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		sugar.Debug(err)
		sendError(w, "Invalid request body")
		return creds, false
	}
	creds.Username = strings.TrimSpace(creds.Username)

	if err := validate.Struct(creds); err != nil {
		sugar.Debug(err)
		sendError(w, "Username and password are required")
		return creds, false
	}
	return creds, true
}

func Signup(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	err := chatStore.Register(creds.Username, creds.Password)
	if errors.Is(err, store.ErrBanned) {
		sendError(w, "You are banned from RyCord")
		return
	}
	if err != nil {
		sendStoreError(w, err)
		return
	}

	sendOK(w)
}

func Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	sessionID, color, err := chatStore.Authenticate(creds.Username, creds.Password)
	if errors.Is(err, store.ErrBanned) {
		sendError(w, "You are banned from RyCord")
		return
	}
	if err != nil {
		sendStoreError(w, err)
		return
	}

	sendJSON(w, map[string]string{
		"status":    "ok",
		"sessionId": sessionID,
		"color":     color,
	})
}
