package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RygelGasparTheOG/rycord/internal/store"
)

func UploadFile(w http.ResponseWriter, r *http.Request) {
	type UploadRequest struct {
		SessionID string `json:"sessionId"`
		Username  string `json:"username"`
		Channel   string `json:"channel"`
		ID        string `json:"id"`
		FileData  string `json:"fileData"`
		MimeType  string `json:"mimeType"`
		FileName  string `json:"fileName"`
		FileSize  int64  `json:"fileSize"`
		Color     string `json:"color"`
	}

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sugar.Debug(err)
		sendError(w, "Invalid request body")
		return
	}
	if req.Channel == "" {
		req.Channel = "general"
	}

	upload := store.Upload{
		FileID:   req.ID,
		Data:     req.FileData,
		MimeType: req.MimeType,
		FileName: req.FileName,
		FileSize: req.FileSize,
		Color:    req.Color,
	}
	if err := chatStore.UploadFile(req.SessionID, req.Username, req.Channel, upload); err != nil {
		sendStoreError(w, err)
		return
	}

	sendOK(w)
}

// GetFile streams raw blob bytes; this is the one endpoint that does not
// answer with the JSON envelope.
func GetFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	content, mimeType, err := chatStore.GetFile(fileID)
	if errors.Is(err, store.ErrFileNotFound) {
		http.Error(w, "", http.StatusNotFound)
		return
	}
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	if _, err := w.Write(content); err != nil {
		sugar.Debug(err)
	}
}
