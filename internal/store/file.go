package store

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/RygelGasparTheOG/rycord/internal/models"
)

// Upload carries one decoded upload request into the store.
type Upload struct {
	FileID   string
	Data     string // base64 payload
	MimeType string
	FileName string
	FileSize int64
	Color    string
}

// UploadFile decodes the payload, writes the blob and its metadata sidecar,
// and appends a file-type message to the channel. The blob write happens
// outside the state lock; only the index append and the snapshot write are
// serialized. The file id is caller-supplied and collisions overwrite the
// previous blob.
func (s *Store) UploadFile(sessionID, username, channel string, upload Upload) error {
	s.mu.Lock()
	sess, exists := s.sessions[sessionID]
	if !exists {
		s.mu.Unlock()
		return ErrInvalidSession
	}
	if s.isBannedLocked(username) {
		s.mu.Unlock()
		return ErrBanned
	}
	if s.isRestrictedLocked(channel, username) {
		s.mu.Unlock()
		return ErrChannelRestricted
	}
	sessionColor := sess.Color
	s.mu.Unlock()

	// The size ceiling applies to the decoded payload, so the decode cost
	// is paid before the check can reject.
	decoded, err := base64.StdEncoding.DecodeString(upload.Data)
	if err != nil {
		return ErrInvalidFileData
	}
	if len(decoded) > s.maxFileSize {
		return ErrFileTooLarge
	}

	meta := models.FileMetadata{MimeType: upload.MimeType, FileName: upload.FileName}
	if err := s.blobs.Save(upload.FileID, decoded, meta); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	color := upload.Color
	if color == "" {
		color = sessionColor
	}
	if color == "" {
		color = DefaultColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, exists := s.channels[channel]
	if !exists {
		return nil
	}

	ch.Messages = append(ch.Messages, models.Message{
		ID:        upload.FileID,
		Username:  username,
		Timestamp: s.clock().Format(time.RFC3339Nano),
		Color:     color,
		Type:      models.MessageTypeFile,
		FileID:    upload.FileID,
		FileName:  upload.FileName,
		FileSize:  upload.FileSize,
	})

	return s.saveMessagesLocked()
}

// GetFile returns the stored bytes and the mime type from the sidecar,
// falling back to an opaque binary type when the sidecar is missing or
// unreadable. Blob reads take no state lock.
func (s *Store) GetFile(fileID string) ([]byte, string, error) {
	if !s.blobs.Exists(fileID) {
		return nil, "", ErrFileNotFound
	}

	mimeType := "application/octet-stream"
	if meta, err := s.blobs.Meta(fileID); err == nil && meta.MimeType != "" {
		mimeType = meta.MimeType
	}

	content, err := s.blobs.Get(fileID)
	if err != nil {
		return nil, "", fmt.Errorf("reading file %s: %w", fileID, err)
	}
	return content, mimeType, nil
}
