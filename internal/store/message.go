package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/RygelGasparTheOG/rycord/internal/models"
)

// ListChannels returns the current channel names, sorted.
func (s *Store) ListChannels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.channelNamesLocked()
	sort.Strings(names)
	return names
}

// ListMessages returns a channel's messages in insertion order. An unknown
// channel yields an empty slice, never an error.
func (s *Store) ListMessages(channel string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, exists := s.channels[channel]
	if !exists {
		return []models.Message{}
	}

	messages := make([]models.Message, len(ch.Messages))
	copy(messages, ch.Messages)
	return messages
}

// Draft is the caller-supplied part of a message; the server assigns the
// timestamp and fills identity fields at accept time.
type Draft struct {
	ID    string
	Text  string
	Color string
}

// PostMessage appends a text message to a channel and persists the message
// document before reporting success. Posting into a channel that does not
// exist reports success without storing anything; existing clients depend on
// that answer.
func (s *Store) PostMessage(sessionID, username, channel string, draft Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[sessionID]
	if !exists {
		return ErrInvalidSession
	}
	if s.isBannedLocked(username) {
		return ErrBanned
	}
	if s.isRestrictedLocked(channel, username) {
		return ErrChannelRestricted
	}

	ch, exists := s.channels[channel]
	if !exists {
		return nil
	}

	color := draft.Color
	if color == "" {
		color = sess.Color
	}
	if color == "" {
		color = DefaultColor
	}

	ch.Messages = append(ch.Messages, models.Message{
		ID:        draft.ID,
		Username:  username,
		Text:      draft.Text,
		Timestamp: s.clock().Format(time.RFC3339Nano),
		Color:     color,
		Type:      models.MessageTypeText,
	})

	return s.saveMessagesLocked()
}

// DeleteMessage removes a message authored by username from a channel. When
// the message references a stored file, the blob and its sidecar are cleaned
// up best-effort after the index mutation has been persisted; cleanup
// failures are logged and swallowed so they can never block the removal.
func (s *Store) DeleteMessage(sessionID, channel, messageID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		return ErrInvalidSession
	}

	ch, exists := s.channels[channel]
	if !exists {
		return ErrMessageNotFound
	}

	for i, msg := range ch.Messages {
		if msg.ID != messageID {
			continue
		}
		if msg.Username != username {
			return ErrNotMessageAuthor
		}

		ch.Messages = append(ch.Messages[:i], ch.Messages[i+1:]...)
		if err := s.saveMessagesLocked(); err != nil {
			return err
		}

		if msg.FileID != "" {
			if err := s.blobs.Delete(msg.FileID); err != nil {
				s.sugar.Debugf("Cleaning up file [%s] after message delete: %v", msg.FileID, err)
			}
		}
		return nil
	}

	return ErrMessageNotFound
}

// replaceChannelsLocked applies a diff-based channel replace: names not yet
// present are created empty, channels absent from the new set are dropped
// together with their messages. Stored files referenced by dropped messages
// are left on disk (known leak).
func (s *Store) replaceChannelsLocked(newChannels []string) {
	keep := make(map[string]bool, len(newChannels))
	for _, name := range newChannels {
		keep[name] = true
		if _, exists := s.channels[name]; !exists {
			s.channels[name] = &models.ChannelState{Name: name, Messages: []models.Message{}}
		}
	}
	for name := range s.channels {
		if !keep[name] {
			delete(s.channels, name)
		}
	}
}

func (s *Store) persistModerationLocked() error {
	if err := s.snapshots.SaveChannels(s.channelNamesLocked()); err != nil {
		return fmt.Errorf("persisting channels: %w", err)
	}
	if err := s.saveMessagesLocked(); err != nil {
		return err
	}
	if err := s.snapshots.SaveBannedUsers(s.bannedOrEmpty()); err != nil {
		return fmt.Errorf("persisting banned users: %w", err)
	}
	if err := s.snapshots.SaveRestrictedChannels(s.restricted); err != nil {
		return fmt.Errorf("persisting restricted channels: %w", err)
	}
	return nil
}
