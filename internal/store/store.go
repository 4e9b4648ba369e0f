// Package store owns all shared chat state: channels, messages, users,
// sessions and moderation lists. It behaves as a monitor: every public
// operation holds one mutex for its whole duration, including the
// synchronous snapshot write, so concurrent handlers are linearized here.
// Raw blob bytes are the only state touched outside the lock; their ids are
// never rewritten once assigned.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/RygelGasparTheOG/rycord/internal/models"
	"github.com/RygelGasparTheOG/rycord/internal/persist"
)

// MaxFileSize is the ceiling on a decoded upload payload.
const MaxFileSize = 100 * 1024 * 1024

// PresenceWindow is how recently a session must have been seen to count as
// online.
const PresenceWindow = 10 * time.Second

var defaultChannels = []string{"general", "random"}

type Store struct {
	mu        sync.Mutex
	sugar     *zap.SugaredLogger
	snapshots *persist.Snapshots
	blobs     persist.BlobStore

	adminPassword string
	maxFileSize   int
	clock         func() time.Time

	channels      map[string]*models.ChannelState
	users         map[string]models.User
	sessions      map[string]*models.Session
	adminSessions map[string]models.AdminSession
	banned        []string
	restricted    map[string][]string
}

// Open loads every persisted collection from the configured data directory
// and returns a ready Store. When no channel list exists yet the two default
// channels are created and persisted immediately.
func Open(cfg models.ConfigFile, sugar *zap.SugaredLogger) (*Store, error) {
	snapshots, err := persist.NewSnapshots(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	blobs, err := persist.NewLocalBlobStore(snapshots.FilesDir())
	if err != nil {
		return nil, err
	}

	s := &Store{
		sugar:         sugar,
		snapshots:     snapshots,
		blobs:         blobs,
		adminPassword: cfg.AdminPassword,
		maxFileSize:   MaxFileSize,
		clock:         time.Now,
		channels:      make(map[string]*models.ChannelState),
		sessions:      make(map[string]*models.Session),
		adminSessions: make(map[string]models.AdminSession),
		restricted:    make(map[string][]string),
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	names, err := s.snapshots.LoadChannels()
	if err != nil {
		return err
	}
	for _, name := range names {
		s.channels[name] = &models.ChannelState{Name: name, Messages: []models.Message{}}
	}

	if len(s.channels) == 0 {
		for _, name := range defaultChannels {
			s.channels[name] = &models.ChannelState{Name: name, Messages: []models.Message{}}
		}
		if err := s.snapshots.SaveChannels(s.channelNamesLocked()); err != nil {
			return err
		}
	}

	// Messages for channels absent from the channel list are dropped.
	loaded, err := s.snapshots.LoadMessages()
	if err != nil {
		return err
	}
	for name, state := range loaded {
		if ch, ok := s.channels[name]; ok && state.Messages != nil {
			ch.Messages = state.Messages
		}
	}

	if s.users, err = s.snapshots.LoadUsers(); err != nil {
		return err
	}
	if s.banned, err = s.snapshots.LoadBannedUsers(); err != nil {
		return err
	}
	if s.restricted, err = s.snapshots.LoadRestrictedChannels(); err != nil {
		return err
	}
	if s.restricted == nil {
		s.restricted = make(map[string][]string)
	}
	return nil
}

// Close flushes every collection to disk. Sessions are deliberately not
// persisted; a restart logs everyone out.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Join(
		s.saveMessagesLocked(),
		s.snapshots.SaveUsers(s.users),
		s.snapshots.SaveChannels(s.channelNamesLocked()),
		s.snapshots.SaveBannedUsers(s.bannedOrEmpty()),
		s.snapshots.SaveRestrictedChannels(s.restricted),
	)
}

func (s *Store) channelNamesLocked() []string {
	names := make([]string, 0, len(s.channels))
	for name := range s.channels {
		names = append(names, name)
	}
	return names
}

func (s *Store) saveMessagesLocked() error {
	flat := make(map[string]models.ChannelState, len(s.channels))
	for name, ch := range s.channels {
		flat[name] = *ch
	}
	if err := s.snapshots.SaveMessages(flat); err != nil {
		return fmt.Errorf("persisting messages: %w", err)
	}
	return nil
}

func (s *Store) bannedOrEmpty() []string {
	if s.banned == nil {
		return []string{}
	}
	return s.banned
}

func (s *Store) isBannedLocked(username string) bool {
	for _, banned := range s.banned {
		if banned == username {
			return true
		}
	}
	return false
}

func (s *Store) isRestrictedLocked(channel, username string) bool {
	for _, restricted := range s.restricted[channel] {
		if restricted == username {
			return true
		}
	}
	return false
}
