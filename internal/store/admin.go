package store

import (
	"sort"

	"github.com/google/uuid"

	"github.com/RygelGasparTheOG/rycord/internal/models"
)

// AdminData is the full moderation view returned to an authenticated admin,
// bypassing per-channel and per-user access checks.
type AdminData struct {
	Channels           []string            `json:"channels"`
	Users              []string            `json:"users"`
	BannedUsers        []string            `json:"banned_users"`
	RestrictedChannels map[string][]string `json:"restricted_channels"`
}

// AdminAuthenticate checks the shared admin secret and mints an admin
// session token. Admin sessions never expire.
func (s *Store) AdminAuthenticate(password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if password != s.adminPassword {
		return "", ErrInvalidAdminPassword
	}

	token := uuid.NewString()
	s.adminSessions[token] = models.AdminSession{CreatedAt: s.clock()}
	return token, nil
}

// AdminSnapshot returns copies of the channel, user, ban and restriction
// collections.
func (s *Store) AdminSnapshot(adminSessionID string) (AdminData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.adminSessions[adminSessionID]; !exists {
		return AdminData{}, ErrInvalidAdminSession
	}

	usernames := make([]string, 0, len(s.users))
	for username := range s.users {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	channels := s.channelNamesLocked()
	sort.Strings(channels)

	restricted := make(map[string][]string, len(s.restricted))
	for channel, names := range s.restricted {
		restricted[channel] = append([]string{}, names...)
	}

	return AdminData{
		Channels:           channels,
		Users:              usernames,
		BannedUsers:        append([]string{}, s.bannedOrEmpty()...),
		RestrictedChannels: restricted,
	}, nil
}

// AdminReplace applies the admin panel's full-state write: channels are
// diff-replaced (new names created empty, missing names dropped with their
// messages), bans and restrictions are replaced wholesale. Every affected
// document is persisted before success is reported.
func (s *Store) AdminReplace(adminSessionID string, channels []string, banned []string, restricted map[string][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.adminSessions[adminSessionID]; !exists {
		return ErrInvalidAdminSession
	}

	s.replaceChannelsLocked(channels)

	s.banned = append([]string{}, banned...)
	s.restricted = make(map[string][]string, len(restricted))
	for channel, names := range restricted {
		s.restricted[channel] = append([]string{}, names...)
	}

	return s.persistModerationLocked()
}
