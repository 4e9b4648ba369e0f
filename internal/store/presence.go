package store

import (
	"sort"

	"github.com/RygelGasparTheOG/rycord/internal/models"
)

// Heartbeat refreshes a session's liveness timestamp. An unknown token
// belonging to a registered username mints a session under that token, so a
// client that survived a server restart keeps appearing online without
// logging in again. Repeated calls only move the timestamp forward.
func (s *Store) Heartbeat(sessionID, username, fallbackColor string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, exists := s.sessions[sessionID]; exists {
		sess.LastSeen = s.clock()
		return
	}

	user, registered := s.users[username]
	if !registered {
		return
	}

	color := fallbackColor
	if color == "" {
		color = user.Color
	}
	s.sessions[sessionID] = &models.Session{
		Username: username,
		LastSeen: s.clock(),
		Color:    color,
	}
}

// OnlineUsers returns the distinct username/color pairs of every session
// seen within the presence window. Stale sessions are never evicted; they
// simply drop out of this view until refreshed.
func (s *Store) OnlineUsers() []models.OnlineUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	seen := make(map[models.OnlineUser]bool)
	users := []models.OnlineUser{}
	for _, sess := range s.sessions {
		if now.Sub(sess.LastSeen) >= PresenceWindow {
			continue
		}
		entry := models.OnlineUser{Username: sess.Username, Color: sess.Color}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		users = append(users, entry)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}
