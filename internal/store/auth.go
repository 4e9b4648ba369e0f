package store

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/RygelGasparTheOG/rycord/internal/models"
)

// DefaultColor is used for messages whose session carries no display color.
const DefaultColor = "#5865f2"

var palette = []string{
	"#ed4245", "#f57c00", "#ffa500", "#43b581",
	"#00acc1", "#5865f2", "#9c27b0", "#e91e63",
}

func randomColor() string {
	return palette[rand.Intn(len(palette))]
}

// Register creates a new user with a freshly hashed password and a random
// display color, and persists the user table before reporting success.
func (s *Store) Register(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return ErrUsernameTaken
	}
	if s.isBannedLocked(username) {
		return ErrBanned
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	s.users[username] = models.User{
		PasswordHash: string(hash),
		Color:        randomColor(),
	}

	if err := s.snapshots.SaveUsers(s.users); err != nil {
		return fmt.Errorf("persisting users: %w", err)
	}
	return nil
}

// Authenticate checks credentials and mints a new session. The token and the
// user's display color are returned on success. Sessions live in memory
// only.
func (s *Store) Authenticate(username, password string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isBannedLocked(username) {
		return "", "", ErrBanned
	}

	user, exists := s.users[username]
	if !exists {
		return "", "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.sessions[token] = &models.Session{
		Username: username,
		LastSeen: s.clock(),
		Color:    user.Color,
	}
	return token, user.Color, nil
}
