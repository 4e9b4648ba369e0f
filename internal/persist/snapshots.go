// Package persist owns the durable representation of the chat state: one
// JSON document per collection, rewritten in full on every mutation, plus a
// blob store for uploaded file payloads. Only the store package calls it.
package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RygelGasparTheOG/rycord/internal/models"
)

const (
	channelsFile   = "channels.json"
	messagesFile   = "messages.json"
	usersFile      = "users.json"
	bannedFile     = "bannedusers.json"
	restrictedFile = "restricted.json"
	filesDirName   = "files"
)

// Snapshots reads and writes the per-collection documents under one data
// directory. A missing document is not an error: loads return the zero
// collection so that first boot starts empty.
type Snapshots struct {
	dataDir string
}

func NewSnapshots(dataDir string) (*Snapshots, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Snapshots{dataDir: dataDir}, nil
}

// FilesDir returns the directory blob payloads live in, for wiring a
// BlobStore next to the documents.
func (s *Snapshots) FilesDir() string {
	return filepath.Join(s.dataDir, filesDirName)
}

func (s *Snapshots) load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

func (s *Snapshots) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dataDir, name), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// LoadChannels returns the persisted channel-name list.
func (s *Snapshots) LoadChannels() ([]string, error) {
	var names []string
	err := s.load(channelsFile, &names)
	return names, err
}

func (s *Snapshots) SaveChannels(names []string) error {
	return s.save(channelsFile, names)
}

// LoadMessages returns the full per-channel message document.
func (s *Snapshots) LoadMessages() (map[string]models.ChannelState, error) {
	channels := make(map[string]models.ChannelState)
	err := s.load(messagesFile, &channels)
	return channels, err
}

func (s *Snapshots) SaveMessages(channels map[string]models.ChannelState) error {
	return s.save(messagesFile, channels)
}

func (s *Snapshots) LoadUsers() (map[string]models.User, error) {
	users := make(map[string]models.User)
	err := s.load(usersFile, &users)
	return users, err
}

func (s *Snapshots) SaveUsers(users map[string]models.User) error {
	return s.save(usersFile, users)
}

func (s *Snapshots) LoadBannedUsers() ([]string, error) {
	var banned []string
	err := s.load(bannedFile, &banned)
	return banned, err
}

func (s *Snapshots) SaveBannedUsers(banned []string) error {
	return s.save(bannedFile, banned)
}

func (s *Snapshots) LoadRestrictedChannels() (map[string][]string, error) {
	restricted := make(map[string][]string)
	err := s.load(restrictedFile, &restricted)
	return restricted, err
}

func (s *Snapshots) SaveRestrictedChannels(restricted map[string][]string) error {
	return s.save(restrictedFile, restricted)
}
