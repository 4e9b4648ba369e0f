package models

import "time"

// User is a registered account. The map key in users.json is the username,
// so the struct only carries the per-user fields.
type User struct {
	PasswordHash string `json:"password_hash"`
	Color        string `json:"color"`
}

// Session binds an opaque token to a username. Sessions live in memory only
// and are never persisted; a restart logs everyone out.
type Session struct {
	Username string
	LastSeen time.Time
	Color    string
}

// AdminSession is minted by a successful admin login. It has no expiry.
type AdminSession struct {
	CreatedAt time.Time
}

type Message struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Color     string `json:"color"`
	Type      string `json:"type"`
	FileID    string `json:"fileId,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	FileSize  int64  `json:"fileSize,omitempty"`
}

const (
	MessageTypeText = "text"
	MessageTypeFile = "file"
)

// ChannelState is the persisted shape of one channel in messages.json.
type ChannelState struct {
	Name     string    `json:"name"`
	Messages []Message `json:"messages"`
}

// FileMetadata is the sidecar document written next to each stored blob.
type FileMetadata struct {
	MimeType string `json:"mimeType"`
	FileName string `json:"fileName"`
}

// OnlineUser is one entry of the presence view.
type OnlineUser struct {
	Username string `json:"username"`
	Color    string `json:"color"`
}

type ConfigFile struct {
	Address           string
	Port              string
	DataDir           string
	StaticDir         string
	AdminPassword     string
	PrintHttpRequests bool
}
