package store

import "errors"

var (
	// registration / login
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrBanned             = errors.New("user is banned")

	// sessions
	ErrInvalidSession = errors.New("invalid session")

	// channels / messages
	ErrChannelRestricted = errors.New("user is restricted from channel")
	ErrMessageNotFound   = errors.New("message not found")
	ErrNotMessageAuthor  = errors.New("not the message author")

	// file uploads
	ErrInvalidFileData = errors.New("invalid file data")
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileNotFound    = errors.New("file not found")

	// admin
	ErrInvalidAdminPassword = errors.New("invalid admin password")
	ErrInvalidAdminSession  = errors.New("invalid admin session")
)
