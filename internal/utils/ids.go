package utils

import "github.com/google/uuid"

// NewSessionID returns a random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
