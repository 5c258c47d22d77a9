package utils

import (
	"github.com/google/uuid"
)

// GenerateSessionToken mints an opaque bearer token for admin sessions.
func GenerateSessionToken() string {
	return uuid.NewString()
}
