package id

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewGUID returns a new random identifier in canonical UUID form.
func NewGUID() string {
	return uuid.NewString()
}

// NewFileToken returns a new random identifier suitable for a file name.
func NewFileToken() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// IsGUID reports whether value parses as a UUID.
func IsGUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
