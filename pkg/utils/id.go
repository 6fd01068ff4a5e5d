package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a short upper-case identifier such as "P-1A2B3C4D"
func NewID(prefix string) string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	if prefix == "" {
		return short
	}
	return prefix + "-" + short
}

// NewRequestID returns a full random UUID string
func NewRequestID() string {
	return uuid.NewString()
}
