package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSessionID creates a short, human-readable id for a background
// session such as a project poller.
// Format: {kind}-{shortBuildID}-{8charHexUUID}
//
// Example:
//   - Input: kind="poll", buildID="&2kYfV9QsbN3a"
//   - Output: "poll-2kYfV9Qs-a3f8e2b1"
func GenerateSessionID(kind, buildID string) string {
	return kind + "-" + shortBuildID(buildID) + "-" + generateShortUUID()
}

// shortBuildID keeps the first 8 alphanumeric characters of a build id.
// Ids with none fall back to "none".
func shortBuildID(buildID string) string {
	var b strings.Builder
	for _, r := range buildID {
		if b.Len() == 8 {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "none"
	}
	return b.String()
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
