package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateToken returns a new opaque auth token.
func GenerateToken() string {
	return uuid.New().String()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(uuidStr))
}

// UUIDStrings renders ids for `$1::uuid[]` query parameters.
func UUIDStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// ParseDate accepts the YYYY-MM-DD form used by list filters.
func ParseDate(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return day, nil
}
