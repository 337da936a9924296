package util

import (
	"strconv"
	"time"
)

// MustParseUint converts a path/query parameter to uint, returning 0 on
// malformed input.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseDate parses an optional YYYY-MM-DD query parameter as midnight UTC.
// Returns nil for an empty string and an error for malformed input.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
