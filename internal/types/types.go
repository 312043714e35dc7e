package types

import (
	"strings"
)

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// TrimmedPtr trims s and returns nil when nothing is left
func TrimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// FirstNonEmpty returns the first pointer holding a non-blank string
func FirstNonEmpty(values ...*string) *string {
	for _, v := range values {
		if t := TrimmedPtr(v); t != nil {
			return t
		}
	}
	return nil
}

// UniqueStrings drops blanks and duplicates while keeping order
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
