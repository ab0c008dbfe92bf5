package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeID returns the canonical form of an identifier. UUIDs are accepted in
// any textual form uuid.Parse understands (braced, urn:uuid:, upper case, no
// hyphens) and rendered as lower-case 8-4-4-4-12; other identifiers such as
// 24-char hex object ids are trimmed and lower-cased.
func NormalizeID(id string) string {
	s := strings.TrimSpace(id)
	if s == "" {
		return ""
	}
	if u, err := uuid.Parse(s); err == nil {
		return u.String()
	}
	return strings.ToLower(s)
}

// NormalizeIDs normalizes every id in ids, dropping empty entries.
func NormalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n := NormalizeID(id); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SameID reports whether a and b denote the same non-empty identifier.
func SameID(a, b string) bool {
	na := NormalizeID(a)
	return na != "" && na == NormalizeID(b)
}

// ContainsID reports whether ids holds an identifier equal to id.
func ContainsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if SameID(candidate, id) {
			return true
		}
	}
	return false
}
