// Package statusflag normalizes the two-valued done/not-done status used by
// schedules and health checks. Callers may send any of several synonyms
// ("yes", "sudah", "1", ...); storage only ever holds "Y" or "N".
package statusflag

import "strings"

// Flag is the canonical two-valued status.
type Flag string

const (
	Done    Flag = "Y"
	NotDone Flag = "N"
)

// doneSynonyms lists the accepted spellings for the done value,
// compared case-insensitively.
var doneSynonyms = map[string]bool{
	"y":       true,
	"yes":     true,
	"true":    true,
	"1":       true,
	"sudah":   true,
	"selesai": true,
}

// Normalize maps an arbitrary caller-supplied status string to Done or
// NotDone. Anything not in the synonym table, including the empty string,
// maps to NotDone. Normalize is idempotent: Normalize(string(f)) == f.
func Normalize(s string) Flag {
	if doneSynonyms[strings.ToLower(strings.TrimSpace(s))] {
		return Done
	}
	return NotDone
}

// IsValid reports whether s is already one of the canonical values.
func IsValid(s string) bool {
	return s == string(Done) || s == string(NotDone)
}
