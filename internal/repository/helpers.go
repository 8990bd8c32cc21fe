package repository

import (
	"strings"
	"time"
)

// timeLayout is a fixed-width UTC layout so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// parseTime parses a stored timestamp
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// formatTime formats t for storage
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
