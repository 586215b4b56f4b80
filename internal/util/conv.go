package util

import (
	"strconv"
	"strings"
)

// MustParseUint returns 0 when s is not an unsigned integer.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	return uint(id)
}

// ParseOptionalUint parses s into a pointer, nil for an empty or invalid value.
func ParseOptionalUint(s string) *uint {
	id := MustParseUint(s)
	if id == 0 {
		return nil
	}
	return &id
}

// ParseIntDefault returns def for an empty or non-numeric value.
func ParseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// SplitCSV splits a comma list, trimming and dropping blanks.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
