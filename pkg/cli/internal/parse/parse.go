// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"os"
	"strings"
)

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to ':'.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{':'}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// SplitTrim splits a string by separator and trims each part.
// Empty parts are dropped.
func SplitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// PathList splits an environment value holding paths separated by commas
// or the OS path list separator.
func PathList(s string) []string {
	s = strings.ReplaceAll(s, string(os.PathListSeparator), ",")
	return SplitTrim(s, ",")
}
