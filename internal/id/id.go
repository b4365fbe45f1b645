// Package id provides unique identifier generation for expectations and
// journal entries.
package id

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Short generates a 16-character hex ID taken from a random UUID.
// Suitable for user-facing IDs where brevity matters.
func Short() string {
	u := uuid.New()
	return hex.EncodeToString(u[:8])
}

// Prefixed returns prefix + "_" + Short(), e.g. "exp_3f9a0c1d2b4e5f60".
func Prefixed(prefix string) string {
	if prefix == "" {
		return Short()
	}
	return strings.TrimSuffix(prefix, "_") + "_" + Short()
}
