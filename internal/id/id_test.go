package id

import (
	"strings"
	"testing"
)

func TestShort_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		s := Short()
		if seen[s] {
			t.Fatalf("duplicate ID %q", s)
		}
		seen[s] = true
	}
}

func TestShort(t *testing.T) {
	s := Short()
	if len(s) != 16 {
		t.Fatalf("Short() length = %d, want 16", len(s))
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Errorf("Short() contains non-hex rune %q", c)
		}
	}
}

func TestPrefixed(t *testing.T) {
	got := Prefixed("exp")
	if !strings.HasPrefix(got, "exp_") || len(got) != 20 {
		t.Errorf("Prefixed(exp) = %q", got)
	}
	if got := Prefixed("req_"); !strings.HasPrefix(got, "req_") || strings.HasPrefix(got, "req__") {
		t.Errorf("Prefixed(req_) = %q", got)
	}
	if got := Prefixed(""); len(got) != 16 {
		t.Errorf("Prefixed(\"\") = %q", got)
	}
}
