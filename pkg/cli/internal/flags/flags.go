// Package flags provides reusable flag types for CLI commands.
package flags

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getmockd/mockhttp/pkg/cli/internal/parse"
)

// StringSlice implements pflag.Value for repeatable string flags.
// A single value may also carry a comma-separated list.
type StringSlice []string

// String returns the string representation of the flag value.
func (s *StringSlice) String() string {
	return strings.Join(*s, ",")
}

// Set appends one or more comma-separated values to the slice.
func (s *StringSlice) Set(value string) error {
	*s = append(*s, parse.SplitTrim(value, ",")...)
	return nil
}

// Type specifies the type label for Cobra flags.
func (s *StringSlice) Type() string {
	return "stringSlice"
}

// Headers implements pflag.Value for repeatable "Name: value" flags.
// A later value for the same name replaces the earlier one.
type Headers map[string]string

// String returns the headers as "Name: value" pairs in name order.
func (h *Headers) String() string {
	if h == nil || len(*h) == 0 {
		return ""
	}
	names := make([]string, 0, len(*h))
	for name := range *h {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + (*h)[name]
	}
	return strings.Join(parts, ", ")
}

// Set parses one "Name: value" pair.
func (h *Headers) Set(value string) error {
	name, val, ok := parse.KeyValue(value, ':')
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("invalid header %q: expected \"Name: value\"", value)
	}
	if *h == nil {
		*h = make(Headers)
	}
	(*h)[name] = strings.TrimSpace(val)
	return nil
}

// Type specifies the type label for Cobra flags.
func (h *Headers) Type() string {
	return "header"
}
