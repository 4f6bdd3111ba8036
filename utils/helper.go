package utils

import "strings"

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func NewBool(b bool) *bool {
	return &b
}

func NewString(s string) *string {
	return &s
}

// TrimmedOrNil returns nil for empty/whitespace-only strings so optional text
// columns stay NULL instead of being written as "".
func TrimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
