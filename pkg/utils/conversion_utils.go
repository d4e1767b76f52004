package utils

import (
	"strconv"
	"strings"
)

// PositiveIntOr parses s as a positive integer.
// Empty, malformed or non-positive input yields fallback.
func PositiveIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// ClampInt bounds n to [lo, hi].
func ClampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
