package domain

import (
	"strings"
	"unicode"
)

// PlateKey is the normalized identity of a vehicle plate across both collections.
// A valid key is uppercase, non-empty and contains no whitespace.
type PlateKey string

// Normalize canonicalizes a raw plate string into a comparable key by removing
// every whitespace rune and converting to uppercase.
// It never fails; empty or all-whitespace input yields the empty key, which
// callers must reject with Valid.
func Normalize(raw string) PlateKey {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	return PlateKey(strings.ToUpper(stripped))
}

// String returns the string representation of the plate key.
func (k PlateKey) String() string {
	return string(k)
}

// Valid returns true if the key is non-empty.
func (k PlateKey) Valid() bool {
	return k != ""
}
