package utils

import "unicode"

// MaxSessionIDLength bounds client-supplied session ids.
const MaxSessionIDLength = 128

// IsValidSessionID accepts non-empty ids made of printable characters.
// Spaces are allowed; the id is otherwise opaque.
func IsValidSessionID(id string) bool {
	if id == "" || len(id) > MaxSessionIDLength {
		return false
	}
	for _, r := range id {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
