// Package uuid provides entry identifier generation and validation.
package uuid

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// UUID v4 format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
// where y is one of [8, 9, a, b] (variant bits)
var uuidV4Regex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// New generates a new collision-resistant identifier. It prefers a
// cryptographically random UUID v4 and falls back to a timestamp plus
// random suffix if the random source is unavailable. It never fails
// and never blocks.
func New() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackID()
	}
	return id.String()
}

// fallbackID composes an identifier from the current time and a weak
// random suffix. Collisions require two ids minted in the same
// nanosecond with the same suffix.
func fallbackID() string {
	return fmt.Sprintf("%x-%06x", time.Now().UnixNano(), rand.Intn(1<<24))
}

// IsValid checks if a string is a valid UUID v4.
// Enforces strict format with dashes and correct variant bits.
func IsValid(s string) bool {
	return uuidV4Regex.MatchString(s)
}

// Validate returns an error if the string is not a valid UUID v4.
func Validate(s string) error {
	if !IsValid(s) {
		return fmt.Errorf("invalid UUID v4 format: %q", s)
	}
	return nil
}
