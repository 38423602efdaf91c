// Package joincode generates the short human-facing codes participants type
// to join an event.
package joincode

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Alphabet excludes I, O, 0 and 1 so codes survive being read aloud or
// copied from a printed flyer.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length of every join code.
const Length = 6

// Generate returns a new random join code. Uniqueness is the caller's
// problem: codes collide rarely but the event creation path still checks
// the store and retries.
func Generate() (string, error) {
	var b strings.Builder
	b.Grow(Length)
	max := big.NewInt(int64(len(Alphabet)))
	for i := 0; i < Length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(Alphabet[n.Int64()])
	}
	return b.String(), nil
}

// Normalize canonicalizes user input before lookup: surrounding whitespace
// stripped, letters uppercased.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsWellFormed reports whether code has the exact shape Generate produces.
func IsWellFormed(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(Alphabet, rune(code[i])) {
			return false
		}
	}
	return true
}
