// Package id generates Stripe-style external identifiers ("cat_xK9mP2vL3nQa").
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the length of the random part.
	DefaultLength = 12
)

const (
	PrefixPasskey  = "pk"
	PrefixCategory = "cat"
	PrefixPhoto    = "ph"
)

// Generate returns a cryptographically random Base62 string.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

// NewSID returns "<prefix>_<random>".
func NewSID(prefix string) (string, error) {
	s, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

// ValidateSID checks that sid carries the expected prefix and a Base62 body.
func ValidateSID(sid, prefix string) error {
	body, ok := strings.CutPrefix(sid, prefix+"_")
	if !ok || body == "" {
		return fmt.Errorf("invalid id %q: expected prefix %s_", sid, prefix)
	}
	for _, c := range body {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid id %q: unexpected character %q", sid, c)
		}
	}
	return nil
}
