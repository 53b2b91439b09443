// Package token issues opaque random tokens and their storage digests.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SessionTokenBytes gives session tokens 256 bits of entropy.
const SessionTokenBytes = 32

type TokenGenerator interface {
	// Generate returns a hex token of n random bytes and its SHA-256 digest.
	Generate(n int) (plainToken string, hash string, err error)
	Hash(plainToken string) string
}

type tokenGenerator struct{}

func NewTokenGenerator() TokenGenerator {
	return &tokenGenerator{}
}

func (g *tokenGenerator) Generate(n int) (string, string, error) {
	plain, err := RandomHex(n)
	if err != nil {
		return "", "", err
	}
	return plain, g.Hash(plain), nil
}

func (g *tokenGenerator) Hash(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}

// RandomHex returns n cryptographically random bytes, hex encoded.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
