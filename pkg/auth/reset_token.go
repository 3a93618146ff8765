package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes is the entropy of a password-reset token.
const resetTokenBytes = 32

type resetTokenGenerator struct{}

// NewResetTokenGenerator creates a new ResetTokenGenerator.
func NewResetTokenGenerator() ResetTokenGenerator {
	return &resetTokenGenerator{}
}

// Generate creates a 64-character hex token and its SHA-256 digest.
func (g *resetTokenGenerator) Generate() (string, string, error) {
	bytes := make([]byte, resetTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(bytes)
	return token, g.Hash(token), nil
}

// Hash returns the SHA-256 hash of the token as a hex string.
func (g *resetTokenGenerator) Hash(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
