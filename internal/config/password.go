// Package config provides operator password verification.
package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// OperatorAuth verifies the shared operator password against a bcrypt hash
// supplied via environment. The API is operator-facing tooling, not a
// multi-user product, so a single credential is enough.
type OperatorAuth struct {
	passwordHash string
}

// NewOperatorAuth reads OPERATOR_PASSWORD_HASH (a bcrypt hash) from the
// environment.
func NewOperatorAuth() (*OperatorAuth, error) {
	hash := os.Getenv("OPERATOR_PASSWORD_HASH")
	if hash == "" {
		return nil, fmt.Errorf("OPERATOR_PASSWORD_HASH is required but not set")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("OPERATOR_PASSWORD_HASH is not a valid bcrypt hash: %w", err)
	}
	return &OperatorAuth{passwordHash: hash}, nil
}

// Verify checks a presented password against the stored hash.
func (a *OperatorAuth) Verify(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
}

// HashPassword produces a bcrypt hash suitable for OPERATOR_PASSWORD_HASH.
// Exposed for the hash-password helper flow in the CLI.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
