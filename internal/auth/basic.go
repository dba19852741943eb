// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for the configured password.
const bcryptCost = 12

// MinPasswordLength is the shortest accepted admin password.
const MinPasswordLength = 8

// BasicAuthManager handles HTTP Basic Authentication with secure password verification
type BasicAuthManager struct {
	username     string
	passwordHash []byte
}

// NewBasicAuthManager hashes password once so requests only compare.
func NewBasicAuthManager(username, password string) (*BasicAuthManager, error) {
	return newBasicAuthManager(username, password, bcryptCost)
}

func newBasicAuthManager(username, password string, cost int) (*BasicAuthManager, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &BasicAuthManager{
		username:     username,
		passwordHash: hash,
	}, nil
}

// ValidateCredentials checks an Authorization header and returns the
// username on success.
func (m *BasicAuthManager) ValidateCredentials(authHeader string) (string, error) {
	encoded, ok := strings.CutPrefix(authHeader, "Basic ")
	if !ok {
		return "", ErrNoCredentials
	}

	credentials, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: malformed encoding", ErrInvalidCredentials)
	}

	username, password, ok := strings.Cut(string(credentials), ":")
	if !ok {
		return "", fmt.Errorf("%w: missing separator", ErrInvalidCredentials)
	}

	if !m.validateUsernamePassword(username, password) {
		return "", ErrInvalidCredentials
	}
	return username, nil
}

// validateUsernamePassword always runs both comparisons so timing does not
// reveal which one failed.
func (m *BasicAuthManager) validateUsernamePassword(username, password string) bool {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
	return usernameMatch && passwordMatch
}

// GetWWWAuthenticateHeader returns the WWW-Authenticate header value
func (m *BasicAuthManager) GetWWWAuthenticateHeader() string {
	return `Basic realm="Trackview", charset="UTF-8"`
}
