// Trackview - OwnTracks Location History Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trackview

package auth

import (
	"encoding/base64"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestNewBasicAuthManager_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "admin", "password123", false},
		{"empty username", "", "password123", true},
		{"empty password", "admin", "", true},
		{"short password", "admin", "short", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newBasicAuthManager(tt.username, tt.password, bcrypt.MinCost)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBasicAuthManager_ValidateCredentials(t *testing.T) {
	m, err := newBasicAuthManager("admin", "password123", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		header   string
		wantUser string
		wantErr  error
	}{
		{"valid", basicHeader("admin", "password123"), "admin", nil},
		{"wrong password", basicHeader("admin", "nope12345"), "", ErrInvalidCredentials},
		{"wrong username", basicHeader("root", "password123"), "", ErrInvalidCredentials},
		{"bearer scheme", "Bearer abc", "", ErrNoCredentials},
		{"bad base64", "Basic !!!", "", ErrInvalidCredentials},
		{"no separator", "Basic " + base64.StdEncoding.EncodeToString([]byte("admin")), "", ErrInvalidCredentials},
		{"password with colon", basicHeader("admin", "pass:word"), "", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := m.ValidateCredentials(tt.header)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user != tt.wantUser {
				t.Errorf("user = %q, want %q", user, tt.wantUser)
			}
		})
	}
}

func TestBasicAuthManager_PasswordContainingColon(t *testing.T) {
	m, err := newBasicAuthManager("admin", "pass:word:99", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ValidateCredentials(basicHeader("admin", "pass:word:99")); err != nil {
		t.Errorf("expected success, got %v", err)
	}
}

func TestParseAuthMode(t *testing.T) {
	tests := []struct {
		in      string
		want    AuthMode
		wantErr bool
	}{
		{"", AuthModeNone, false},
		{"none", AuthModeNone, false},
		{"basic", AuthModeBasic, false},
		{"jwt", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAuthMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAuthMode(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseAuthMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
