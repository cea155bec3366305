// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/contesthub/server/models"
	"github.com/contesthub/server/testutil"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input    string
		expected Role
		wantErr  bool
	}{
		{"admin", Admin, false},
		{"contest_creator", ContestCreator, false},
		{"user", User, false},
		{"", "", true},
		{"Admin", "", true},
		{"superuser", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			role, err := Parse(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownRole) {
					t.Errorf("Expected ErrUnknownRole for %q, got %v", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tc.input, err)
			}
			if role != tc.expected {
				t.Errorf("Expected role %q, got %q", tc.expected, role)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("admin") {
		t.Error("Expected 'admin' to be valid")
	}
	if IsValid("moderator") {
		t.Error("Expected 'moderator' to be invalid")
	}
}

func TestCheck(t *testing.T) {
	store := testutil.NewMemStore()

	if _, err := store.InsertUser(context.Background(), &models.User{
		Email: "admin@example.com",
		Role:  string(Admin),
	}); err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}

	testCases := []struct {
		name     string
		email    string
		role     Role
		expected bool
	}{
		{"matching role", "admin@example.com", Admin, true},
		{"different role", "admin@example.com", ContestCreator, false},
		{"unknown email checks false", "nobody@example.com", Admin, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := Check(context.Background(), store, tc.email, tc.role)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if ok != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, ok)
			}
		})
	}
}
