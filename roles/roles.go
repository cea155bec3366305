// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roles

import (
	"context"
	"errors"

	"github.com/contesthub/server/db"
	"github.com/contesthub/server/models"
)

// Role is one of the closed set of user roles.
type Role string

const (
	Admin          Role = "admin"
	ContestCreator Role = "contest_creator"
	User           Role = "user"
)

var ErrUnknownRole = errors.New("unknown role")

// Parse validates a role string against the closed set.
func Parse(s string) (Role, error) {
	switch Role(s) {
	case Admin, ContestCreator, User:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// IsValid reports whether s names a known role.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// UserFinder is the slice of the store needed for role checks.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Check looks up the user by email and reports whether they hold the
// given role. A missing user is not an error; it simply checks false.
func Check(ctx context.Context, finder UserFinder, email string, role Role) (bool, error) {
	user, err := finder.FindUserByEmail(ctx, email)
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Role == string(role), nil
}
