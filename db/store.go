// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"

	"github.com/contesthub/server/models"
)

var (
	// ErrNotFound means no document matched the given identifier or filter.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate")
	// ErrWrongStatus means the document exists but is not in a status
	// that allows the requested transition.
	ErrWrongStatus = errors.New("wrong status")
)

// Store is the persistence surface used by the HTTP handlers. It is
// implemented by Mongo for production and by testutil.MemStore for tests.
type Store interface {
	// Users
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUser(ctx context.Context, u *models.User) (string, error)
	SetUserRole(ctx context.Context, id string, role string) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]models.User, error)

	// Contests
	InsertContest(ctx context.Context, c *models.Contest) (string, error)
	GetContest(ctx context.Context, id string) (*models.Contest, error)
	UpdateSubmittedContest(ctx context.Context, id string, upd models.ContestUpdate) error
	DeleteSubmittedContest(ctx context.Context, id string) error
	AppendComment(ctx context.Context, id string, comment string) error
	ConfirmContest(ctx context.Context, id string) error
	ListContestsByStatus(ctx context.Context, statuses ...string) ([]models.Contest, error)
	ListContestsByCreator(ctx context.Context, email string, statuses ...string) ([]models.Contest, error)
	ListContestsByIDs(ctx context.Context, ids []string) ([]models.Contest, error)

	// Participation
	AddParticipant(ctx context.Context, p *models.Participation) (string, error)
	SetSubmissionURL(ctx context.Context, contestID, userID, url string) error
	DeclareWinner(ctx context.Context, contestID string, w models.Winner) error
	ListParticipationsByEmail(ctx context.Context, email string) ([]models.Participation, error)
	ListParticipationsByContest(ctx context.Context, contestID string) ([]models.Participation, error)
	CountParticipationsByUser(ctx context.Context, userID string) (int64, error)
	CountWinsByUser(ctx context.Context, userID string) (int64, error)
	ListWonContests(ctx context.Context, userID string) ([]models.Contest, error)
}
