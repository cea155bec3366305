// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contesthub/server/config"
	"github.com/contesthub/server/db"
	"github.com/contesthub/server/models"
	"github.com/contesthub/server/payments"
)

// GetTestConfig returns a config suitable for handler tests
func GetTestConfig() config.Config {
	return config.Config{
		Port:            8080,
		MongoURI:        "mongodb://test",
		DBName:          "contesthub_test",
		StripeSecretKey: "sk_test_key",
	}
}

// MemStore is an in-memory db.Store used by handler tests in place of
// a live MongoDB. It enforces the same invariants as the Mongo
// implementation: unique user emails, unique (userId, contestId)
// participations, status-guarded transitions, and the compensating
// actions in AddParticipant and DeclareWinner.
type MemStore struct {
	mu             sync.Mutex
	users          map[string]*models.User
	contests       map[string]*models.Contest
	participations map[string]*models.Participation

	// Failure injection for the multi-document sequences.
	FailIncrement  bool // AddParticipant's counter increment fails
	FailWinnerMark bool // DeclareWinner's participation update fails
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:          make(map[string]*models.User),
		contests:       make(map[string]*models.Contest),
		participations: make(map[string]*models.Participation),
	}
}

// Users

func (s *MemStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *MemStore) InsertUser(ctx context.Context, u *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return "", db.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	u.ID = id
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	copied := *u
	s.users[id.Hex()] = &copied
	return id.Hex(), nil
}

func (s *MemStore) SetUserRole(ctx context.Context, id string, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return db.ErrNotFound
	}
	u.Role = role
	return nil
}

func (s *MemStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.users {
		out = append(out, *u)
	}
	sortByCreated(out, func(u models.User) (time.Time, string) { return u.CreatedAt, u.ID.Hex() })
	return out, nil
}

// Contests

func (s *MemStore) InsertContest(ctx context.Context, c *models.Contest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	c.ID = id
	if c.Status == "" {
		c.Status = models.StatusSubmitted
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	copied := *c
	s.contests[id.Hex()] = &copied
	return id.Hex(), nil
}

func (s *MemStore) GetContest(ctx context.Context, id string) (*models.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contests[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *MemStore) UpdateSubmittedContest(ctx context.Context, id string, upd models.ContestUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contests[id]
	if !ok || c.Status != models.StatusSubmitted {
		return db.ErrNotFound
	}
	c.ContestName = upd.ContestName
	c.Description = upd.Description
	c.Price = upd.Price
	c.PrizeMoney = upd.PrizeMoney
	c.TaskInstruction = upd.TaskInstruction
	c.SelectedTag = upd.SelectedTag
	c.Deadline = upd.Deadline
	c.Email = upd.Email
	if upd.Image != nil {
		c.Image = upd.Image
		c.ImageType = upd.ImageType
	}
	return nil
}

func (s *MemStore) DeleteSubmittedContest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contests[id]
	if !ok || c.Status != models.StatusSubmitted {
		return db.ErrNotFound
	}
	delete(s.contests, id)
	return nil
}

func (s *MemStore) AppendComment(ctx context.Context, id string, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contests[id]
	if !ok || c.Status != models.StatusSubmitted {
		return db.ErrNotFound
	}
	c.Comments = append(c.Comments, comment)
	return nil
}

func (s *MemStore) ConfirmContest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contests[id]
	if !ok || c.Status != models.StatusSubmitted {
		return db.ErrNotFound
	}
	c.Status = models.StatusConfirmed
	return nil
}

func (s *MemStore) ListContestsByStatus(ctx context.Context, statuses ...string) ([]models.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Contest{}
	for _, c := range s.contests {
		if containsStatus(statuses, c.Status) {
			out = append(out, *c)
		}
	}
	sortByCreated(out, func(c models.Contest) (time.Time, string) { return c.CreatedAt, c.ID.Hex() })
	return out, nil
}

func (s *MemStore) ListContestsByCreator(ctx context.Context, email string, statuses ...string) ([]models.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Contest{}
	for _, c := range s.contests {
		if c.Email == email && containsStatus(statuses, c.Status) {
			out = append(out, *c)
		}
	}
	sortByCreated(out, func(c models.Contest) (time.Time, string) { return c.CreatedAt, c.ID.Hex() })
	return out, nil
}

func (s *MemStore) ListContestsByIDs(ctx context.Context, ids []string) ([]models.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Contest{}
	for _, id := range ids {
		if c, ok := s.contests[id]; ok {
			out = append(out, *c)
		}
	}
	sortByCreated(out, func(c models.Contest) (time.Time, string) { return c.CreatedAt, c.ID.Hex() })
	return out, nil
}

// Participation

func (s *MemStore) AddParticipant(ctx context.Context, p *models.Participation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.participations {
		if existing.UserID == p.UserID && existing.ContestID == p.ContestID {
			return "", db.ErrDuplicate
		}
	}

	id := primitive.NewObjectID()
	p.ID = id
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	copied := *p
	s.participations[id.Hex()] = &copied

	c, ok := s.contests[p.ContestID]
	if !ok || s.FailIncrement {
		// Same compensation as the Mongo store: the insert is undone
		// when the counter cannot be bumped.
		delete(s.participations, id.Hex())
		if !ok {
			return "", db.ErrNotFound
		}
		return "", errors.New("injected increment failure")
	}
	c.Participants++

	return id.Hex(), nil
}

func (s *MemStore) SetSubmissionURL(ctx context.Context, contestID, userID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participations {
		if p.ContestID == contestID && p.UserID == userID {
			p.SubmissionURL = url
			return nil
		}
	}
	return db.ErrNotFound
}

func (s *MemStore) DeclareWinner(ctx context.Context, contestID string, w models.Winner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contests[contestID]
	if !ok {
		return db.ErrNotFound
	}
	if c.Status != models.StatusConfirmed {
		return db.ErrWrongStatus
	}

	winner := w
	c.Winner = &winner
	c.Status = models.StatusClosed

	var target *models.Participation
	for _, p := range s.participations {
		if p.ContestID == contestID && p.UserID == w.UserID {
			target = p
			break
		}
	}
	if target == nil || s.FailWinnerMark {
		// Compensate the contest write so the two collections agree.
		c.Winner = nil
		c.Status = models.StatusConfirmed
		if target == nil {
			return db.ErrNotFound
		}
		return errors.New("injected winner-mark failure")
	}
	target.Winner = true

	return nil
}

func (s *MemStore) ListParticipationsByEmail(ctx context.Context, email string) ([]models.Participation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Participation{}
	for _, p := range s.participations {
		if p.Email == email {
			out = append(out, *p)
		}
	}
	sortByCreated(out, func(p models.Participation) (time.Time, string) { return p.CreatedAt, p.ID.Hex() })
	return out, nil
}

func (s *MemStore) ListParticipationsByContest(ctx context.Context, contestID string) ([]models.Participation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Participation{}
	for _, p := range s.participations {
		if p.ContestID == contestID {
			out = append(out, *p)
		}
	}
	sortByCreated(out, func(p models.Participation) (time.Time, string) { return p.CreatedAt, p.ID.Hex() })
	return out, nil
}

func (s *MemStore) CountParticipationsByUser(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, p := range s.participations {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *MemStore) CountWinsByUser(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, p := range s.participations {
		if p.UserID == userID && p.Winner {
			count++
		}
	}
	return count, nil
}

func (s *MemStore) ListWonContests(ctx context.Context, userID string) ([]models.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Contest{}
	for _, c := range s.contests {
		if c.Status == models.StatusClosed && c.Winner != nil && c.Winner.UserID == userID {
			out = append(out, *c)
		}
	}
	sortByCreated(out, func(c models.Contest) (time.Time, string) { return c.CreatedAt, c.ID.Hex() })
	return out, nil
}

func containsStatus(statuses []string, status string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func sortByCreated[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti.Equal(tj) {
			return idi < idj
		}
		return ti.Before(tj)
	})
}

// FakeProvider is a scriptable payments.Provider for tests.
type FakeProvider struct {
	mu      sync.Mutex
	intents map[string]*payments.Intent

	CreateErr error // returned by CreateIntent when set
	GetErr    error // returned by GetIntent when set
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{intents: make(map[string]*payments.Intent)}
}

func (f *FakeProvider) CreateIntent(ctx context.Context, amountCents int64, email, name, photoURL string) (*payments.Intent, error) {
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := "pi_" + uuid.NewString()
	intent := &payments.Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.NewString(),
		Status:       "requires_payment_method",
	}
	f.intents[id] = intent
	return intent, nil
}

func (f *FakeProvider) GetIntent(ctx context.Context, id string) (*payments.Intent, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	intent, ok := f.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such payment intent: %s", id)
	}
	copied := *intent
	return &copied, nil
}

// SeedIntent registers an intent with the given status and returns its ID
func (f *FakeProvider) SeedIntent(status string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := "pi_" + uuid.NewString()
	f.intents[id] = &payments.Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.NewString(),
		Status:       status,
	}
	return id
}

// Fixture helpers

// CreateTestUser inserts a user and returns its ID
func CreateTestUser(t *testing.T, store db.Store, email, role string) string {
	t.Helper()
	id, err := store.InsertUser(context.Background(), &models.User{
		Email: email,
		Name:  "Test User",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// CreateTestContest inserts a contest with the given status and
// deadline and returns its ID
func CreateTestContest(t *testing.T, store db.Store, status string, deadline time.Time) string {
	t.Helper()
	id, err := store.InsertContest(context.Background(), &models.Contest{
		ContestName: "Test Contest",
		Description: "A test contest",
		Price:       "25.00",
		PrizeMoney:  "500",
		SelectedTag: "design",
		Deadline:    deadline,
		Email:       "creator@example.com",
		Status:      status,
	})
	if err != nil {
		t.Fatalf("Failed to create test contest: %v", err)
	}
	return id
}

// CreateTestParticipation links a user to a contest through the store
func CreateTestParticipation(t *testing.T, store db.Store, contestID, userID, email string) string {
	t.Helper()
	id, err := store.AddParticipant(context.Background(), &models.Participation{
		UserID:          userID,
		ContestID:       contestID,
		Email:           email,
		Name:            "Test User",
		PaymentIntentID: "pi_" + uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("Failed to create test participation: %v", err)
	}
	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
