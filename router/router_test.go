// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contesthub/server/models"
	"github.com/contesthub/server/payments"
	"github.com/contesthub/server/testutil"
)

func newTestRouter() (*testutil.MemStore, *testutil.FakeProvider, http.Handler) {
	store := testutil.NewMemStore()
	provider := testutil.NewFakeProvider()
	mux := NewRouter(store, provider, testutil.GetTestConfig())
	return store, provider, mux
}

func TestHealthEndpoint(t *testing.T) {
	_, _, mux := newTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	_, _, mux := newTestRouter()

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "Contesthub server is running"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	_, _, mux := newTestRouter()

	id := primitive.NewObjectID().Hex()

	// Handlers may return 400/404 on empty bodies or unknown ids; the
	// point is that the route is matched at all.
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/users"},
		{"GET", "/users"},
		{"PATCH", "/users/" + id + "/role"},
		{"DELETE", "/users/" + id},
		{"GET", "/users/admin/test@example.com"},
		{"GET", "/users/contest_creator/test@example.com"},
		{"GET", "/users/user/test@example.com"},

		{"POST", "/add-contest"},
		{"PUT", "/pending/" + id},
		{"DELETE", "/pending/" + id},
		{"GET", "/pending"},
		{"GET", "/fetch-all-contests"},
		{"POST", "/add-comment/" + id},
		{"PUT", "/confirm-contest/" + id},
		{"GET", "/contest_info"},
		{"GET", "/fetch-my-contests/test@example.com"},
		{"GET", "/fetch-accepted-contests/test@example.com"},

		{"POST", "/create-payment-intent"},
		{"POST", "/confirm-payment"},
		{"POST", "/submit-url"},
		{"POST", "/declare-winner"},
		{"GET", "/participated-contests/" + id},
		{"GET", "/won-contests/" + id},
		{"GET", "/won-contests-details/" + id},
		{"GET", "/participated-contests-by-email/test@example.com"},
		{"GET", "/contest-participants/" + id},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, _, mux := newTestRouter()

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},       // Only GET is defined
		{"GET", "/add-contest"},   // Only POST is defined
		{"DELETE", "/contest_info"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

// TestContestLifecycle drives one contest through the whole flow over
// the real routes: creator submits, admin comments and confirms, an
// entrant pays and joins, submits their work, and after the deadline
// passes the creator declares them the winner.
func TestContestLifecycle(t *testing.T) {
	_, provider, mux := newTestRouter()

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	// Register the two parties
	w := serve(testutil.MakeRequest("POST", "/users", models.CreateUserRequest{
		Email: "creator@example.com", Name: "Creator", Role: "contest_creator",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = serve(testutil.MakeRequest("POST", "/users", models.CreateUserRequest{
		Email: "entrant@example.com", Name: "Entrant",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.CreateUserResponse
	testutil.AssertJSON(t, w, &created)
	entrantID := created.InsertedID

	// Creator submits a contest. The deadline is already in the past so
	// the closing steps can run in the same test.
	w = serve(testutil.MakeRequest("POST", "/add-contest", models.ContestRequest{
		ContestName: "Logo Design Sprint",
		Description: "Design a logo",
		Price:       "25.00",
		PrizeMoney:  "500",
		SelectedTag: "design",
		Deadline:    time.Now().Add(-time.Hour),
		Email:       "creator@example.com",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var submitted models.CreateContestResponse
	testutil.AssertJSON(t, w, &submitted)
	contestID := submitted.InsertedID

	// It shows up in the admin's pending list
	w = serve(testutil.MakeRequest("GET", "/pending", nil, nil))
	var pending []models.Contest
	testutil.AssertJSON(t, w, &pending)
	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending contest, got %d", len(pending))
	}

	// Admin leaves a comment, then approves
	w = serve(testutil.MakeRequest("POST", "/add-comment/"+contestID, models.AddCommentRequest{
		Comment: "Looks good, approved.",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = serve(testutil.MakeRequest("PUT", "/confirm-contest/"+contestID, nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Now public, no longer pending
	w = serve(testutil.MakeRequest("GET", "/contest_info", nil, nil))
	var public []models.Contest
	testutil.AssertJSON(t, w, &public)
	if len(public) != 1 || public[0].Status != models.StatusConfirmed {
		t.Fatalf("Expected 1 confirmed contest, got %+v", public)
	}

	w = serve(testutil.MakeRequest("GET", "/pending", nil, nil))
	var stillPending []models.Contest
	testutil.AssertJSON(t, w, &stillPending)
	if len(stillPending) != 0 {
		t.Fatalf("Confirmed contest still listed as pending")
	}

	// Entrant pays the entry fee
	w = serve(testutil.MakeRequest("POST", "/create-payment-intent", models.CreatePaymentIntentRequest{
		Amount: "25.00",
		Email:  "entrant@example.com",
		Name:   "Entrant",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	intentID := provider.SeedIntent(payments.StatusSucceeded)
	w = serve(testutil.MakeRequest("POST", "/confirm-payment", models.ConfirmPaymentRequest{
		PaymentIntentID: intentID,
		UserID:          entrantID,
		ContestID:       contestID,
		Email:           "entrant@example.com",
		Name:            "Entrant",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Entrant submits their work
	w = serve(testutil.MakeRequest("POST", "/submit-url", models.SubmitURLRequest{
		ContestID:     contestID,
		UserID:        entrantID,
		SubmissionURL: "https://example.com/logo.svg",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Creator picks the winner
	w = serve(testutil.MakeRequest("POST", "/declare-winner", models.DeclareWinnerRequest{
		ContestID: contestID,
		Winner: models.Winner{
			UserID: entrantID,
			Name:   "Entrant",
			Email:  "entrant@example.com",
		},
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	// The contest is closed with the winner recorded, the entrant's
	// stats reflect the win, and a second declaration is rejected
	w = serve(testutil.MakeRequest("GET", "/contest_info", nil, nil))
	testutil.AssertJSON(t, w, &public)
	if public[0].Status != models.StatusClosed || public[0].Winner == nil {
		t.Fatal("Contest not closed with a winner")
	}
	if public[0].Participants != 1 {
		t.Errorf("Expected participant count 1, got %d", public[0].Participants)
	}

	w = serve(testutil.MakeRequest("GET", "/won-contests/"+entrantID, nil, nil))
	var wins models.CountResponse
	testutil.AssertJSON(t, w, &wins)
	if wins.Count != 1 {
		t.Errorf("Expected 1 win, got %d", wins.Count)
	}

	w = serve(testutil.MakeRequest("POST", "/declare-winner", models.DeclareWinnerRequest{
		ContestID: contestID,
		Winner:    models.Winner{UserID: entrantID},
	}, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestDeclareWinnerBlockedBeforeDeadline(t *testing.T) {
	store, _, mux := newTestRouter()

	contestID := testutil.CreateTestContest(t, store, models.StatusConfirmed, time.Now().Add(24*time.Hour))
	userID := primitive.NewObjectID().Hex()
	testutil.CreateTestParticipation(t, store, contestID, userID, "entrant@example.com")

	req := testutil.MakeRequest("POST", "/declare-winner", models.DeclareWinnerRequest{
		ContestID: contestID,
		Winner:    models.Winner{UserID: userID},
	}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
