// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contesthub/server/models"
	"github.com/contesthub/server/testutil"
)

func TestCreateContest_JSON(t *testing.T) {
	store := testutil.NewMemStore()
	handler := NewContestHandler(store, testutil.GetTestConfig())

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name: "valid submission",
			requestBody: models.ContestRequest{
				ContestName: "Logo Design Battle",
				Description: "Design our new logo",
				Price:       "25.00",
				PrizeMoney:  "500",
				SelectedTag: "design",
				Deadline:    time.Now().Add(72 * time.Hour),
				Email:       "creator@example.com",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing contest name",
			requestBody: models.ContestRequest{
				Email: "creator@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing creator email",
			requestBody: models.ContestRequest{
				ContestName: "Nameless",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/add-contest", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.CreateContest(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreateContestResponse
				testutil.AssertJSON(t, w, &resp)
				contest, err := store.GetContest(context.Background(), resp.InsertedID)
				if err != nil {
					t.Fatalf("Contest was not stored: %v", err)
				}
				if contest.Status != models.StatusSubmitted {
					t.Errorf("Expected status submitted, got %q", contest.Status)
				}
			}
		})
	}
}

// multipartContest builds a multipart form with contest fields and an
// optional image part.
func multipartContest(t *testing.T, fields map[string]string, image []byte, imageType string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write form field: %v", err)
		}
	}
	if image != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="banner.png"`)
		header.Set("Content-Type", imageType)
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("Failed to create image part: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("Failed to write image bytes: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestCreateContest_MultipartWithImage(t *testing.T) {
	store := testutil.NewMemStore()
	handler := NewContestHandler(store, testutil.GetTestConfig())

	imageBytes := []byte{0x89, 0x50, 0x4e, 0x47}
	body, contentType := multipartContest(t, map[string]string{
		"contestName": "Photo Contest",
		"description": "Best landscape photo",
		"price":       "10.00",
		"prizeMoney":  "200",
		"selectedTag": "photography",
		"deadline":    time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"email":       "creator@example.com",
	}, imageBytes, "image/png")

	req := httptest.NewRequest("POST", "/add-contest", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.CreateContest(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateContestResponse
	testutil.AssertJSON(t, w, &resp)

	contest, err := store.GetContest(context.Background(), resp.InsertedID)
	if err != nil {
		t.Fatalf("Contest was not stored: %v", err)
	}
	if !bytes.Equal(contest.Image, imageBytes) {
		t.Error("Stored image bytes do not match upload")
	}
	if contest.ImageType != "image/png" {
		t.Errorf("Expected image type image/png, got %q", contest.ImageType)
	}
}

func TestUpdateContest(t *testing.T) {
	store := testutil.NewMemStore()
	handler := NewContestHandler(store, testutil.GetTestConfig())

	contestID := testutil.CreateTestContest(t, store, models.StatusSubmitted, time.Now().Add(24*time.Hour))

	update := models.ContestRequest{
		ContestName: "Renamed Contest",
		Description: "Updated description",
		Price:       "30.00",
		PrizeMoney:  "600",
		SelectedTag: "design",
		Deadline:    time.Now().Add(96 * time.Hour),
		Email:       "creator@example.com",
	}

	req := testutil.MakeRequest("PUT", "/pending/"+contestID, update, nil)
	req.SetPathValue("id", contestID)
	w := httptest.NewRecorder()
	handler.UpdateContest(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	contest, _ := store.GetContest(context.Background(), contestID)
	if contest.ContestName != "Renamed Contest" {
		t.Errorf("Expected renamed contest, got %q", contest.ContestName)
	}

	// Editing an unknown identifier must not fabricate a contest
	missingID := primitive.NewObjectID().Hex()
	req = testutil.MakeRequest("PUT", "/pending/"+missingID, update, nil)
	req.SetPathValue("id", missingID)
	w = httptest.NewRecorder()
	handler.UpdateContest(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	if _, err := store.GetContest(context.Background(), missingID); err == nil {
		t.Error("Edit of a missing contest fabricated a document")
	}
}

func TestUpdateContest_ConfirmedIsImmutable(t *testing.T) {
	store := testutil.NewMemStore()
	handler := NewContestHandler(store, testutil.GetTestConfig())

	contestID := testutil.CreateTestContest(t, store, models.StatusConfirmed, time.Now().Add(24*time.Hour))

	req := testutil.MakeRequest("PUT", "/pending/"+contestID, models.ContestRequest{
		ContestName: "Sneaky Edit",
		Email:       "creator@example.com",
	}, nil)
	req.SetPathValue("id", contestID)
	w := httptest.NewRecorder()
	handler.UpdateContest(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteContest(t *testing.T) {
	store := testutil.NewMemStore()
	handler := NewContestHandler(store, testutil.GetTestConfig())

	contestID := testutil.CreateTestContest(t, store, models.StatusSubmitted, time.Now().Add(24*time.Hour))

	req := testutil.MakeRequest("DELETE", "/pending/"+contestID, nil, nil)
	req.SetPathValue("id", contestID)
	w := httptest.NewRecorder()
	handler.DeleteContest(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if _, err := store.GetContest(context.Background(), contestID); err == nil {
		t.Error("Contest still present after delete")
	}
}

func TestAddComment(t *testing.T) {
	store := testutil.NewMemStore()
	handler := NewContestHandler(store, testutil.GetTestConfig())

	contestID := testutil.CreateTestContest(t, store, models.StatusSubmitted, time.Now().Add(24*time.Hour))

	tests := []struct {
		name           string
		contestID      string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "first comment",
			contestID:      contestID,
			requestBody:    models.AddCommentRequest{Comment: "Please clarify the prize"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "second comment",
			contestID:      contestID,
			requestBody:    models.AddCommentRequest{Comment: "Deadline looks tight"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty comment",
			contestID:      contestID,
			requestBody:    models.AddCommentRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing contest",
			contestID:      primitive.NewObjectID().Hex(),
			requestBody:    models.AddCommentRequest{Comment: "Hello?"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/add-comment/"+tt.contestID, tt.requestBody, nil)
			req.SetPathValue("id", tt.contestID)
			w := httptest.NewRecorder()

			handler.AddComment(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	contest, _ := store.GetContest(context.Background(), contestID)
	if len(contest.Comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(contest.Comments))
	}
	// Comments keep their append order
	if contest.Comments[0] != "Please clarify the prize" {
		t.Errorf("Comment order broken: %v", contest.Comments)
	}
}

func TestConfirmContest(t *testing.T) {
	store := testutil.NewMemStore()
	handler := NewContestHandler(store, testutil.GetTestConfig())

	contestID := testutil.CreateTestContest(t, store, models.StatusSubmitted, time.Now().Add(24*time.Hour))

	req := testutil.MakeRequest("PUT", "/confirm-contest/"+contestID, nil, nil)
	req.SetPathValue("id", contestID)
	w := httptest.NewRecorder()
	handler.ConfirmContest(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	contest, err := store.GetContest(context.Background(), contestID)
	if err != nil {
		t.Fatalf("Contest lost during confirmation: %v", err)
	}
	if contest.Status != models.StatusConfirmed {
		t.Errorf("Expected status confirmed, got %q", contest.Status)
	}

	// A confirmed contest no longer appears in the pending list
	pending, _ := store.ListContestsByStatus(context.Background(), models.StatusSubmitted)
	if len(pending) != 0 {
		t.Errorf("Confirmed contest still listed as pending")
	}

	// Confirming twice reports not found
	w = httptest.NewRecorder()
	req = testutil.MakeRequest("PUT", "/confirm-contest/"+contestID, nil, nil)
	req.SetPathValue("id", contestID)
	handler.ConfirmContest(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestContestListings(t *testing.T) {
	store := testutil.NewMemStore()
	handler := NewContestHandler(store, testutil.GetTestConfig())

	testutil.CreateTestContest(t, store, models.StatusSubmitted, time.Now().Add(24*time.Hour))
	confirmedID := testutil.CreateTestContest(t, store, models.StatusConfirmed, time.Now().Add(24*time.Hour))

	t.Run("pending list", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/pending", nil, nil)
		w := httptest.NewRecorder()
		handler.ListPending(w, req)

		var contests []models.Contest
		testutil.AssertJSON(t, w, &contests)
		if len(contests) != 1 || contests[0].Status != models.StatusSubmitted {
			t.Errorf("Expected only the submitted contest, got %d entries", len(contests))
		}
	})

	t.Run("confirmed list", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/contest_info", nil, nil)
		w := httptest.NewRecorder()
		handler.ListConfirmed(w, req)

		var contests []models.Contest
		testutil.AssertJSON(t, w, &contests)
		if len(contests) != 1 || contests[0].ID.Hex() != confirmedID {
			t.Errorf("Expected only the confirmed contest, got %d entries", len(contests))
		}
	})

	t.Run("by creator email", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/fetch-my-contests/creator@example.com", nil, nil)
		req.SetPathValue("email", "creator@example.com")
		w := httptest.NewRecorder()
		handler.ListMine(w, req)

		var contests []models.Contest
		testutil.AssertJSON(t, w, &contests)
		if len(contests) != 1 {
			t.Errorf("Expected 1 submitted contest for creator, got %d", len(contests))
		}
	})

	t.Run("unknown creator gets empty list", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/fetch-my-contests/nobody@example.com", nil, nil)
		req.SetPathValue("email", "nobody@example.com")
		w := httptest.NewRecorder()
		handler.ListMine(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var contests []models.Contest
		testutil.AssertJSON(t, w, &contests)
		if contests == nil || len(contests) != 0 {
			t.Errorf("Expected empty array, got %v", contests)
		}
	})
}
