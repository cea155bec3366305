// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contesthub/server/config"
	"github.com/contesthub/server/db"
	"github.com/contesthub/server/middleware"
	"github.com/contesthub/server/models"
)

// maxUploadSize bounds the in-memory multipart parse for contest images.
const maxUploadSize = 8 << 20

type ContestHandler struct {
	store db.Store
	cfg   config.Config
}

func NewContestHandler(store db.Store, cfg config.Config) *ContestHandler {
	return &ContestHandler{store: store, cfg: cfg}
}

// parseContestRequest accepts either a JSON body or a multipart form
// with an optional "image" file part, and normalizes both into the
// request struct plus raw image bytes.
func parseContestRequest(r *http.Request) (*models.ContestRequest, []byte, string, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		var req models.ContestRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			return nil, nil, "", err
		}
		return &req, nil, "", nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, nil, "", err
	}

	req := models.ContestRequest{
		ContestName:     r.FormValue("contestName"),
		Description:     r.FormValue("description"),
		Price:           r.FormValue("price"),
		PrizeMoney:      r.FormValue("prizeMoney"),
		TaskInstruction: r.FormValue("taskInstruction"),
		SelectedTag:     r.FormValue("selectedTag"),
		Email:           r.FormValue("email"),
	}
	if raw := r.FormValue("deadline"); raw != "" {
		deadline, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, "", err
		}
		req.Deadline = deadline
	}

	image, imageType, err := readImagePart(r)
	if err != nil {
		return nil, nil, "", err
	}
	return &req, image, imageType, nil
}

func readImagePart(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, imageContentType(header), nil
}

func imageContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// CreateContest handles POST /add-contest
func (h *ContestHandler) CreateContest(w http.ResponseWriter, r *http.Request) {
	req, image, imageType, err := parseContestRequest(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid contest payload")
		return
	}

	if req.ContestName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contestName is required")
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	contest := models.Contest{
		ContestName:     req.ContestName,
		Description:     req.Description,
		Price:           req.Price,
		PrizeMoney:      req.PrizeMoney,
		TaskInstruction: req.TaskInstruction,
		SelectedTag:     req.SelectedTag,
		Deadline:        req.Deadline,
		Email:           req.Email,
		Image:           image,
		ImageType:       imageType,
		Status:          models.StatusSubmitted,
		CreatedAt:       time.Now(),
	}

	id, err := h.store.InsertContest(r.Context(), &contest)
	if err != nil {
		slog.Error("failed to insert contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error adding contest")
		return
	}

	slog.Info("contest submitted", "contest_id", id, "creator", req.Email)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateContestResponse{
		InsertedID: id,
	})
}

// UpdateContest handles PUT /pending/:id
// Edits apply only to submitted contests; an unknown identifier is a
// 404 rather than a silently fabricated document.
func (h *ContestHandler) UpdateContest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid contest id")
		return
	}

	req, image, imageType, err := parseContestRequest(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid contest payload")
		return
	}

	upd := models.ContestUpdate{
		ContestName:     req.ContestName,
		Description:     req.Description,
		Price:           req.Price,
		PrizeMoney:      req.PrizeMoney,
		TaskInstruction: req.TaskInstruction,
		SelectedTag:     req.SelectedTag,
		Deadline:        req.Deadline,
		Email:           req.Email,
		Image:           image,
		ImageType:       imageType,
	}

	err = h.store.UpdateSubmittedContest(r.Context(), id, upd)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to update contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update contest")
		return
	}

	slog.Info("contest updated", "contest_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteContest handles DELETE /pending/:id
func (h *ContestHandler) DeleteContest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid contest id")
		return
	}

	err := h.store.DeleteSubmittedContest(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete contest")
		return
	}

	slog.Info("contest deleted", "contest_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// AddComment handles POST /add-comment/:id
func (h *ContestHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid contest id")
		return
	}

	var req models.AddCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Comment == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "comment is required")
		return
	}

	err := h.store.AppendComment(r.Context(), id, req.Comment)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to add comment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// ConfirmContest handles PUT /confirm-contest/:id
func (h *ContestHandler) ConfirmContest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid contest id")
		return
	}

	err := h.store.ConfirmContest(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to confirm contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	slog.Info("contest confirmed", "contest_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// ListPending handles GET /pending and GET /fetch-all-contests
func (h *ContestHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	contests, err := h.store.ListContestsByStatus(r.Context(), models.StatusSubmitted)
	if err != nil {
		slog.Error("failed to list pending contests", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch contests")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
}

// ListConfirmed handles GET /contest_info
func (h *ContestHandler) ListConfirmed(w http.ResponseWriter, r *http.Request) {
	contests, err := h.store.ListContestsByStatus(r.Context(), models.StatusConfirmed, models.StatusClosed)
	if err != nil {
		slog.Error("failed to list confirmed contests", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch contests")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
}

// ListMine handles GET /fetch-my-contests/:email
func (h *ContestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	contests, err := h.store.ListContestsByCreator(r.Context(), email, models.StatusSubmitted)
	if err != nil {
		slog.Error("failed to list contests by creator", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch contests")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
}

// ListAccepted handles GET /fetch-accepted-contests/:email
func (h *ContestHandler) ListAccepted(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	contests, err := h.store.ListContestsByCreator(r.Context(), email, models.StatusConfirmed, models.StatusClosed)
	if err != nil {
		slog.Error("failed to list accepted contests", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch contests")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
}
