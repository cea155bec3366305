// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contesthub/server/config"
	"github.com/contesthub/server/db"
	"github.com/contesthub/server/middleware"
	"github.com/contesthub/server/models"
	"github.com/contesthub/server/payments"
)

type ParticipationHandler struct {
	store    db.Store
	provider payments.Provider
	cfg      config.Config
}

func NewParticipationHandler(store db.Store, provider payments.Provider, cfg config.Config) *ParticipationHandler {
	return &ParticipationHandler{store: store, provider: provider, cfg: cfg}
}

// CreatePaymentIntent handles POST /create-payment-intent
func (h *ParticipationHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentIntentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "amount must be a positive decimal")
		return
	}
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()

	intent, err := h.provider.CreateIntent(r.Context(), cents, req.Email, req.Name, req.PhotoURL)
	if err != nil {
		slog.Error("failed to create payment intent", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create payment intent")
		return
	}

	slog.Info("payment intent created", "intent_id", intent.ID, "amount_cents", cents)

	middleware.JSONResponse(w, http.StatusOK, models.CreatePaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
	})
}

// ConfirmPayment handles POST /confirm-payment
// The intent status is re-fetched from the provider; only "succeeded"
// records a participation. The store composite keeps the participant
// counter in step with the record.
func (h *ParticipationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmPaymentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" || req.ContestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId and contestId are required")
		return
	}
	if req.PaymentIntentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "paymentIntentId is required")
		return
	}
	if _, err := primitive.ObjectIDFromHex(req.ContestID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid contest id")
		return
	}

	intent, err := h.provider.GetIntent(r.Context(), req.PaymentIntentID)
	if err != nil {
		slog.Error("failed to retrieve payment intent", "error", err, "intent_id", req.PaymentIntentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to verify payment")
		return
	}

	if intent.Status != payments.StatusSucceeded {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Payment not successful")
		return
	}

	participation := models.Participation{
		UserID:          req.UserID,
		ContestID:       req.ContestID,
		Email:           req.Email,
		Name:            req.Name,
		PhotoURL:        req.PhotoURL,
		PaymentIntentID: req.PaymentIntentID,
		CreatedAt:       time.Now(),
	}

	id, err := h.store.AddParticipant(r.Context(), &participation)
	if errors.Is(err, db.ErrDuplicate) {
		middleware.ErrorResponse(w, http.StatusConflict, "Already participating in this contest")
		return
	}
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to save participation", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save participation")
		return
	}

	slog.Info("participation saved", "participation_id", id,
		"user_id", req.UserID, "contest_id", req.ContestID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Participation saved successfully",
	})
}

// SubmitURL handles POST /submit-url
func (h *ParticipationHandler) SubmitURL(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitURLRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" || req.ContestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId and contestId are required")
		return
	}
	if req.SubmissionURL == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "submissionUrl is required")
		return
	}

	err := h.store.SetSubmissionURL(r.Context(), req.ContestID, req.UserID, req.SubmissionURL)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participation not found")
		return
	}
	if err != nil {
		slog.Error("failed to save submission url", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save submission")
		return
	}

	slog.Info("submission recorded", "user_id", req.UserID, "contest_id", req.ContestID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeclareWinner handles POST /declare-winner
// Only a confirmed contest whose deadline has passed can be closed.
func (h *ParticipationHandler) DeclareWinner(w http.ResponseWriter, r *http.Request) {
	var req models.DeclareWinnerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ContestID == "" || req.Winner.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contestId and winner.userId are required")
		return
	}
	if _, err := primitive.ObjectIDFromHex(req.ContestID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid contest id")
		return
	}

	contest, err := h.store.GetContest(r.Context(), req.ContestID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to load contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if contest.Status != models.StatusConfirmed {
		middleware.ErrorResponse(w, http.StatusConflict, "Contest is not open for winner declaration")
		return
	}
	if time.Now().Before(contest.Deadline) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Contest deadline has not passed")
		return
	}

	err = h.store.DeclareWinner(r.Context(), req.ContestID, req.Winner)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Winning participation not found")
		return
	}
	if errors.Is(err, db.ErrWrongStatus) {
		middleware.ErrorResponse(w, http.StatusConflict, "Contest is not open for winner declaration")
		return
	}
	if err != nil {
		slog.Error("failed to declare winner", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to declare winner")
		return
	}

	slog.Info("winner declared", "contest_id", req.ContestID, "winner_user_id", req.Winner.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// CountParticipated handles GET /participated-contests/:userId
func (h *ParticipationHandler) CountParticipated(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	count, err := h.store.CountParticipationsByUser(r.Context(), userID)
	if err != nil {
		slog.Error("failed to count participations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CountResponse{Count: count})
}

// CountWon handles GET /won-contests/:userId
func (h *ParticipationHandler) CountWon(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	count, err := h.store.CountWinsByUser(r.Context(), userID)
	if err != nil {
		slog.Error("failed to count wins", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CountResponse{Count: count})
}

// ListWonDetails handles GET /won-contests-details/:userId
func (h *ParticipationHandler) ListWonDetails(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	contests, err := h.store.ListWonContests(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list won contests", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
}

// ListParticipatedByEmail handles GET /participated-contests-by-email/:email
// Joins the user's participations to the contest documents they entered.
func (h *ParticipationHandler) ListParticipatedByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	participations, err := h.store.ListParticipationsByEmail(r.Context(), email)
	if err != nil {
		slog.Error("failed to list participations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch participated contests")
		return
	}

	ids := make([]string, 0, len(participations))
	for _, p := range participations {
		ids = append(ids, p.ContestID)
	}

	contests, err := h.store.ListContestsByIDs(r.Context(), ids)
	if err != nil {
		slog.Error("failed to load participated contests", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch participated contests")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
}

// ListContestParticipants handles GET /contest-participants/:contestId
func (h *ParticipationHandler) ListContestParticipants(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("contestId")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contestId is required")
		return
	}

	participations, err := h.store.ListParticipationsByContest(r.Context(), contestID)
	if err != nil {
		slog.Error("failed to list contest participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, participations)
}
