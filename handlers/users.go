// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contesthub/server/config"
	"github.com/contesthub/server/db"
	"github.com/contesthub/server/middleware"
	"github.com/contesthub/server/models"
	"github.com/contesthub/server/roles"
)

type UserHandler struct {
	store db.Store
	cfg   config.Config
}

func NewUserHandler(store db.Store, cfg config.Config) *UserHandler {
	return &UserHandler{store: store, cfg: cfg}
}

// CreateUser handles POST /users
// Registration is idempotent by email: a repeat call reports the user
// already exists and leaves the stored document untouched.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Role != "" && !roles.IsValid(req.Role) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown role")
		return
	}

	existing, err := h.store.FindUserByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		slog.Error("failed to look up user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if existing != nil {
		middleware.JSONResponse(w, http.StatusOK, models.CreateUserResponse{
			Message: "User already exists",
		})
		return
	}

	user := models.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     req.Role,
	}

	id, err := h.store.InsertUser(r.Context(), &user)
	if errors.Is(err, db.ErrDuplicate) {
		// Lost the race against a concurrent registration; the unique
		// index kept the collection at one document per email.
		middleware.JSONResponse(w, http.StatusOK, models.CreateUserResponse{
			Message: "User already exists",
		})
		return
	}
	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user created", "user_id", id, "email", req.Email)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateUserResponse{
		InsertedID: id,
		Message:    "User created",
	})
}

// UpdateRole handles PATCH /users/:id/role
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req models.UpdateRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	role, err := roles.Parse(req.Role)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown role")
		return
	}

	err = h.store.SetUserRole(r.Context(), id, string(role))
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to update role", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update role")
		return
	}

	slog.Info("user role updated", "user_id", id, "role", role)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteUser handles DELETE /users/:id
// No cascading cleanup: contests and participations keep their records.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid user id")
		return
	}

	err := h.store.DeleteUser(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	slog.Info("user deleted", "user_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error fetching users")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// CheckAdmin handles GET /users/admin/:email
func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	h.checkRole(w, r, roles.Admin, "admin")
}

// CheckContestCreator handles GET /users/contest_creator/:email
func (h *UserHandler) CheckContestCreator(w http.ResponseWriter, r *http.Request) {
	h.checkRole(w, r, roles.ContestCreator, "contestCreator")
}

// CheckUser handles GET /users/user/:email
func (h *UserHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	h.checkRole(w, r, roles.User, "user")
}

// checkRole is the single admission-control lookup behind all three
// boolean role endpoints. The response key matches the role queried.
func (h *UserHandler) checkRole(w http.ResponseWriter, r *http.Request, role roles.Role, key string) {
	email := r.PathValue("email")
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	ok, err := roles.Check(r.Context(), h.store, email, role)
	if err != nil {
		slog.Error("failed to check role", "error", err, "role", role)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{key: ok})
}
