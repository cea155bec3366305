// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/contesthub/server/config"
	"github.com/contesthub/server/db"
	"github.com/contesthub/server/handlers"
	"github.com/contesthub/server/middleware"
	"github.com/contesthub/server/payments"
)

func NewRouter(store db.Store, provider payments.Provider, cfg config.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(store, cfg)
	contestHandler := handlers.NewContestHandler(store, cfg)
	participationHandler := handlers.NewParticipationHandler(store, provider, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// User management
	mux.HandleFunc("POST /users", middleware.WithLogging(userHandler.CreateUser))
	mux.HandleFunc("PATCH /users/{id}/role", middleware.WithLogging(userHandler.UpdateRole))
	mux.HandleFunc("DELETE /users/{id}", middleware.WithLogging(userHandler.DeleteUser))
	mux.HandleFunc("GET /users", middleware.WithLogging(userHandler.ListUsers))

	// Role checks
	mux.HandleFunc("GET /users/admin/{email}", middleware.WithLogging(userHandler.CheckAdmin))
	mux.HandleFunc("GET /users/contest_creator/{email}", middleware.WithLogging(userHandler.CheckContestCreator))
	mux.HandleFunc("GET /users/user/{email}", middleware.WithLogging(userHandler.CheckUser))

	// Contest submission and approval
	mux.HandleFunc("POST /add-contest", middleware.WithLogging(contestHandler.CreateContest))
	mux.HandleFunc("PUT /pending/{id}", middleware.WithLogging(contestHandler.UpdateContest))
	mux.HandleFunc("DELETE /pending/{id}", middleware.WithLogging(contestHandler.DeleteContest))
	mux.HandleFunc("GET /pending", middleware.WithLogging(contestHandler.ListPending))
	mux.HandleFunc("GET /fetch-all-contests", middleware.WithLogging(contestHandler.ListPending))
	mux.HandleFunc("POST /add-comment/{id}", middleware.WithLogging(contestHandler.AddComment))
	mux.HandleFunc("PUT /confirm-contest/{id}", middleware.WithLogging(contestHandler.ConfirmContest))
	mux.HandleFunc("GET /contest_info", middleware.WithLogging(contestHandler.ListConfirmed))
	mux.HandleFunc("GET /fetch-my-contests/{email}", middleware.WithLogging(contestHandler.ListMine))
	mux.HandleFunc("GET /fetch-accepted-contests/{email}", middleware.WithLogging(contestHandler.ListAccepted))

	// Payments and participation
	mux.HandleFunc("POST /create-payment-intent", middleware.WithLogging(participationHandler.CreatePaymentIntent))
	mux.HandleFunc("POST /confirm-payment", middleware.WithLogging(participationHandler.ConfirmPayment))
	mux.HandleFunc("POST /submit-url", middleware.WithLogging(participationHandler.SubmitURL))
	mux.HandleFunc("POST /declare-winner", middleware.WithLogging(participationHandler.DeclareWinner))
	mux.HandleFunc("GET /participated-contests/{userId}", middleware.WithLogging(participationHandler.CountParticipated))
	mux.HandleFunc("GET /won-contests/{userId}", middleware.WithLogging(participationHandler.CountWon))
	mux.HandleFunc("GET /won-contests-details/{userId}", middleware.WithLogging(participationHandler.ListWonDetails))
	mux.HandleFunc("GET /participated-contests-by-email/{email}", middleware.WithLogging(participationHandler.ListParticipatedByEmail))
	mux.HandleFunc("GET /contest-participants/{contestId}", middleware.WithLogging(participationHandler.ListContestParticipants))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Contesthub server is running"))
	})

	return mux
}
