// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Contesthub API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, provider, cfg)

# Endpoints

Health:

	GET /health

User management:

	POST   /users                        - Register user (idempotent by email)
	GET    /users                        - List users
	PATCH  /users/{id}/role              - Change a user's role
	DELETE /users/{id}                   - Remove a user
	GET    /users/admin/{email}          - Admin role check
	GET    /users/contest_creator/{email} - Creator role check
	GET    /users/user/{email}           - Plain-user role check

Contest submission and approval:

	POST   /add-contest                   - Submit a contest (JSON or multipart)
	PUT    /pending/{id}                  - Edit a still-pending contest
	DELETE /pending/{id}                  - Withdraw a pending contest
	GET    /pending                       - List pending contests
	GET    /fetch-all-contests            - Alias of /pending
	POST   /add-comment/{id}              - Admin feedback on a pending contest
	PUT    /confirm-contest/{id}          - Approve a contest
	GET    /contest_info                  - Public contests (confirmed and closed)
	GET    /fetch-my-contests/{email}     - Creator's pending submissions
	GET    /fetch-accepted-contests/{email} - Creator's approved contests

Payments and participation:

	POST /create-payment-intent           - Start an entry-fee payment
	POST /confirm-payment                 - Verify payment, record participation
	POST /submit-url                      - Attach a work submission
	POST /declare-winner                  - Close a contest with a winner
	GET  /participated-contests/{userId}  - Entry count
	GET  /won-contests/{userId}           - Win count
	GET  /won-contests-details/{userId}   - Won contest documents
	GET  /participated-contests-by-email/{email} - Entered contest documents
	GET  /contest-participants/{contestId} - Participations for a contest

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(store, cfg)
	contestHandler := handlers.NewContestHandler(store, cfg)
	participationHandler := handlers.NewParticipationHandler(store, provider, cfg)

All handlers receive the store and configuration; the participation
handler additionally receives the payment provider.
*/
package router
