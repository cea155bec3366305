// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ContestHub API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - UserHandler: registration, roles, and role checks
  - ContestHandler: contest submission, approval, and listings
  - ParticipationHandler: payments, participation, and winner declaration

Handlers are created via constructor functions:

	userHandler := handlers.NewUserHandler(store, cfg)
	participationHandler := handlers.NewParticipationHandler(store, provider, cfg)

# Contest Lifecycle

Contests progress through three states: submitted → confirmed → closed

	POST /add-contest           → CreateContest (status submitted)
	PUT  /pending/{id}          → UpdateContest (submitted only)
	PUT  /confirm-contest/{id}  → ConfirmContest (submitted → confirmed)
	POST /declare-winner        → DeclareWinner (confirmed → closed,
	                              rejected before the deadline)

Pending listings filter on submitted; /contest_info returns confirmed
and closed contests.

# Payment Flow

	POST /create-payment-intent → CreatePaymentIntent (returns clientSecret)
	POST /confirm-payment       → ConfirmPayment (verifies the intent
	                              succeeded, records the participation,
	                              and bumps the participant counter)
	POST /submit-url            → SubmitURL (attaches the entrant's work)

ConfirmPayment re-fetches the intent from the payment provider; a
client claiming success is never trusted directly.

# Role Checks

The three boolean role endpoints all route through one lookup:

	GET /users/admin/{email}           → {"admin": bool}
	GET /users/contest_creator/{email} → {"contestCreator": bool}
	GET /users/user/{email}            → {"user": bool}
*/
package handlers
