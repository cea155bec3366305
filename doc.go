// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ContestHub API server.

ContestHub is a contest-hosting backend: users register, creators submit
contests for admin approval, entrants pay a fee to participate and
submit work, and a winner is declared after the deadline.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	MONGODB_URI=mongodb://... STRIPE_SECRET_KEY=sk_... go run main.go

Or with flags:

	go run main.go -p 5000 -m "mongodb://..." -stripe-key sk_...

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - MONGODB_URI (-m): MongoDB connection URI
  - STRIPE_SECRET_KEY (-stripe-key): Stripe API secret key

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DB_NAME (-n): Database name (default: contesthub)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, contests, participation)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, request IDs, logging, JSON helpers
  - models: Request/response and domain types
  - roles: Closed role set and centralized role checks
  - db: Store interface, MongoDB implementation, indexes
  - payments: Payment-provider interface and Stripe implementation
  - config: Configuration parsing

See package documentation for each component.
*/
package main
