// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: logs request start/completion with method, path, and
    duration (wraps individual handler funcs in the router)
  - WithRequestID: tags responses with an X-Request-Id for correlation
    (wraps the whole mux in main)
  - CORS: allows cross-origin requests and answers preflights
    (wraps the whole mux in main)

# Response Helpers

All handlers respond through the same two helpers so every error body
has the same {error, message} shape:

	middleware.JSONResponse(w, http.StatusOK, payload)
	middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")

# Request Parsing

	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
