// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateUserRequest: email, name, photoURL, role
  - UpdateRoleRequest: role
  - AddCommentRequest: comment
  - CreatePaymentIntentRequest: amount, email, name, photoURL
  - ConfirmPaymentRequest: paymentIntentId, userId, contestId, email, name, photoURL
  - SubmitURLRequest: contestId, userId, submissionUrl
  - DeclareWinnerRequest: contestId, winner

# Response Types

Types for JSON responses:

  - CreateUserResponse: insertedId, message
  - CreateContestResponse: insertedId
  - CreatePaymentIntentResponse: clientSecret
  - MessageResponse: message
  - SuccessResponse: success
  - CountResponse: count
  - ErrorResponse: error, message

# Domain Types

Internal data structures, stored in MongoDB with bson tags:

  - User: profile and role, unique by email
  - Contest: contest metadata, lifecycle status, optional image bytes,
    participant counter, and optional embedded Winner
  - ContestUpdate: editable contest fields for edit requests
  - Participation: links a paying user to a contest, unique per
    (userId, contestId)
  - Winner: embedded winner reference on a closed contest

# Constants

Contest status values:

	StatusSubmitted = "submitted"
	StatusConfirmed = "confirmed"
	StatusClosed    = "closed"

A contest is created as submitted, moves to confirmed on admin
approval, and to closed when a winner is declared.
*/
package models
