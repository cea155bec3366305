package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contest status constants
const (
	StatusSubmitted = "submitted"
	StatusConfirmed = "confirmed"
	StatusClosed    = "closed"
)

// Request types

type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Role     string `json:"role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type AddCommentRequest struct {
	Comment string `json:"comment"`
}

// ContestRequest is the JSON body for submitting or editing a contest.
// Multipart submissions carry the same fields as form values plus an
// optional "image" file part.
type ContestRequest struct {
	ContestName     string    `json:"contestName"`
	Description     string    `json:"description"`
	Price           string    `json:"price"`
	PrizeMoney      string    `json:"prizeMoney"`
	TaskInstruction string    `json:"taskInstruction"`
	SelectedTag     string    `json:"selectedTag"`
	Deadline        time.Time `json:"deadline"`
	Email           string    `json:"email"`
}

// Amount is a decimal dollar string, e.g. "25.00"
type CreatePaymentIntentRequest struct {
	Amount   string `json:"amount"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	UserID          string `json:"userId"`
	ContestID       string `json:"contestId"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	PhotoURL        string `json:"photoURL"`
}

type SubmitURLRequest struct {
	ContestID     string `json:"contestId"`
	UserID        string `json:"userId"`
	SubmissionURL string `json:"submissionUrl"`
}

type DeclareWinnerRequest struct {
	ContestID string `json:"contestId"`
	Winner    Winner `json:"winner"`
}

// Response types

type CreateUserResponse struct {
	InsertedID string `json:"insertedId,omitempty"`
	Message    string `json:"message"`
}

type CreateContestResponse struct {
	InsertedID string `json:"insertedId"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// Domain types

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL  string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Winner struct {
	UserID   string `bson:"userId" json:"userId"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	PhotoURL string `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
}

type Contest struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContestName     string             `bson:"contestName" json:"contestName"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Price           string             `bson:"price,omitempty" json:"price,omitempty"`
	PrizeMoney      string             `bson:"prizeMoney,omitempty" json:"prizeMoney,omitempty"`
	TaskInstruction string             `bson:"taskInstruction,omitempty" json:"taskInstruction,omitempty"`
	SelectedTag     string             `bson:"selectedTag,omitempty" json:"selectedTag,omitempty"`
	Deadline        time.Time          `bson:"deadline" json:"deadline"`
	Email           string             `bson:"email" json:"email"` // creator email
	Image           []byte             `bson:"image,omitempty" json:"image,omitempty"`
	ImageType       string             `bson:"imageType,omitempty" json:"imageType,omitempty"`
	Comments        []string           `bson:"comments,omitempty" json:"comments,omitempty"`
	Status          string             `bson:"status" json:"status"`
	Participants    int64              `bson:"participants,omitempty" json:"participants,omitempty"`
	Winner          *Winner            `bson:"winner,omitempty" json:"winner,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// ContestUpdate carries the editable contest fields for PUT /pending/{id}.
// A nil Image means keep whatever image is stored.
type ContestUpdate struct {
	ContestName     string
	Description     string
	Price           string
	PrizeMoney      string
	TaskInstruction string
	SelectedTag     string
	Deadline        time.Time
	Email           string
	Image           []byte
	ImageType       string
}

type Participation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"userId"`
	ContestID       string             `bson:"contestId" json:"contestId"`
	Email           string             `bson:"email" json:"email"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL        string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	PaymentIntentID string             `bson:"paymentIntentId" json:"paymentIntentId"`
	SubmissionURL   string             `bson:"submissionUrl,omitempty" json:"submissionUrl,omitempty"`
	Winner          bool               `bson:"winner,omitempty" json:"winner,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
