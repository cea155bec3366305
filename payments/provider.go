// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package payments

import "context"

// StatusSucceeded is the provider status that permits recording a
// participation.
const StatusSucceeded = "succeeded"

// Intent is the provider-neutral view of a payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Provider creates and retrieves payment intents. Implemented by
// StripeProvider for production and by testutil.FakeProvider for tests.
type Provider interface {
	// CreateIntent charges amountCents in the fixed service currency,
	// attaching the payer's name and photo reference as metadata.
	CreateIntent(ctx context.Context, amountCents int64, email, name, photoURL string) (*Intent, error)

	// GetIntent re-fetches an intent so its status reflects the
	// provider's view, not the client's claim.
	GetIntent(ctx context.Context, id string) (*Intent, error)
}
