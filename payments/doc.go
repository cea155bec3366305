// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package payments wraps the payment provider behind a small interface.

Handlers see only Provider and Intent:

	provider := payments.NewStripeProvider(cfg.StripeSecretKey)
	intent, err := provider.CreateIntent(ctx, 2500, email, name, photoURL)

CreateIntent charges in USD and returns the client secret the frontend
needs to complete the payment. GetIntent re-fetches the intent from the
provider; a participation is only recorded when the re-fetched status
is StatusSucceeded, never on the client's say-so.
*/
package payments
