// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package config handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := config.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - MongoURI: MongoDB connection URI (required)
  - DBName: Database name (default: "contesthub")
  - StripeSecretKey: Stripe API secret key (required)

# CLI Flags

	-p          Server port
	-m          MongoDB URI
	-n          Database name
	-stripe-key Stripe secret key

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	MONGODB_URI       → -m
	DB_NAME           → -n
	STRIPE_SECRET_KEY → -stripe-key

CLI flags take precedence over environment variables. main loads a
.env file via godotenv before parsing, so local development can keep
secrets out of the shell.

# Validation

ParseFlags returns an error if required values are missing:

  - MONGODB_URI must be provided
  - STRIPE_SECRET_KEY must be provided
*/
package config
