package config

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port            int
	MongoURI        string
	DBName          string
	StripeSecretKey string
}

// ParseFlags validates flags with environment-variable fallback
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("contesthub", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.MongoURI, "m", "", "MongoDB connection URI")
	fs.StringVar(&cfg.DBName, "n", "", "Database name")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.StripeSecretKey, "stripe-key", "", "Stripe secret key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 5000 // default
		}
	}

	if cfg.MongoURI == "" {
		cfg.MongoURI = os.Getenv("MONGODB_URI")
	}
	if cfg.MongoURI == "" {
		return Config{}, errors.New("mongo URI required (use -m or MONGODB_URI env)")
	}

	if cfg.DBName == "" {
		cfg.DBName = os.Getenv("DB_NAME")
		if cfg.DBName == "" {
			cfg.DBName = "contesthub"
		}
	}

	// Secrets - MUST be provided
	if cfg.StripeSecretKey == "" {
		cfg.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	}
	if cfg.StripeSecretKey == "" {
		return Config{}, errors.New("STRIPE_SECRET_KEY required")
	}

	return cfg, nil
}
