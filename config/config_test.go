// config/config_test.go
package config

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	os.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DBName != "contesthub" {
		t.Errorf("expected default db name, got %s", cfg.DBName)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-m", "mongodb://test", "-stripe-key", "sk_test_abc"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_DefaultPort(t *testing.T) {
	os.Clearenv()
	os.Setenv("MONGODB_URI", "mongodb://test")
	os.Setenv("STRIPE_SECRET_KEY", "sk_test_abc")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingMongoURI(t *testing.T) {
	os.Clearenv()
	os.Setenv("STRIPE_SECRET_KEY", "sk_test_abc")
	defer os.Clearenv()

	_, err := ParseFlags([]string{})
	if err == nil {
		t.Error("expected error when mongo URI is missing")
	}
}

func TestParseFlags_MissingStripeKey(t *testing.T) {
	os.Clearenv()
	os.Setenv("MONGODB_URI", "mongodb://test")
	defer os.Clearenv()

	_, err := ParseFlags([]string{})
	if err == nil {
		t.Error("expected error when stripe key is missing")
	}
}

func TestParseFlags_InvalidPort(t *testing.T) {
	os.Clearenv()
	os.Setenv("PORT", "not-a-number")
	os.Setenv("MONGODB_URI", "mongodb://test")
	os.Setenv("STRIPE_SECRET_KEY", "sk_test_abc")
	defer os.Clearenv()

	_, err := ParseFlags([]string{})
	if err == nil {
		t.Error("expected error for invalid PORT")
	}
}
