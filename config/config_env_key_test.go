package config

import (
	"testing"
	"time"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"dbName":  "archive",
		},
		"mail": map[string]any{
			"smtp": map[string]any{
				"fromName": "",
			},
		},
		"session": map[string]any{
			"cookieName": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_DBNAME", want: "postgres.dbName"},
		{envKey: "MAIL_SMTP_FROMNAME", want: "mail.smtp.fromName"},
		{envKey: "SESSION_COOKIENAME", want: "session.cookieName"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Auth.MinPasswordLength != 6 {
		t.Fatalf("MinPasswordLength = %d, want 6", cfg.Auth.MinPasswordLength)
	}
	if cfg.Tokens.VerificationTTL != 24*time.Hour {
		t.Fatalf("VerificationTTL = %v, want 24h", cfg.Tokens.VerificationTTL)
	}
	if cfg.Tokens.ResetTTL != time.Hour {
		t.Fatalf("ResetTTL = %v, want 1h", cfg.Tokens.ResetTTL)
	}
	if cfg.Session.CookieName == "" {
		t.Fatal("expected a default session cookie name")
	}
}
