package cliparse

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "SESSION_SALT",
		"CALENDAR_PROVIDER", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_ACCOUNT",
		"CALDAV_USERNAME", "CALDAV_PASSWORD", "CALDAV_CALENDAR",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM",
	} {
		t.Setenv(key, "")
	}
}

func TestParseFlagsFromArgs(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "postgres://x", "-t", "postgres", "-session-salt", "s3cret"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://x" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "file:calstack.db")
	t.Setenv("SESSION_SALT", "env-salt")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 5000 {
		t.Errorf("default Port = %d, want 5000", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("default DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.SessionSalt != "env-salt" {
		t.Errorf("SessionSalt = %q", cfg.SessionSalt)
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("SMTPPort = %d, want 2525", cfg.SMTPPort)
	}
}

func TestParseFlagsRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SALT", "s")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("expected error without DATABASE_URL")
	}
}

func TestParseFlagsRequiresSessionSalt(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "file:calstack.db")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("expected error without SESSION_SALT")
	}
}
