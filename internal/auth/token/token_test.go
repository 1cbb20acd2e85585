package token

import (
	"errors"
	"os"
	"testing"
	"time"

	apperrors "github.com/sovna/taskhub/internal/platform/errors"
)

func testService(t *testing.T, now func() time.Time) *Service {
	t.Helper()
	service, err := NewService(Config{
		Secret: []byte("test-secret"),
		TTL:    30 * time.Minute,
		Now:    now,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func hasCode(err error, code apperrors.Code) bool {
	return errors.Is(err, apperrors.New(code, ""))
}

func TestNewService(t *testing.T) {
	t.Run("requires secret", func(t *testing.T) {
		if _, err := NewService(Config{TTL: time.Minute}); err == nil {
			t.Error("expected error for missing secret")
		}
	})

	t.Run("requires positive ttl", func(t *testing.T) {
		if _, err := NewService(Config{Secret: []byte("s")}); err == nil {
			t.Error("expected error for zero ttl")
		}
	})
}

func TestIssueAndVerify(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		service := testService(t, time.Now)
		issued, err := service.Issue("alice")
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		subject, err := service.Verify(issued)
		if err != nil {
			t.Fatalf("verify token: %v", err)
		}
		if subject != "alice" {
			t.Errorf("expected subject alice, got %q", subject)
		}
	})

	t.Run("empty subject rejected at issue", func(t *testing.T) {
		service := testService(t, time.Now)
		if _, err := service.Issue("  "); err == nil {
			t.Error("expected error for blank subject")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		clock := time.Now()
		service := testService(t, func() time.Time { return clock })
		issued, err := service.Issue("alice")
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}

		clock = clock.Add(31 * time.Minute)
		_, err = service.Verify(issued)
		if !hasCode(err, apperrors.CodeTokenExpired) {
			t.Errorf("expected token-expired, got %v", err)
		}
	})

	t.Run("valid until expiry", func(t *testing.T) {
		clock := time.Now()
		service := testService(t, func() time.Time { return clock })
		issued, err := service.Issue("alice")
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		clock = clock.Add(29 * time.Minute)
		if _, err := service.Verify(issued); err != nil {
			t.Errorf("expected token still valid, got %v", err)
		}
	})

	t.Run("forged signature", func(t *testing.T) {
		service := testService(t, time.Now)
		other, err := NewService(Config{Secret: []byte("other-secret"), TTL: 30 * time.Minute})
		if err != nil {
			t.Fatalf("new service: %v", err)
		}
		forged, err := other.Issue("alice")
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		_, err = service.Verify(forged)
		if !hasCode(err, apperrors.CodeTokenInvalid) {
			t.Errorf("expected token-invalid, got %v", err)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		service := testService(t, time.Now)
		for _, tokenString := range []string{"", "not.a.token", "garbage"} {
			if _, err := service.Verify(tokenString); !hasCode(err, apperrors.CodeTokenInvalid) {
				t.Errorf("token %q: expected token-invalid, got %v", tokenString, err)
			}
		}
	})
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("requires secret", func(t *testing.T) {
		t.Setenv("TASKHUB_TOKEN_SECRET", "")
		if _, err := LoadConfigFromEnv(); err == nil {
			t.Error("expected error for missing secret")
		}
	})

	t.Run("default ttl", func(t *testing.T) {
		t.Setenv("TASKHUB_TOKEN_SECRET", "s3cret")
		t.Setenv("TASKHUB_TOKEN_TTL", "")
		os.Unsetenv("TASKHUB_TOKEN_TTL")
		cfg, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.TTL != 30*time.Minute {
			t.Errorf("expected 30m default, got %v", cfg.TTL)
		}
		if string(cfg.Secret) != "s3cret" {
			t.Errorf("unexpected secret %q", cfg.Secret)
		}
	})

	t.Run("custom ttl", func(t *testing.T) {
		t.Setenv("TASKHUB_TOKEN_SECRET", "s3cret")
		t.Setenv("TASKHUB_TOKEN_TTL", "1h")
		cfg, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.TTL != time.Hour {
			t.Errorf("expected 1h, got %v", cfg.TTL)
		}
	})
}
