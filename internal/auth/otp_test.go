package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"humanizepro/pkg/logger"
)

func newTestService() *Service {
	return New(NewStore(), "test-secret", logger.Nop())
}

func TestSendVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	code, err := svc.SendOTP(ctx, "User@Example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 6 {
		t.Fatalf("code = %q, want six digits", code)
	}

	// Email comparison is case-insensitive.
	token, err := svc.VerifyOTP(ctx, "user@example.com", code)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	if claims.Subject != "user@example.com" {
		t.Errorf("subject = %q", claims.Subject)
	}
}

func TestVerifyWrongCode(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	svc.SendOTP(ctx, "a@b.c")
	if _, err := svc.VerifyOTP(ctx, "a@b.c", "000000"); !errors.Is(err, ErrCodeInvalid) {
		t.Errorf("got %v, want ErrCodeInvalid", err)
	}
	// The wrong attempt consumed the code.
	if _, err := svc.VerifyOTP(ctx, "a@b.c", "000000"); !errors.Is(err, ErrCodeInvalid) {
		t.Errorf("second attempt: got %v, want ErrCodeInvalid", err)
	}
}

func TestCodeSingleUse(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	code, _ := svc.SendOTP(ctx, "a@b.c")
	if _, err := svc.VerifyOTP(ctx, "a@b.c", code); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.VerifyOTP(ctx, "a@b.c", code); !errors.Is(err, ErrCodeInvalid) {
		t.Errorf("reused code: got %v, want ErrCodeInvalid", err)
	}
}

func TestCodeExpiry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	code, _ := svc.SendOTP(ctx, "a@b.c")

	svc.now = func() time.Time { return time.Now().UTC().Add(codeTTL + time.Minute) }
	if _, err := svc.VerifyOTP(ctx, "a@b.c", code); !errors.Is(err, ErrCodeExpired) {
		t.Errorf("got %v, want ErrCodeExpired", err)
	}
}

func TestSendInvalidEmail(t *testing.T) {
	svc := newTestService()
	for _, email := range []string{"", "   ", "no-at-sign"} {
		if _, err := svc.SendOTP(context.Background(), email); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("SendOTP(%q): got %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestSweep(t *testing.T) {
	s := NewStore()
	now := time.Now()
	s.put("fresh@x.y", "111111", now.Add(time.Minute))
	s.put("stale@x.y", "222222", now.Add(-time.Minute))

	if n := s.Sweep(now); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if _, ok := s.take("fresh@x.y"); !ok {
		t.Error("fresh code should survive the sweep")
	}
	if _, ok := s.take("stale@x.y"); ok {
		t.Error("stale code should be gone")
	}
}
