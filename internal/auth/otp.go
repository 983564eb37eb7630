// Package auth implements the development-mode OTP flow: codes live in an
// injectable in-memory store with expiry, and a signed token is issued on
// verification. A hosted auth provider replaces this in production; the
// endpoints keep the same shape either way.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"humanizepro/pkg/logger"
)

var (
	ErrInvalidEmail = errors.New("a valid email address is required")
	ErrCodeInvalid  = errors.New("the code does not match")
	ErrCodeExpired  = errors.New("the code has expired, request a new one")
)

const (
	codeTTL  = 5 * time.Minute
	tokenTTL = 24 * time.Hour
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// Store holds pending codes keyed by email. Constructed once per process and
// per test, never shared module state.
type Store struct {
	mu    sync.Mutex
	codes map[string]otpEntry
}

func NewStore() *Store {
	return &Store{codes: make(map[string]otpEntry)}
}

// Sweep removes expired codes. Called periodically from a background loop.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for email, e := range s.codes {
		if now.After(e.expiresAt) {
			delete(s.codes, email)
			removed++
		}
	}
	return removed
}

func (s *Store) put(email, code string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = otpEntry{code: code, expiresAt: expiresAt}
}

func (s *Store) take(email string) (otpEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.codes[email]
	if ok {
		delete(s.codes, email)
	}
	return e, ok
}

type Service struct {
	store  *Store
	secret []byte
	log    *logger.Logger
	now    func() time.Time
}

func New(store *Store, secret string, log *logger.Logger) *Service {
	return &Service{store: store, secret: []byte(secret), log: log, now: func() time.Time { return time.Now().UTC() }}
}

// SendOTP stores a fresh six-digit code for the email and returns it. In
// deployed environments the code would go out by mail; dev mode hands it
// back to the caller.
func (s *Service) SendOTP(_ context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}
	code, err := sixDigits()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	s.store.put(email, code, s.now().Add(codeTTL))
	s.log.Info("otp issued", "email", email)
	return code, nil
}

// VerifyOTP checks the code, consumes it, and issues a signed session token.
// Codes are single use whether or not they match.
func (s *Service) VerifyOTP(_ context.Context, email, code string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	entry, ok := s.store.take(email)
	if !ok || entry.code != strings.TrimSpace(code) {
		return "", ErrCodeInvalid
	}
	if s.now().After(entry.expiresAt) {
		return "", ErrCodeExpired
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		Issuer:    "humanizepro",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// RunSweeper purges expired codes until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Sweep(s.now()); n > 0 {
				s.log.Debug("expired otp codes purged", "count", n)
			}
		}
	}
}

func sixDigits() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
