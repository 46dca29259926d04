// Package otp implements the one-time-passcode ledger on Redis. Each email
// holds at most one live code; issuing a new code overwrites the previous one
// (SET on a single key is atomic, so concurrent issuances resolve to
// last-writer-wins, which is correct because only the latest code should
// verify).
package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound     = errors.New("no code issued for this email")
	ErrCodeMismatch = errors.New("code does not match")
	ErrExpired      = errors.New("code has expired")
)

const codeSpace = 1000000 // codes are 000000..999999, zero-padded

// record is the stored payload. Expiry is checked in code, not delegated to
// the key TTL: the TTL is set to twice the validity window so a lapsed code
// still reports "expired" rather than "not found" before Redis reclaims it.
type record struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Ledger struct {
	rdb      *redis.Client
	validity time.Duration
}

func NewLedger(rdb *redis.Client, validity time.Duration) *Ledger {
	return &Ledger{rdb: rdb, validity: validity}
}

// Issue generates a uniform random six-digit code for the email and upserts
// it, replacing any outstanding code.
func (l *Ledger) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	rec := record{Code: code, ExpiresAt: time.Now().UTC().Add(l.validity)}
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}

	if err := l.rdb.Set(ctx, key(email), payload, 2*l.validity).Err(); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}
	return code, nil
}

// Verify checks the supplied code against the ledger. It does not consume
// the code; callers must call Consume after a successful verification to
// guarantee single use.
func (l *Ledger) Verify(ctx context.Context, email, code string) error {
	payload, err := l.rdb.Get(ctx, key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load otp: %w", err)
	}

	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return fmt.Errorf("corrupt otp record: %w", err)
	}

	if rec.Code != code {
		return ErrCodeMismatch
	}
	if !rec.ExpiresAt.After(time.Now().UTC()) {
		return ErrExpired
	}
	return nil
}

// Consume removes every code stored for the email.
func (l *Ledger) Consume(ctx context.Context, email string) error {
	return l.rdb.Del(ctx, key(email)).Err()
}

func key(email string) string {
	return "otp:" + email
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
