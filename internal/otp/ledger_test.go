package otp

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T, validity time.Duration) *Ledger {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewLedger(rdb, validity)
}

func TestIssueCodeFormat(t *testing.T) {
	ledger := newTestLedger(t, 10*time.Minute)
	ctx := context.Background()

	sixDigits := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := ledger.Issue(ctx, "a@b.com")
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
	}
}

func TestVerifyUnknownEmail(t *testing.T) {
	ledger := newTestLedger(t, 10*time.Minute)

	err := ledger.Verify(context.Background(), "nobody@b.com", "123456")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyCodeMismatch(t *testing.T) {
	ledger := newTestLedger(t, 10*time.Minute)
	ctx := context.Background()

	code, err := ledger.Issue(ctx, "a@b.com")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	assert.ErrorIs(t, ledger.Verify(ctx, "a@b.com", wrong), ErrCodeMismatch)
	assert.NoError(t, ledger.Verify(ctx, "a@b.com", code))
}

func TestReissueOverwrites(t *testing.T) {
	ledger := newTestLedger(t, 10*time.Minute)
	ctx := context.Background()

	first, err := ledger.Issue(ctx, "a@b.com")
	require.NoError(t, err)
	second, err := ledger.Issue(ctx, "a@b.com")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, ledger.Verify(ctx, "a@b.com", first), ErrCodeMismatch)
	}
	assert.NoError(t, ledger.Verify(ctx, "a@b.com", second))
}

func TestConsumeMakesCodeSingleUse(t *testing.T) {
	ledger := newTestLedger(t, 10*time.Minute)
	ctx := context.Background()

	code, err := ledger.Issue(ctx, "a@b.com")
	require.NoError(t, err)

	require.NoError(t, ledger.Verify(ctx, "a@b.com", code))
	require.NoError(t, ledger.Consume(ctx, "a@b.com"))

	assert.ErrorIs(t, ledger.Verify(ctx, "a@b.com", code), ErrNotFound)
}

func TestLapsedCodeReportsExpiredNotMissing(t *testing.T) {
	ledger := newTestLedger(t, time.Millisecond)
	ctx := context.Background()

	code, err := ledger.Issue(ctx, "a@b.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	assert.ErrorIs(t, ledger.Verify(ctx, "a@b.com", code), ErrExpired)
}
