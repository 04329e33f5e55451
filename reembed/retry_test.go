package reembed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errServiceUnavailable = errors.New("503 service unavailable")

// failingFor returns an operation that fails the first n calls.
func failingFor(n int, calls *int) func(context.Context) error {
	return func(ctx context.Context) error {
		*calls++
		if *calls <= n {
			return errServiceUnavailable
		}
		return nil
	}
}

func TestRetryWithBackoff(t *testing.T) {
	tests := []struct {
		name        string
		failures    int
		maxAttempts int
		wantCalls   int
		wantErr     error
	}{
		{"first try", 0, 3, 1, nil},
		{"recovers on third attempt", 2, 5, 3, nil},
		{"recovers on last attempt", 2, 3, 3, nil},
		{"gives up", 10, 3, 3, errServiceUnavailable},
		{"zero attempts", 0, 0, 0, ErrInvalidMaxAttempts},
		{"negative attempts", 0, -1, 0, ErrInvalidMaxAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(context.Background(), failingFor(tt.failures, &calls), tt.maxAttempts, time.Millisecond)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRetryWithBackoff_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := RetryWithBackoff(ctx, func(ctx context.Context) error {
		calls++
		if calls == 2 {
			cancel()
		}
		return errServiceUnavailable
	}, 10, 5*time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoff_StopsOnDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	err := RetryWithBackoff(ctx, func(ctx context.Context) error {
		calls++
		time.Sleep(30 * time.Millisecond)
		return errServiceUnavailable
	}, 10, 10*time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.LessOrEqual(t, calls, 3)
}

func TestRetryWithBackoff_DelayDoubles(t *testing.T) {
	var stamps []time.Time
	calls := 0
	op := failingFor(3, &calls)

	err := RetryWithBackoff(context.Background(), func(ctx context.Context) error {
		stamps = append(stamps, time.Now())
		return op(ctx)
	}, 5, 10*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, stamps, 4)

	// Waits of roughly 10ms, 20ms, 40ms
	first := stamps[1].Sub(stamps[0])
	second := stamps[2].Sub(stamps[1])
	third := stamps[3].Sub(stamps[2])
	assert.GreaterOrEqual(t, first, 10*time.Millisecond)
	assert.Greater(t, second, first)
	assert.Greater(t, third, second)
}

func TestRetryWithBackoff_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "batch-7")

	var seen any
	err := RetryWithBackoff(ctx, func(ctx context.Context) error {
		seen = ctx.Value(key{})
		return nil
	}, 1, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "batch-7", seen)
}
