package govern

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeReturnsResult(t *testing.T) {
	got, err := Invoke(context.Background(), time.Second, func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestInvokeWrapsCalleeFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := Invoke(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	require.Error(t, err)
	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.ErrorIs(t, err, boom)
}

func TestInvokeTimesOut(t *testing.T) {
	start := time.Now()
	_, err := Invoke(context.Background(), 20*time.Millisecond, func(ctx context.Context) (string, error) {
		select {
		case <-time.After(5 * time.Second):
			return "too late", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
	assert.ErrorIs(t, err, ErrTimedOut)
	assert.Less(t, time.Since(start), time.Second, "must not wait for the callee")
}

func TestInvokeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := Invoke(ctx, time.Minute, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestInvokeAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	_, err := Invoke(ctx, time.Second, func(ctx context.Context) (string, error) {
		called = true
		return "", nil
	})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.False(t, called, "callee must not start after cancellation")
}

func TestInvokeDiscardsBackgroundCompletion(t *testing.T) {
	// A callee that ignores its context keeps running after the timeout; its
	// eventual result must be dropped without blocking it.
	var finished atomic.Bool
	done := make(chan struct{})
	_, err := Invoke(context.Background(), 10*time.Millisecond, func(ctx context.Context) (string, error) {
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		close(done)
		return "late", nil
	})
	assert.ErrorIs(t, err, ErrTimedOut)
	assert.False(t, finished.Load())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("background callee blocked on result delivery")
	}
	assert.True(t, finished.Load())
}

func TestInvokeZeroTimeoutWaitsOnContext(t *testing.T) {
	got, err := Invoke(context.Background(), 0, func(ctx context.Context) (int, error) {
		_, hasDeadline := ctx.Deadline()
		assert.False(t, hasDeadline)
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestInvokeNormalizesCooperativeStops(t *testing.T) {
	// A callee that stops by returning its context error reports the
	// governor's decision, not its own failure.
	ctx, cancel := context.WithCancel(context.Background())
	_, err := Invoke(ctx, time.Second, func(c context.Context) (string, error) {
		cancel()
		<-c.Done()
		return "", c.Err()
	})
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = Invoke(context.Background(), 10*time.Millisecond, func(c context.Context) (string, error) {
		<-c.Done()
		return "", c.Err()
	})
	assert.ErrorIs(t, err, ErrTimedOut)
}
