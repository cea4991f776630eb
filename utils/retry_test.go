package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 3, LinearDelay(time.Millisecond), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_StopsOnFirstSuccess(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 5, LinearDelay(time.Millisecond), func() error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	wantErr := errors.New("permanent")
	err := Retry(context.Background(), 3, LinearDelay(time.Millisecond), func() error {
		attempts++
		return wantErr
	})

	assert.Equal(t, wantErr, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Retry(ctx, 3, LinearDelay(time.Hour), func() error {
		attempts++
		return errors.New("transient")
	})

	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 1, attempts)
}

func TestLinearDelay(t *testing.T) {
	delay := LinearDelay(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, delay(1))
	assert.Equal(t, 200*time.Millisecond, delay(2))
	assert.Equal(t, 300*time.Millisecond, delay(3))
}
