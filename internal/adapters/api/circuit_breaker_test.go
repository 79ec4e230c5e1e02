package api_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colonial-go/internal/adapters/api"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	cb := api.NewCircuitBreaker(2, 30*time.Second, clock)
	var transitions []string
	cb.OnStateChange(func(from, to api.CircuitState) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})
	boom := errors.New("connection refused")

	_ = cb.Call(func() error { return boom })
	_ = cb.Call(func() error { return boom })
	assert.Equal(t, api.CircuitOpen, cb.State())
	assert.ErrorIs(t, cb.Call(func() error { return nil }), api.ErrCircuitOpen)

	clock.Advance(31 * time.Second)
	assert.NoError(t, cb.Call(func() error { return nil }))

	assert.Equal(t, api.CircuitClosed, cb.State())
	assert.Equal(t, 0, cb.FailureCount())
	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestCircuitBreaker_ClientErrorsDoNotCount(t *testing.T) {
	cb := api.NewCircuitBreaker(1, time.Minute, nil)

	err := cb.Call(func() error { return &api.APIError{StatusCode: 409} })

	assert.Error(t, err)
	assert.Equal(t, api.CircuitClosed, cb.State())
}
