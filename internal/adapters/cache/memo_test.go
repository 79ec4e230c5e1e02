package cache_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/adapters/cache"
)

func TestMemo_LoadsOncePerKey(t *testing.T) {
	// Arrange
	var m cache.Memo[string, int]
	calls := 0
	load := func() (int, error) {
		calls++
		return calls * 10, nil
	}

	// Act
	first, err1 := m.Get("b1", load)
	second, err2 := m.Get("b1", load)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, 10, first)
	assert.Equal(t, 10, second)
	assert.Equal(t, 1, calls)
}

func TestMemo_KeyChangeReloads(t *testing.T) {
	// Arrange
	var m cache.Memo[string, string]
	_, _ = m.Get("b1", func() (string, error) { return "one", nil })

	// Act
	v, err := m.Get("b2", func() (string, error) { return "two", nil })

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "two", v)
	_, ok := m.Peek("b1")
	assert.False(t, ok)
}

func TestMemo_FailedLoadLeavesNothing(t *testing.T) {
	// Arrange
	var m cache.Memo[string, string]
	m.Put("b1", "one")
	boom := errors.New("boom")

	// Act
	v, err := m.Get("b2", func() (string, error) { return "", boom })

	// Assert
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, v)
	_, ok := m.Peek("b1")
	assert.False(t, ok)
	_, ok = m.Peek("b2")
	assert.False(t, ok)
}

func TestMemo_Invalidate(t *testing.T) {
	// Arrange
	var m cache.Memo[int, string]
	m.Put(1, "x")

	// Act
	m.Invalidate()

	// Assert
	_, ok := m.Peek(1)
	assert.False(t, ok)
	calls := 0
	_, _ = m.Get(1, func() (string, error) { calls++; return "y", nil })
	assert.Equal(t, 1, calls)
}

func TestMemo_InvalidateDoesNotWaitForLoad(t *testing.T) {
	// Arrange
	var m cache.Memo[string, string]
	started := make(chan struct{})
	release := make(chan struct{})
	result := make(chan string, 1)
	go func() {
		v, _ := m.Get("b1", func() (string, error) {
			close(started)
			<-release
			return "old", nil
		})
		result <- v
	}()
	<-started

	// Act
	invalidated := make(chan struct{})
	go func() {
		m.Invalidate()
		close(invalidated)
	}()

	// Assert
	select {
	case <-invalidated:
	case <-time.After(time.Second):
		t.Fatal("Invalidate blocked behind an in-flight load")
	}
	close(release)
	assert.Equal(t, "old", <-result)
	_, ok := m.Peek("b1")
	assert.False(t, ok, "a load that raced an invalidation must not be stored")
}
