package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/infrastructure/pidfile"
)

func TestAcquire_WritesOwnPIDAndReleaseRemovesIt(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "run", "colonial.pid")
	pf := pidfile.New(path)

	// Act
	require.NoError(t, pf.Acquire())

	// Assert
	pid, alive := pf.Owner()
	assert.Equal(t, os.Getpid(), pid)
	assert.True(t, alive)

	require.NoError(t, pf.Release())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAcquire_ReplacesStaleFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "colonial.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))
	pf := pidfile.New(path)

	// Act
	err := pf.Acquire()

	// Assert
	require.NoError(t, err)
	data, _ := os.ReadFile(path)
	assert.Equal(t, strconv.Itoa(os.Getpid())+"\n", string(data))
}

func TestAcquire_LiveOwnerIsRejected(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "colonial.pid")
	// PID 1 always exists on unix
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))
	pf := pidfile.New(path)

	// Act
	err := pf.Acquire()

	// Assert
	assert.ErrorIs(t, err, pidfile.ErrRunning)
}

func TestKillExisting_NoOwnerIsNoop(t *testing.T) {
	pf := pidfile.New(filepath.Join(t.TempDir(), "missing.pid"))
	assert.NoError(t, pf.KillExisting(time.Second))
}
