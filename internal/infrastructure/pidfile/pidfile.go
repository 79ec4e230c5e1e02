package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrRunning is returned by Acquire when a live process owns the file.
var ErrRunning = errors.New("server is already running")

// PIDFile keeps a single `colonial serve` instance per PID file path.
type PIDFile struct {
	path string
}

// New creates a PID file manager for path.
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the managed file path.
func (p *PIDFile) Path() string {
	return p.path
}

// Owner returns the PID recorded in the file and whether that process is
// alive. A missing or unreadable file has no owner.
func (p *PIDFile) Owner() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, isProcessRunning(pid)
}

// Acquire writes the current PID. Stale files left by dead processes are
// replaced; a live owner yields ErrRunning.
func (p *PIDFile) Acquire() error {
	if pid, alive := p.Owner(); alive && pid != os.Getpid() {
		return fmt.Errorf("%w (PID %d)", ErrRunning, pid)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create PID file directory: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// KillExisting sends SIGTERM to the owner and waits up to wait for it to
// exit, escalating to SIGKILL. It is a no-op when nothing owns the file.
func (p *PIDFile) KillExisting(wait time.Duration) error {
	pid, alive := p.Owner()
	if !alive {
		return nil
	}
	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
		return fmt.Errorf("failed to stop PID %d: %w", pid, err)
	}

	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		if !isProcessRunning(pid) {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	if err := syscall.Kill(pid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return fmt.Errorf("failed to kill PID %d: %w", pid, err)
	}
	return nil
}

// Release removes the file if this process still owns it.
func (p *PIDFile) Release() error {
	if pid, _ := p.Owner(); pid != 0 && pid != os.Getpid() {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// isProcessRunning probes pid with signal 0. EPERM means the process exists
// but belongs to someone else.
func isProcessRunning(pid int) bool {
	err := syscall.Kill(pid, syscall.Signal(0))
	return err == nil || err == syscall.EPERM
}
