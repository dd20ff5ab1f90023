package fsio

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

// scriptedFS returns one queued error per call until the queue drains,
// then succeeds.
type scriptedFS struct {
	errs   []error
	reads  int
	mkdirs int
	writes int
}

func (s *scriptedFS) next() error {
	if len(s.errs) == 0 {
		return nil
	}
	err := s.errs[0]
	s.errs = s.errs[1:]
	return err
}

func (s *scriptedFS) ReadFile(path string) ([]byte, error) {
	s.reads++
	if err := s.next(); err != nil {
		return nil, err
	}
	return []byte("data"), nil
}

func (s *scriptedFS) EnsureDir(path string) error {
	s.mkdirs++
	return s.next()
}

func (s *scriptedFS) WriteFile(path string, data []byte) error {
	s.writes++
	return s.next()
}

func newTestRetrying(inner FS) (*Retrying, *[]time.Duration) {
	var slept []time.Duration
	r := RetryWith(inner, DefaultAttempts, DefaultBackoff)
	r.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}
	return r, &slept
}

func TestRetrying_SucceedsAfterTransientErrors(t *testing.T) {
	inner := &scriptedFS{errs: []error{syscall.EAGAIN, syscall.EBUSY}}
	r, slept := newTestRetrying(inner)

	data, err := r.ReadFile("x")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "data" {
		t.Errorf("ReadFile() = %q, want %q", data, "data")
	}
	if inner.reads != 3 {
		t.Errorf("reads = %d, want 3", inner.reads)
	}
	if len(*slept) != 2 {
		t.Fatalf("sleeps = %d, want 2", len(*slept))
	}
}

func TestRetrying_BackoffDoubles(t *testing.T) {
	inner := &scriptedFS{errs: []error{syscall.EAGAIN, syscall.EAGAIN, syscall.EAGAIN}}
	r, slept := newTestRetrying(inner)

	if err := r.WriteFile("x", nil); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	want := []time.Duration{
		DefaultBackoff,
		2 * DefaultBackoff,
		4 * DefaultBackoff,
	}
	if len(*slept) != len(want) {
		t.Fatalf("sleeps = %v, want %v", *slept, want)
	}
	for i, d := range want {
		if (*slept)[i] != d {
			t.Errorf("sleep[%d] = %v, want %v", i, (*slept)[i], d)
		}
	}
}

func TestRetrying_PermanentErrorPassesThrough(t *testing.T) {
	permanent := os.ErrNotExist
	inner := &scriptedFS{errs: []error{permanent}}
	r, slept := newTestRetrying(inner)

	_, err := r.ReadFile("missing")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ReadFile() error = %v, want not-exist", err)
	}
	if inner.reads != 1 {
		t.Errorf("reads = %d, want 1 (no retry on permanent error)", inner.reads)
	}
	if len(*slept) != 0 {
		t.Errorf("sleeps = %v, want none", *slept)
	}
}

func TestRetrying_GivesUpAfterBudget(t *testing.T) {
	inner := &scriptedFS{errs: []error{
		syscall.EMFILE, syscall.EMFILE, syscall.EMFILE, syscall.EMFILE, syscall.EMFILE,
	}}
	r, _ := newTestRetrying(inner)

	err := r.EnsureDir("x")
	if !errors.Is(err, syscall.EMFILE) {
		t.Fatalf("EnsureDir() error = %v, want EMFILE", err)
	}
	if inner.mkdirs != DefaultAttempts {
		t.Errorf("mkdirs = %d, want %d", inner.mkdirs, DefaultAttempts)
	}
}

func TestRetrying_WrappedErrnoDetected(t *testing.T) {
	// Real filesystem errors arrive wrapped in *os.PathError.
	wrapped := &os.PathError{Op: "open", Path: "x", Err: syscall.ENFILE}
	inner := &scriptedFS{errs: []error{wrapped}}
	r, _ := newTestRetrying(inner)

	if err := r.WriteFile("x", nil); err != nil {
		t.Fatalf("WriteFile() error = %v, want retry then success", err)
	}
	if inner.writes != 2 {
		t.Errorf("writes = %d, want 2", inner.writes)
	}
}

func TestRetryWith_MinimumOneAttempt(t *testing.T) {
	inner := &scriptedFS{}
	r := RetryWith(inner, 0, DefaultBackoff)

	if err := r.EnsureDir("x"); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if inner.mkdirs != 1 {
		t.Errorf("mkdirs = %d, want 1", inner.mkdirs)
	}
}

func TestOS_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := OS{}

	sub := filepath.Join(dir, "a", "b")
	if err := fs.EnsureDir(sub); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	path := filepath.Join(sub, "f.txt")
	if err := fs.WriteFile(path, []byte("hello")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("ReadFile() = %q, want %q", data, "hello")
	}
}

func TestOS_EnsureDirIdempotent(t *testing.T) {
	dir := t.TempDir()
	fs := OS{}

	if err := fs.EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}
