package fsio

import (
	"errors"
	"syscall"
	"time"
)

// Default retry policy.
const (
	DefaultAttempts = 4
	DefaultBackoff  = 25 * time.Millisecond
)

// transientErrnos are the resource-temporarily-busy class of failures
// worth retrying. Anything else passes through on the first attempt.
var transientErrnos = []syscall.Errno{
	syscall.EAGAIN,
	syscall.EINTR,
	syscall.EBUSY,
	syscall.EMFILE,
	syscall.ENFILE,
}

// Retrying decorates an FS with bounded exponential backoff on transient
// errors. The wrapped FS keeps the FS contract, so callers never see the
// retry policy.
type Retrying struct {
	inner    FS
	attempts int
	backoff  time.Duration
	sleep    func(time.Duration)
}

// Retry wraps fs with the default retry policy.
func Retry(fs FS) *Retrying {
	return RetryWith(fs, DefaultAttempts, DefaultBackoff)
}

// RetryWith wraps fs with an explicit attempt budget and initial backoff.
// The delay doubles after every failed attempt.
func RetryWith(fs FS, attempts int, backoff time.Duration) *Retrying {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrying{
		inner:    fs,
		attempts: attempts,
		backoff:  backoff,
		sleep:    time.Sleep,
	}
}

func (r *Retrying) ReadFile(path string) ([]byte, error) {
	var data []byte
	err := r.do(func() error {
		var opErr error
		data, opErr = r.inner.ReadFile(path)
		return opErr
	})
	return data, err
}

func (r *Retrying) EnsureDir(path string) error {
	return r.do(func() error {
		return r.inner.EnsureDir(path)
	})
}

func (r *Retrying) WriteFile(path string, data []byte) error {
	return r.do(func() error {
		return r.inner.WriteFile(path, data)
	})
}

func (r *Retrying) do(op func() error) error {
	delay := r.backoff
	var err error
	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			r.sleep(delay)
			delay *= 2
		}
		err = op()
		if err == nil || !isTransient(err) {
			return err
		}
	}
	return err
}

func isTransient(err error) bool {
	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
