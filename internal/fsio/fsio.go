// Package fsio provides the filesystem primitives the compiler writes
// through, plus a retrying decorator for transient failures.
package fsio

import "os"

// FS is the set of primitives the compiler depends on. The compiler
// treats any error from these as fatal to the run; retry policy lives in
// the implementation, not in the compiler.
type FS interface {
	ReadFile(path string) ([]byte, error)
	EnsureDir(path string) error
	WriteFile(path string, data []byte) error
}

// OS is the direct operating-system implementation.
type OS struct{}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OS) EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (OS) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
