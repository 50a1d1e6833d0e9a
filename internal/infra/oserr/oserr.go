// Package oserr provides the OS-level error taxonomy and the fail-fast
// diagnostics printed when one of those errors reaches main.
package oserr

import (
	"fmt"
	"syscall"

	"github.com/cockroachdb/errors"
)

// SyscallError records a failed OS-level call (spawn, signal, read, chdir...).
type SyscallError struct {
	Op  string // Name of the failing call
	Err error  // Underlying OS error
}

func (e *SyscallError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SyscallError) Unwrap() error {
	return e.Err
}

// Wrap wraps err as a SyscallError for op and records the caller's stack.
// Returns nil if err is nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStackDepth(&SyscallError{Op: op, Err: err}, 1)
}

// IsSyscall reports whether err carries a SyscallError.
func IsSyscall(err error) bool {
	var se *SyscallError
	return errors.As(err, &se)
}

// Errno extracts the OS error number from err.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

// ExitCode returns the process exit code for a fatal err: the OS error
// number when one is available, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errno, ok := Errno(err); ok && errno != 0 {
		return int(errno)
	}
	return 1
}

// Diagnostic formats the message printed before a fatal exit. It names the
// OS error, the function that made the failing call and its source location.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}

	reason := err.Error()
	if errno, ok := Errno(err); ok {
		reason = errno.Error()
	}

	kind := "error"
	if IsSyscall(err) {
		kind = "syscall error"
	}

	file, line, fn, ok := errors.GetOneLineSource(err)
	if !ok {
		return fmt.Sprintf("%s: (%s)", kind, reason)
	}
	return fmt.Sprintf("%s: (%s) in function %s at line %d of file %s", kind, reason, fn, line, file)
}
