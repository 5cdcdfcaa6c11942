package runner

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"syscall"
	"time"
)

// Result describes how a child process finished. Code keeps the historic
// 0=success / 1=failure convention; TimedOut and Signaled let callers that
// care tell a deadline kill apart from a genuine non-zero exit.
type Result struct {
	Code     int
	TimedOut bool
	Signaled bool
}

// OK reports whether the child exited cleanly.
func (r Result) OK() bool { return r.Code == 0 }

// Options configures a single supervised run.
type Options struct {
	// Stream receives stdout chunks in production order as they are read.
	// When nil, stdout is inherited from the parent.
	Stream func(chunk string)

	// Timeout is a wall-clock deadline. On expiry the child's process
	// group is killed and the result reports Code 1 with TimedOut set.
	// Zero means no deadline.
	Timeout time.Duration
}

// CommandRunner abstracts child execution so callers can be tested with a
// fake that never forks.
type CommandRunner interface {
	Run(name string, args []string, opts Options) (Result, error)
}

// ExecRunner runs real processes via os/exec.
type ExecRunner struct{}

// New returns the default process-backed runner.
func New() CommandRunner { return ExecRunner{} }

// Run starts name/args, optionally streams stdout, optionally enforces a
// deadline, and waits for exit. The returned error covers process-creation
// failures only; everything after a successful start is folded into Result.
func (ExecRunner) Run(name string, args []string, opts Options) (Result, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr
	// Own process group so a timeout kill reaches the tool's children too.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout io.ReadCloser
	if opts.Stream != nil {
		pipe, err := cmd.StdoutPipe()
		if err != nil {
			return Result{Code: 1}, err
		}
		stdout = pipe
	} else {
		cmd.Stdout = os.Stdout
	}

	if err := cmd.Start(); err != nil {
		return Result{Code: 1}, err
	}

	var timedOut atomic.Bool
	if opts.Timeout > 0 {
		timer := time.AfterFunc(opts.Timeout, func() {
			timedOut.Store(true)
			killGroup(cmd.Process.Pid)
		})
		defer timer.Stop()
	}

	// Blocking chunk reads: the pipe returns EOF once the child exits or
	// is killed, so no poll loop is needed.
	if stdout != nil {
		buf := make([]byte, 4096)
		for {
			n, err := stdout.Read(buf)
			if n > 0 {
				opts.Stream(string(buf[:n]))
			}
			if err != nil {
				break
			}
		}
	}

	err := cmd.Wait()
	res := classify(err)
	if timedOut.Load() {
		res.Code = 1
		res.TimedOut = true
	}
	return res, nil
}

// classify maps a Wait error to a Result.
func classify(err error) Result {
	if err == nil {
		return Result{Code: 0}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res := Result{Code: exitErr.ExitCode()}
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			res.Code = 1
			res.Signaled = true
		}
		return res
	}
	// Wait itself failed (I/O error on the pipe, etc.).
	return Result{Code: 1}
}

func killGroup(pid int) {
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		_ = syscall.Kill(pid, syscall.SIGKILL)
	}
}

// Capture runs the command collecting stdout, and returns the concatenated
// output with surrounding whitespace trimmed.
func Capture(r CommandRunner, name string, args []string, timeout time.Duration) (string, Result, error) {
	var sb strings.Builder
	res, err := r.Run(name, args, Options{
		Stream:  func(chunk string) { sb.WriteString(chunk) },
		Timeout: timeout,
	})
	return strings.TrimSpace(sb.String()), res, err
}
