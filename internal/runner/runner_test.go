package runner

import (
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		wantCode int
	}{
		{"clean exit", "exit 0", 0},
		{"non-zero exit", "exit 3", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ExecRunner{}.Run("sh", []string{"-c", tt.script}, Options{})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", res.Code, tt.wantCode)
			}
			if res.TimedOut || res.Signaled {
				t.Errorf("unexpected TimedOut=%v Signaled=%v", res.TimedOut, res.Signaled)
			}
		})
	}
}

func TestRunSpawnFailure(t *testing.T) {
	res, err := ExecRunner{}.Run("/nonexistent/definitely-not-a-binary", nil, Options{})
	if err == nil {
		t.Fatal("expected process-creation error")
	}
	if res.Code == 0 {
		t.Errorf("Code = 0, want non-zero on spawn failure")
	}
}

func TestRunStreamDeliversChunksInOrder(t *testing.T) {
	var chunks []string
	res, err := ExecRunner{}.Run("sh",
		[]string{"-c", "printf first; sleep 0.2; printf second"},
		Options{Stream: func(c string) { chunks = append(chunks, c) }})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Code != 0 {
		t.Fatalf("Code = %d, want 0", res.Code)
	}
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2: %q", len(chunks), chunks)
	}
	for _, c := range chunks {
		if c == "" {
			t.Error("sink received an empty chunk")
		}
	}
	if joined := strings.Join(chunks, ""); joined != "firstsecond" {
		t.Errorf("joined output = %q, want %q", joined, "firstsecond")
	}
}

func TestRunTimeoutKillsChild(t *testing.T) {
	start := time.Now()
	res, err := ExecRunner{}.Run("sh",
		[]string{"-c", "echo $$; sleep 5"},
		Options{Timeout: 1 * time.Second, Stream: func(string) {}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Code != 1 {
		t.Errorf("Code = %d, want 1", res.Code)
	}
	if !res.TimedOut {
		t.Error("TimedOut = false, want true")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("run took %v, deadline was not enforced", elapsed)
	}
}

func TestRunTimeoutNotTriggeredOnFastExit(t *testing.T) {
	res, err := ExecRunner{}.Run("sh", []string{"-c", "exit 0"},
		Options{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Code != 0 || res.TimedOut {
		t.Errorf("got %+v, want clean exit without timeout", res)
	}
}

func TestRunSignaledChild(t *testing.T) {
	res, err := ExecRunner{}.Run("sh",
		[]string{"-c", "kill -TERM $$"}, Options{Stream: func(string) {}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Code != 1 {
		t.Errorf("Code = %d, want 1 for signaled child", res.Code)
	}
	if !res.Signaled {
		t.Error("Signaled = false, want true")
	}
}

func TestCapture(t *testing.T) {
	out, res, err := Capture(ExecRunner{}, "sh", []string{"-c", "echo '  padded  '"}, 0)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if res.Code != 0 {
		t.Fatalf("Code = %d, want 0", res.Code)
	}
	if out != "padded" {
		t.Errorf("output = %q, want %q", out, "padded")
	}
}

func TestResultOK(t *testing.T) {
	if !(Result{Code: 0}).OK() {
		t.Error("Code 0 should be OK")
	}
	if (Result{Code: 1, TimedOut: true}).OK() {
		t.Error("timeout result should not be OK")
	}
}

// Guard against zombie leakage from the timeout path: the killed child must
// be reaped by Wait, so its pid should be gone afterwards.
func TestRunTimeoutReapsChild(t *testing.T) {
	var pidLine strings.Builder
	_, err := ExecRunner{}.Run("sh",
		[]string{"-c", "echo $$; sleep 5"},
		Options{Timeout: 1 * time.Second, Stream: func(c string) { pidLine.WriteString(c) }})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	txt := strings.TrimSpace(pidLine.String())
	if txt == "" {
		t.Skip("child pid not captured")
	}
	pid, err := strconv.Atoi(txt)
	if err != nil {
		t.Skipf("cannot parse pid from %q", txt)
	}
	// Give the kernel a moment, then probe with signal 0.
	time.Sleep(100 * time.Millisecond)
	if syscall.Kill(pid, 0) == nil {
		t.Errorf("child %d still alive after timeout kill", pid)
	}
}
