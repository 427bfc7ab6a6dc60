// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/session_test.go
// Summary: Session lifecycle tests against real child processes.

package session

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testTimeout = 5 * time.Second

// drain collects chunk data per stream until the channel closes or the
// predicate is satisfied.
func drain(t *testing.T, s *Session, done func(stdout, stderr string) bool) (string, string) {
	t.Helper()
	var out, errOut strings.Builder
	deadline := time.After(testTimeout)
	for {
		select {
		case c, ok := <-s.Chunks():
			if !ok {
				return out.String(), errOut.String()
			}
			if c.Stream == Stderr {
				errOut.WriteString(c.Data)
			} else {
				out.WriteString(c.Data)
			}
			if done != nil && done(out.String(), errOut.String()) {
				return out.String(), errOut.String()
			}
		case <-deadline:
			t.Fatalf("timed out draining session; stdout=%q stderr=%q", out.String(), errOut.String())
		}
	}
}

func TestStartRejectsBadExecutable(t *testing.T) {
	_, err := Start(Config{Command: []string{"/nonexistent/replpad-test-binary"}})
	if !errors.Is(err, ErrSpawn) {
		t.Fatalf("err = %v, want ErrSpawn", err)
	}

	if _, err := Start(Config{}); !errors.Is(err, ErrSpawn) {
		t.Fatalf("empty command err = %v, want ErrSpawn", err)
	}
}

func TestWriteLineEchoesThroughCat(t *testing.T) {
	s, err := Start(Config{Command: []string{"cat"}})
	if err != nil {
		t.Fatalf("Start(cat): %v", err)
	}
	defer func() { s.Terminate(); s.Wait() }()

	if err := s.WriteLine("hello"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	out, _ := drain(t, s, func(stdout, _ string) bool {
		return strings.Contains(stdout, "hello\n")
	})
	if !strings.Contains(out, "hello\n") {
		t.Errorf("stdout = %q, want it to contain %q", out, "hello\n")
	}
}

func TestMultiLineSubmissionCollapses(t *testing.T) {
	s, err := Start(Config{Command: []string{"cat"}})
	if err != nil {
		t.Fatalf("Start(cat): %v", err)
	}
	defer func() { s.Terminate(); s.Wait() }()

	if err := s.WriteLine("print(1\n+1)"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	out, _ := drain(t, s, func(stdout, _ string) bool {
		return strings.Contains(stdout, "\n")
	})
	if !strings.Contains(out, "print(1 +1)\n") {
		t.Errorf("transmitted payload = %q, want %q", out, "print(1 +1)\n")
	}
}

func TestStderrArrivesOnItsOwnStream(t *testing.T) {
	s, err := Start(Config{Command: []string{"sh", "-c", "echo out; echo err 1>&2"}})
	if err != nil {
		t.Fatalf("Start(sh): %v", err)
	}
	defer func() { s.Terminate(); s.Wait() }()

	out, errOut := drain(t, s, nil)
	if !strings.Contains(out, "out") {
		t.Errorf("stdout = %q, want %q", out, "out")
	}
	if !strings.Contains(errOut, "err") {
		t.Errorf("stderr = %q, want %q", errOut, "err")
	}
}

func TestSessionDiesWhenChildExits(t *testing.T) {
	s, err := Start(Config{Command: []string{"true"}})
	if err != nil {
		t.Fatalf("Start(true): %v", err)
	}
	drain(t, s, nil) // channel closes when both readers stop
	s.Wait()

	if s.Alive() {
		t.Errorf("session still alive after child exit")
	}
	if err := s.WriteLine("anything"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("WriteLine after exit = %v, want ErrSessionClosed", err)
	}
}

func TestTerminateIsIdempotent(t *testing.T) {
	s, err := Start(Config{Command: []string{"cat"}})
	if err != nil {
		t.Fatalf("Start(cat): %v", err)
	}
	s.Terminate()
	s.Terminate()
	drain(t, s, nil)
	s.Wait()
	if s.Alive() {
		t.Errorf("session alive after Terminate")
	}
}
