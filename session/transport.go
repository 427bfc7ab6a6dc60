// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/transport.go
// Summary: Process transports: separate stdout/stderr pipes, or a merged PTY
// stream for children that insist on a terminal.

package session

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// Transport is the process primitive the session consumes. Stderr returns
// nil when the transport merges both streams (PTY mode).
type Transport interface {
	Stdout() io.Reader
	Stderr() io.Reader
	Write(p []byte) (int, error)
	// Close requests the child to stop and releases the streams. Idempotent.
	Close() error
	// Wait reaps the child after the readers have drained the streams.
	Wait() error
}

// pipeTransport runs the child with independent stdin/stdout/stderr pipes.
type pipeTransport struct {
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    io.ReadCloser
	stderr    io.ReadCloser
	closeOnce sync.Once
	closeErr  error
}

func newPipeTransport(argv []string) (*pipeTransport, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &pipeTransport{cmd: cmd, stdin: stdin, stdout: stdout, stderr: stderr}, nil
}

func (t *pipeTransport) Stdout() io.Reader { return t.stdout }
func (t *pipeTransport) Stderr() io.Reader { return t.stderr }

func (t *pipeTransport) Write(p []byte) (int, error) { return t.stdin.Write(p) }

func (t *pipeTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.stdin.Close()
		if t.cmd.Process != nil {
			_ = t.cmd.Process.Kill()
		}
	})
	return t.closeErr
}

func (t *pipeTransport) Wait() error { return t.cmd.Wait() }

// ptyTransport runs the child on a pseudo-terminal. stdout and stderr arrive
// merged on the single PTY stream, so Stderr reports nil and the session
// starts only one reader task.
type ptyTransport struct {
	cmd       *exec.Cmd
	ptmx      *os.File
	closeOnce sync.Once
	closeErr  error
}

func newPTYTransport(argv []string, cols, rows int) (*ptyTransport, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return nil, err
	}
	return &ptyTransport{cmd: cmd, ptmx: ptmx}, nil
}

func (t *ptyTransport) Stdout() io.Reader { return t.ptmx }
func (t *ptyTransport) Stderr() io.Reader { return nil }

func (t *ptyTransport) Write(p []byte) (int, error) { return t.ptmx.Write(p) }

func (t *ptyTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.ptmx.Close()
		if t.cmd.Process != nil {
			_ = t.cmd.Process.Kill()
		}
	})
	return t.closeErr
}

func (t *ptyTransport) Wait() error { return t.cmd.Wait() }

// Resize propagates a new terminal size to the child.
func (t *ptyTransport) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("resize: invalid size %dx%d", cols, rows)
	}
	return pty.Setsize(t.ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}
