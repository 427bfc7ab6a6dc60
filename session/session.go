// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/session.go
// Summary: Session manager: owns the child process handle, its reader tasks
// and the submit-side write path.

package session

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"replpad/logging"
)

const (
	defaultPollInterval = 30 * time.Millisecond
	defaultReadBuffer   = 4096
	defaultChunkBuffer  = 64
)

// Config describes how to launch a session.
type Config struct {
	// Command is the argv of the child process. Must be non-empty.
	Command []string
	// UsePTY merges stdout/stderr onto a pseudo-terminal stream.
	UsePTY bool
	// Cols/Rows size the PTY; ignored for the pipe transport.
	Cols, Rows int
	// PollInterval is the reader backoff after an empty read.
	PollInterval time.Duration
	// ReadBuffer is the per-read buffer size in bytes.
	ReadBuffer int
	// Log overrides the default component logger.
	Log *logrus.Entry
}

// Session owns the child process exclusively. Reader tasks deliver chunks on
// Chunks(); the consumer side (the panel) is their single mutating sink.
type Session struct {
	id        string
	transport Transport
	chunks    chan Chunk
	stop      chan struct{}
	done      chan struct{}
	alive     atomic.Bool
	writeMu   sync.Mutex
	termOnce  sync.Once
	log       *logrus.Entry
}

// Start launches the child process and its stream reader tasks. Failures to
// launch wrap ErrSpawn so the panel can surface them.
func Start(cfg Config) (*Session, error) {
	if len(cfg.Command) == 0 || cfg.Command[0] == "" {
		return nil, fmt.Errorf("%w: empty command", ErrSpawn)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.ReadBuffer <= 0 {
		cfg.ReadBuffer = defaultReadBuffer
	}
	log := cfg.Log
	if log == nil {
		log = logging.Named("session")
	}

	var (
		transport Transport
		err       error
	)
	if cfg.UsePTY {
		transport, err = newPTYTransport(cfg.Command, cfg.Cols, cfg.Rows)
	} else {
		transport, err = newPipeTransport(cfg.Command)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSpawn, cfg.Command[0], err)
	}

	id := uuid.NewString()
	s := &Session{
		id:        id,
		transport: transport,
		chunks:    make(chan Chunk, defaultChunkBuffer),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		log:       log.WithField("session", id[:8]),
	}
	s.alive.Store(true)

	var readers sync.WaitGroup
	startReader := func(id StreamID, r io.Reader) {
		readers.Add(1)
		sr := &streamReader{
			id:      id,
			r:       r,
			out:     s.chunks,
			stop:    s.stop,
			poll:    cfg.PollInterval,
			bufSize: cfg.ReadBuffer,
			log:     s.log.WithField("stream", id.String()),
		}
		go func() {
			defer readers.Done()
			sr.run()
		}()
	}
	startReader(Stdout, transport.Stdout())
	if stderr := transport.Stderr(); stderr != nil {
		startReader(Stderr, stderr)
	}

	go func() {
		readers.Wait()
		// Both streams ended: the session is no longer writable.
		s.alive.Store(false)
		close(s.chunks)
		_ = transport.Close()
		_ = transport.Wait()
		close(s.done)
		s.log.Info("session ended")
	}()

	s.log.WithField("command", cfg.Command).Info("session started")
	return s, nil
}

// ID returns the session's opaque identifier.
func (s *Session) ID() string { return s.id }

// Chunks returns the stream of reads. Closed once every reader task ends.
func (s *Session) Chunks() <-chan Chunk { return s.chunks }

// Alive reports whether the child can still be written to.
func (s *Session) Alive() bool { return s.alive.Load() }

// WriteLine collapses text to one logical line and transmits it with exactly
// one trailing terminator.
func (s *Session) WriteLine(text string) error {
	if !s.Alive() {
		return ErrSessionClosed
	}
	payload := Collapse(text) + "\n"
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.transport.Write([]byte(payload)); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionClosed, err)
	}
	return nil
}

// Terminate requests the child to stop. Idempotent; reader tasks observe the
// closed streams and exit on their own.
func (s *Session) Terminate() {
	s.termOnce.Do(func() {
		close(s.stop)
		_ = s.transport.Close()
		s.log.Info("terminate requested")
	})
}

// Wait blocks until both reader tasks have exited and the child is reaped.
func (s *Session) Wait() { <-s.done }
