// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/reader.go
// Summary: Stream reader tasks draining one process stream each into the
// session's chunk channel.

package session

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// StreamID identifies which process stream a chunk came from.
type StreamID int

const (
	Stdout StreamID = iota
	Stderr
)

func (s StreamID) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Chunk is one read delivered by a stream reader task. Ordering is
// guaranteed within a stream, best-effort across the two.
type Chunk struct {
	Stream StreamID
	Data   string
}

// streamReader owns exactly one stream. It ends permanently on end-of-stream
// or a read error; an empty read backs off for the poll interval.
type streamReader struct {
	id      StreamID
	r       io.Reader
	out     chan<- Chunk
	stop    <-chan struct{}
	poll    time.Duration
	bufSize int
	log     *logrus.Entry
}

func (sr *streamReader) run() {
	buf := make([]byte, sr.bufSize)
	for {
		select {
		case <-sr.stop:
			return
		default:
		}

		n, err := sr.r.Read(buf)
		if n > 0 {
			select {
			case sr.out <- Chunk{Stream: sr.id, Data: string(buf[:n])}:
			case <-sr.stop:
				return
			}
		}
		if err == io.EOF {
			sr.log.Debug("end of stream")
			return
		}
		if err != nil {
			// Local to this task: log and terminate, the sibling stream
			// keeps the session half alive.
			sr.log.WithError(err).Warn(ErrStreamRead.Error())
			return
		}
		if n == 0 {
			// No data ready. Back off before retrying.
			select {
			case <-time.After(sr.poll):
			case <-sr.stop:
				return
			}
		}
	}
}
