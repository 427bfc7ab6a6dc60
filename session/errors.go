// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/errors.go
// Summary: Error taxonomy for the subprocess session.

package session

import "errors"

var (
	// ErrSpawn reports that the child process could not be launched. It is
	// surfaced to the user by the panel; callers must not swallow it.
	ErrSpawn = errors.New("session: spawn failed")

	// ErrSessionClosed reports an operation attempted after the child
	// exited. Submit becomes a reported no-op.
	ErrSessionClosed = errors.New("session: closed")

	// ErrStreamRead reports an unexpected I/O failure on one stream. It is
	// local to that stream's reader task: the task logs it and terminates,
	// leaving the session half alive if the sibling stream still runs.
	ErrStreamRead = errors.New("session: stream read failed")
)
