// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/merge.go
// Summary: Newline-merge algorithm turning chunked stream reads into stable
// visual text.
//
// A chunk boundary can fall anywhere, including right after a newline. If
// trailing newlines were committed immediately, a blank line would flash in
// the cell and then collect the content of the next read below it. The
// merger therefore withholds the maximal trailing newline run of each chunk
// and only commits it once real content follows. Withheld newlines still in
// flight when a new output cell opens are dropped on purpose: they are
// trailing whitespace of the finished cell.

package session

import "strings"

// LineMerger holds the pending-newline buffer for one stream and commits
// merged text through the sink callback. It is not safe for concurrent use;
// the panel's consumer goroutine is the single caller.
type LineMerger struct {
	sink    func(text string)
	pending string
}

// NewLineMerger creates a merger committing to sink.
func NewLineMerger(sink func(text string)) *LineMerger {
	return &LineMerger{sink: sink}
}

// Feed merges one chunk. It reports whether text was committed to the sink,
// which doubles as the "new output arrived" signal.
func (m *LineMerger) Feed(chunk string) bool {
	body, newlines := splitTrailingNewlines(chunk)
	if body != "" {
		m.sink(m.pending + body)
		m.pending = newlines
		return true
	}
	// Whole chunk was newlines (possibly none): accumulate, don't flush.
	m.pending += newlines
	return false
}

// Pending returns the withheld trailing newline run.
func (m *LineMerger) Pending() string { return m.pending }

// Reset discards the pending buffer. Called exactly when the submit protocol
// opens a fresh output cell.
func (m *LineMerger) Reset() { m.pending = "" }

// splitTrailingNewlines separates a chunk into its body and the maximal
// trailing run of newline characters.
func splitTrailingNewlines(s string) (body, newlines string) {
	i := len(s)
	for i > 0 && s[i-1] == '\n' {
		i--
	}
	return s[:i], s[i:]
}

// Collapse rewrites a multi-line submission as one logical line: interior
// line terminators become single spaces and the trailing terminator run is
// stripped. The caller appends exactly one terminator when transmitting.
func Collapse(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	return strings.ReplaceAll(text, "\n", " ")
}
