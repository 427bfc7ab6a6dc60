// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/app.go
// Summary: Host-facing contracts: the App interface an embeddable panel
// implements, plus the optional capability interfaces a host may probe for.

package core

import "github.com/gdamore/tcell/v2"

// App is the minimal contract an embeddable panel satisfies. The host gives
// the app a refresh channel and a size, pumps events into it, and pulls
// frames out of Render. Run blocks until Stop is called or the app decides
// to exit on its own.
type App interface {
	GetTitle() string
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(ch chan<- bool)
}

// MouseAware apps consume pointer events. Hosts that track a mouse forward
// press/move/release and wheel events here.
type MouseAware interface {
	HandleMouse(ev *tcell.EventMouse)
}

// PasteHandler apps accept bracketed paste text as a single unit instead of
// a key-by-key replay.
type PasteHandler interface {
	HandlePaste(text string)
}
