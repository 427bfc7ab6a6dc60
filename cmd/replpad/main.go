// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/replpad/main.go
// Summary: Standalone host harness: runs the panel full-screen on a local
// tcell screen. Embedders wire panel.Panel into their own host instead.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"replpad/config"
	"replpad/core"
	"replpad/logging"
	"replpad/panel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "replpad:", err)
		os.Exit(1)
	}
}

func run() error {
	command := flag.String("command", "", "interpreter command (default from config)")
	usePTY := flag.Bool("pty", config.Get().GetBool("session", "use_pty", false), "run the child on a pseudo-terminal")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	if path, err := config.LogPath(); err == nil {
		if closer, err := logging.SetupFile(path, *debug); err == nil {
			defer closer.Close()
		}
	}
	if err := config.Err(); err != nil {
		logging.Named("main").WithError(err).Warn("config load failed, using defaults")
	}

	opts := panel.Options{UsePTY: *usePTY}
	if *command != "" {
		opts.Command = strings.Fields(*command)
	}
	p, err := panel.New(opts)
	if err != nil {
		// The panel still renders with the failure on its status line, but a
		// standalone run has nothing else to show; bail out instead.
		return err
	}
	return hostLoop(p)
}

// hostLoop owns the tcell screen and pumps events into the panel. It mirrors
// the contract an embedding host follows: one refresh channel in, frames out.
func hostLoop(app core.App) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()
	screen.EnablePaste()

	width, height := screen.Size()
	app.Resize(width, height)
	refreshCh := make(chan bool, 1)
	app.SetRefreshNotifier(refreshCh)

	draw := func() {
		screen.Clear()
		for y, row := range app.Render() {
			for x, cell := range row {
				screen.SetContent(x, y, cell.Ch, nil, cell.Style)
			}
		}
		screen.Show()
	}
	draw()

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run()
	}()
	defer app.Stop()

	go func() {
		for range refreshCh {
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	var pasteBuf []rune
	inPaste := false

	for {
		select {
		case err := <-runErr:
			return err
		default:
		}

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventInterrupt:
			draw()
		case *tcell.EventResize:
			w, h := ev.Size()
			app.Resize(w, h)
			screen.Sync()
			draw()
		case *tcell.EventPaste:
			if ev.Start() {
				inPaste = true
				pasteBuf = nil
			} else if ev.End() {
				inPaste = false
				if ph, ok := app.(core.PasteHandler); ok && len(pasteBuf) > 0 {
					ph.HandlePaste(string(pasteBuf))
					draw()
				}
				pasteBuf = nil
			}
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ {
				return nil
			}
			if inPaste {
				switch ev.Key() {
				case tcell.KeyRune:
					pasteBuf = append(pasteBuf, ev.Rune())
				case tcell.KeyEnter:
					pasteBuf = append(pasteBuf, '\n')
				}
				continue
			}
			app.HandleKey(ev)
			draw()
		case *tcell.EventMouse:
			if mh, ok := app.(core.MouseAware); ok {
				mh.HandleMouse(ev)
				draw()
			}
		}
	}
}
