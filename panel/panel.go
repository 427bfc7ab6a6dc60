// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/panel.go
// Summary: Panel controller: composes the session, the cell sequence and the
// layout engine behind the embeddable App contract. Owns the only goroutine
// that mutates cell content.

package panel

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"replpad/config"
	"replpad/highlight"
	"replpad/layout"
	"replpad/logging"
	"replpad/notebook"
	"replpad/session"
	"replpad/theme"
	"replpad/widgets"
)

// sessionHandle is the slice of session.Session the panel consumes. Tests
// substitute a scripted fake.
type sessionHandle interface {
	Chunks() <-chan session.Chunk
	Alive() bool
	WriteLine(text string) error
	Terminate()
}

// Options configures a new panel. Zero values fall back to the config store.
type Options struct {
	// Command is the child argv. Empty means the configured command.
	Command []string
	// UsePTY selects the merged PTY transport.
	UsePTY bool
	// Log overrides the default component logger.
	Log *logrus.Entry
}

// Panel is an embeddable REPL notebook: a vertical stack of output and input
// cells fed by one child process. It implements core.App, core.MouseAware
// and core.PasteHandler.
type Panel struct {
	mu sync.Mutex

	title   string
	command []string

	sess    sessionHandle
	mergers map[session.StreamID]*session.LineMerger
	cells   *notebook.CellSequence
	history *notebook.HistoryStore
	// recallPrefix is the draft captured when recall starts; stepping only
	// visits submissions that share it.
	recallPrefix string
	hl           widgets.Highlighter

	cols, rows int
	scroll     int
	metrics    layout.Metrics

	// pendingOutput requests a scroll-to-reveal of the trailing output cell
	// on the next render.
	pendingOutput bool

	status    string
	statusErr bool

	surfaceStyle tcell.Style
	outputStyle  tcell.Style
	inputStyle   tcell.Style
	borderStyle  tcell.Style
	focusStyle   tcell.Style
	statusStyle  tcell.Style
	errStyle     tcell.Style

	refresh  chan<- bool
	stopCh   chan struct{}
	stopOnce sync.Once

	log *logrus.Entry
}

// New builds a panel and launches its session. A spawn failure still yields
// a usable (inert) panel with the error on its status line, alongside the
// wrapped error, so a host can embed the panel and show the failure in place.
func New(opts Options) (*Panel, error) {
	cfg := config.Get()
	log := opts.Log
	if log == nil {
		log = logging.Named("panel")
	}

	command := opts.Command
	if len(command) == 0 {
		command = strings.Fields(cfg.GetString("", "command", "python3 -i -u"))
	}

	p := &Panel{
		title:   fmt.Sprintf("replpad [%s]", strings.Join(command, " ")),
		command: command,
		metrics: layout.Metrics{
			Margin:     cfg.GetInt("panel", "cell_margin", 1),
			Padding:    cfg.GetInt("panel", "cell_padding", 1),
			LineHeight: 1,
		},
		stopCh: make(chan struct{}),
		log:    log,
	}
	p.loadStyles()

	if cfg.GetBool("highlight", "enabled", true) {
		p.hl = highlight.ForCommand(strings.Join(command, " "),
			cfg.GetString("highlight", "style", ""))
	}

	banner := notebook.NewOutputCell(p.outputStyle)
	banner.AppendOutput(cfg.GetString("panel", "banner", "replpad session"))
	p.cells = notebook.NewCellSequence(banner, notebook.NewInputCell(p.inputStyle, p.hl))

	if h, err := notebook.OpenHistory(); err != nil {
		log.WithError(err).Warn("history store unavailable")
	} else {
		p.history = h
	}

	sess, err := session.Start(session.Config{
		Command:      command,
		UsePTY:       opts.UsePTY,
		Cols:         80,
		Rows:         24,
		PollInterval: time.Duration(cfg.GetInt("session", "poll_interval_ms", 30)) * time.Millisecond,
		ReadBuffer:   cfg.GetInt("session", "read_buffer", 4096),
	})
	if err != nil {
		log.WithError(err).Error("session spawn failed")
		p.setStatus(err.Error(), true)
		return p, err
	}
	p.sess = sess
	p.attachMergers()
	return p, nil
}

// newWithSession wires a panel around an existing session handle. Tests use
// it to drive the panel with scripted chunks.
func newWithSession(sess sessionHandle, hl widgets.Highlighter) *Panel {
	p := &Panel{
		title:   "replpad",
		metrics: layout.Metrics{Margin: 1, Padding: 1, LineHeight: 1},
		stopCh:  make(chan struct{}),
		log:     logging.Named("panel"),
		sess:    sess,
		hl:      hl,
	}
	p.loadStyles()
	banner := notebook.NewOutputCell(p.outputStyle)
	banner.AppendOutput("replpad session")
	p.cells = notebook.NewCellSequence(banner, notebook.NewInputCell(p.inputStyle, hl))
	if h, err := notebook.OpenHistory(); err == nil {
		p.history = h
	}
	p.attachMergers()
	return p
}

// attachMergers builds one merger per stream. Both commit into whatever the
// trailing output cell is at commit time.
func (p *Panel) attachMergers() {
	sink := func(text string) {
		if target := p.cells.OutputTarget(); target != nil {
			target.AppendOutput(text)
		}
	}
	p.mergers = map[session.StreamID]*session.LineMerger{
		session.Stdout: session.NewLineMerger(sink),
		session.Stderr: session.NewLineMerger(sink),
	}
}

func (p *Panel) loadStyles() {
	th := theme.Get()
	surfaceBG := th.GetColor("colors", "surface_bg", tcell.ColorBlack)
	surfaceFG := th.GetColor("colors", "surface_fg", tcell.ColorWhite)
	p.surfaceStyle = tcell.StyleDefault.Background(surfaceBG).Foreground(surfaceFG)
	p.outputStyle = p.surfaceStyle.Background(th.GetColor("colors", "output_bg", surfaceBG))
	p.inputStyle = p.surfaceStyle.Background(th.GetColor("colors", "input_bg", surfaceBG))
	p.borderStyle = p.surfaceStyle.Foreground(th.GetColor("colors", "border", tcell.ColorGray))
	p.focusStyle = p.surfaceStyle.Foreground(th.GetColor("colors", "border_focus", tcell.ColorBlue))
	p.statusStyle = p.surfaceStyle.Foreground(th.GetColor("colors", "status_fg", surfaceFG))
	p.errStyle = p.surfaceStyle.Foreground(th.GetColor("colors", "status_err", tcell.ColorRed))
}

// GetTitle returns the panel's display name.
func (p *Panel) GetTitle() string { return p.title }

// SetRefreshNotifier installs the host's redraw channel.
func (p *Panel) SetRefreshNotifier(ch chan<- bool) {
	p.mu.Lock()
	p.refresh = ch
	p.mu.Unlock()
}

func (p *Panel) notify() {
	p.mu.Lock()
	ch := p.refresh
	p.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- true:
	default:
	}
}

// Resize sets the panel's viewport size in character cells.
func (p *Panel) Resize(cols, rows int) {
	p.mu.Lock()
	p.cols, p.rows = cols, rows
	p.clampScrollLocked()
	p.mu.Unlock()
}

// Run drains the session's chunk channel until Stop. This goroutine is the
// single mutator of cell content; render and input paths take the same lock.
func (p *Panel) Run() error {
	if p.sess == nil {
		<-p.stopCh
		return nil
	}
	for {
		select {
		case <-p.stopCh:
			return nil
		case chunk, ok := <-p.sess.Chunks():
			if !ok {
				p.setStatus("session exited", false)
				p.notify()
				// Keep the transcript visible until the host closes us.
				<-p.stopCh
				return nil
			}
			p.applyChunk(chunk)
		}
	}
}

func (p *Panel) applyChunk(c session.Chunk) {
	p.mu.Lock()
	m := p.mergers[c.Stream]
	committed := m != nil && m.Feed(c.Data)
	if committed {
		p.pendingOutput = true
	}
	p.mu.Unlock()
	if committed {
		p.notify()
	}
}

// Stop terminates the session and releases the panel. Idempotent.
func (p *Panel) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
		if p.sess != nil {
			p.sess.Terminate()
		}
		if p.history != nil {
			p.history.Close()
		}
		p.log.Info("panel stopped")
	})
}

// Submit runs the submit protocol on the trailing input cell: freeze it,
// open a fresh output cell (dropping withheld newlines), transmit the
// collapsed text, record it in history and open a fresh input cell. A dead
// session leaves the sequence untouched and returns ErrSessionClosed.
func (p *Panel) Submit() error {
	p.mu.Lock()
	if p.sess == nil || !p.sess.Alive() {
		p.setStatusLocked(session.ErrSessionClosed.Error(), true)
		p.mu.Unlock()
		p.notify()
		return session.ErrSessionClosed
	}
	text := p.cells.TailInput().Text()

	p.cells.FreezeTailInput()
	for _, m := range p.mergers {
		m.Reset()
	}
	out := notebook.NewOutputCell(p.outputStyle)
	in := notebook.NewInputCell(p.inputStyle, p.hl)
	p.cells.AppendPair(out, in)
	p.pendingOutput = true
	p.mu.Unlock()

	if err := p.sess.WriteLine(text); err != nil {
		p.setStatus(err.Error(), true)
		p.notify()
		return err
	}
	if p.history != nil {
		if err := p.history.Add(session.Collapse(text)); err != nil {
			p.log.WithError(err).Warn("history record failed")
		}
	}
	p.setStatus("", false)
	p.notify()
	return nil
}

func (p *Panel) setStatus(msg string, isErr bool) {
	p.mu.Lock()
	p.setStatusLocked(msg, isErr)
	p.mu.Unlock()
}

func (p *Panel) setStatusLocked(msg string, isErr bool) {
	p.status = msg
	p.statusErr = isErr
}

// outputIndexLocked returns the display index of the trailing output cell.
func (p *Panel) outputIndexLocked() int {
	for i := p.cells.Len() - 1; i >= 0; i-- {
		if p.cells.At(i).Role == notebook.Output {
			return i
		}
	}
	return -1
}

func (p *Panel) viewportHeightLocked() int {
	// The bottom row is the status line.
	if p.rows <= 1 {
		return 0
	}
	return p.rows - 1
}

func (p *Panel) clampScrollLocked() {
	max := layout.MaxScroll(
		layout.ContentHeight(p.cells.LineCounts(), p.metrics),
		p.viewportHeightLocked())
	if p.scroll > max {
		p.scroll = max
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}
