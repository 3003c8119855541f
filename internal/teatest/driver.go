// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of starting a tea.Program, the Driver feeds messages straight into
// Update and immediately executes whatever commands come back, recursively,
// until the model settles. Tests stay single-goroutine and deterministic.
//
// Commands that block on timers (cursor blink, tea.Tick) are given a short
// window to return and dropped otherwise, so a pending timer never stalls a
// test or fires into it later.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDrainDepth bounds recursive command draining. A model that feeds itself
// messages past this depth is looping.
const maxDrainDepth = 100

// runTimeout separates instant commands (message factories, in-memory stubs)
// from timer-backed ones. Blink commands sleep for roughly half a second;
// anything a test stub runs finishes in microseconds.
const runTimeout = 10 * time.Millisecond

// Driver owns a model under test and the state accumulated while driving it.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting records that a tea.QuitMsg was produced. The real runtime
	// swallows that message before the model sees it, so the driver flags
	// it here instead of relying on model state.
	Quitting bool
}

// Option adjusts the Driver before the first message is sent.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg up front, the way the runtime does on
// startup.
func WithSize(width, height int) Option {
	return func(d *Driver) {
		d.T.Helper()
		next, _ := d.Model.Update(tea.WindowSizeMsg{Width: width, Height: height})
		d.Model = next
	}
}

// New wraps a model. Follow with DrainInit to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit executes Init and everything it cascades into.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send runs one message through Update and drains the resulting commands.
// After a quit, further messages are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	next, cmd := d.Model.Update(msg)
	d.Model = next
	d.drain(cmd, 0)
}

// View renders the model as it stands.
func (d *Driver) View() string {
	return d.Model.View()
}

// ── key helpers ──────────────────────────────────────────────────────────────

// SendKey sends a raw key message.
func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey sends a single printable character.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends a string one character at a time, as a user would.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyEnter})
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyEsc})
}

func (d *Driver) PressTab() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})
}

func (d *Driver) PressUp() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyUp})
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyDown})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlC})
}

// ── draining ─────────────────────────────────────────────────────────────────

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDrainDepth {
		d.T.Logf("teatest: aborting drain at depth %d", depth)
		return
	}

	msg := runWithTimeout(cmd)
	switch msg := msg.(type) {
	case nil:
		return

	case tea.BatchMsg:
		for _, sub := range msg {
			if sub != nil {
				d.drain(sub, depth+1)
			}
		}
		return

	case tea.QuitMsg:
		d.Quitting = true
		next, _ := d.Model.Update(msg)
		d.Model = next
		return
	}

	// Blink messages chain into blocking timer commands; drop them here in
	// case one returned within the timeout.
	if isBlink(msg) {
		return
	}

	next, cmd := d.Model.Update(msg)
	d.Model = next
	d.drain(cmd, depth+1)
}

// runWithTimeout executes a command, giving up after runTimeout so that
// timer-backed commands never block the test goroutine.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(runTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor-blink message types from
// bubbles/cursor by type name.
func isBlink(msg tea.Msg) bool {
	name := fmt.Sprintf("%T", msg)
	return strings.Contains(name, "Blink") || strings.Contains(name, "blink")
}
