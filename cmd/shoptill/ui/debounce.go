package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Debouncer defers work until typing pauses, inside the bubbletea
// message loop: every Trigger bumps a version and schedules a
// DebounceMsg; only the message carrying the latest version is acted
// on, so rapid keystrokes collapse into one lookup.
type Debouncer struct {
	owner    string
	version  int
	duration time.Duration
}

// DebounceMsg fires when a debounce window elapses.
type DebounceMsg struct {
	Owner   string
	Version int
}

// NewDebouncer creates a debouncer for the given owner id.
func NewDebouncer(owner string, duration time.Duration) Debouncer {
	return Debouncer{owner: owner, duration: duration}
}

// Trigger schedules a DebounceMsg after the debounce duration. Any
// previously scheduled message becomes stale.
func (d *Debouncer) Trigger() tea.Cmd {
	d.version++
	owner, version := d.owner, d.version
	if d.duration <= 0 {
		return func() tea.Msg { return DebounceMsg{Owner: owner, Version: version} }
	}
	return tea.Tick(d.duration, func(time.Time) tea.Msg {
		return DebounceMsg{Owner: owner, Version: version}
	})
}

// Ready reports whether msg is the live (latest) trigger for this
// debouncer. Stale messages from earlier keystrokes return false.
func (d *Debouncer) Ready(msg DebounceMsg) bool {
	return msg.Owner == d.owner && msg.Version == d.version
}

// Cancel invalidates any in-flight debounce message.
func (d *Debouncer) Cancel() {
	d.version++
}
