package game

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// RoundLogEntry is one line of the round log
type RoundLogEntry struct {
	Type      EventType
	Text      string
	Timestamp time.Time
}

// RoundLog records the events of a single round in memory and renders them as
// a plain text history
type RoundLog struct {
	mu      sync.Mutex
	started time.Time
	entries []RoundLogEntry
	ended   bool
}

// NewRoundLog creates an empty round log
func NewRoundLog() *RoundLog {
	return &RoundLog{entries: make([]RoundLogEntry, 0, 8)}
}

// OnEvent implements EventSubscriber
func (l *RoundLog) OnEvent(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch e := event.(type) {
	case RoundStartEvent:
		l.started = e.Timestamp()
		l.add(e, fmt.Sprintf("Round %s: %s (seed %d)", e.RoundID, strings.Join(e.Players, " vs "), e.Seed))
	case CardDealtEvent:
		l.add(e, fmt.Sprintf("Dealt to %s: %s", e.PlayerName, e.Card))
	case DecisionEvent:
		l.add(e, fmt.Sprintf("%s: %s", e.PlayerName, e.Decision))
	case RoundEndEvent:
		l.ended = true
		l.add(e, fmt.Sprintf("Round over: %s after %d ticks", e.Outcome, e.Ticks))
	}
}

func (l *RoundLog) add(event GameEvent, text string) {
	l.entries = append(l.entries, RoundLogEntry{
		Type:      event.EventType(),
		Text:      text,
		Timestamp: event.Timestamp(),
	})
}

// Entries returns a copy of the recorded entries
func (l *RoundLog) Entries() []RoundLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]RoundLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Summary renders the log with offsets relative to the round start
func (l *RoundLog) Summary() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	b.WriteString("*** ROUND HISTORY ***\n")
	for _, e := range l.entries {
		offset := e.Timestamp.Sub(l.started).Round(time.Millisecond)
		fmt.Fprintf(&b, "[+%s] %s\n", offset, e.Text)
	}
	if !l.ended {
		b.WriteString("(round in progress)\n")
	}
	return b.String()
}
