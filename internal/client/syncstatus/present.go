package syncstatus

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Severity classifies a status for coloring.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityBusy
	SeverityMuted
	SeverityError
)

// Color returns the color name the status panel uses for the severity.
func (s Severity) Color() string {
	switch s {
	case SeverityOK:
		return "green"
	case SeverityBusy:
		return "blue"
	case SeverityMuted:
		return "gray"
	case SeverityError:
		return "red"
	default:
		return "gray"
	}
}

// ANSI returns the terminal escape sequence for the severity color.
func (s Severity) ANSI() string {
	switch s {
	case SeverityOK:
		return "\x1b[32m"
	case SeverityBusy:
		return "\x1b[34m"
	case SeverityError:
		return "\x1b[31m"
	default:
		return "\x1b[90m"
	}
}

// Label is the short human label of a status.
func Label(s Status) string {
	switch s {
	case StatusIdle:
		return "Synced"
	case StatusSyncing:
		return "Syncing…"
	case StatusError:
		return "Error"
	case StatusOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// SeverityOf maps a status to its severity.
func SeverityOf(s Status) Severity {
	switch s {
	case StatusIdle:
		return SeverityOK
	case StatusSyncing:
		return SeverityBusy
	case StatusError:
		return SeverityError
	default:
		return SeverityMuted
	}
}

// Summary renders a one-line status, for example
//
//	Syncing… · 2 pending · ↑3 ↓0 · last sync 5 minutes ago
func Summary(s Snapshot, now time.Time) string {
	parts := []string{Label(s.Status)}

	if s.Status == StatusSyncing || s.Pending > 0 {
		parts = append(parts, fmt.Sprintf("%d pending", s.Pending))
	}
	if s.Uploaded > 0 || s.Downloaded > 0 || s.Status == StatusSyncing {
		parts = append(parts, fmt.Sprintf("↑%d ↓%d", s.Uploaded, s.Downloaded))
	}
	if s.HasSynced() {
		parts = append(parts, "last sync "+humanize.RelTime(s.LastSync, now, "ago", "from now"))
	} else {
		parts = append(parts, "never synced")
	}
	if s.Status == StatusError && s.Message != "" {
		parts = append(parts, s.Message)
	}

	return strings.Join(parts, " · ")
}
