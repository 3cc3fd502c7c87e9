// Package syncstatus tracks coarse synchronization progress for display.
//
// The sync worker is the only writer: it feeds Start, ItemCompleted, Complete
// and Fail events into an Aggregate. Presentation code reads Snapshot values
// and formats them with Label, SeverityOf and Summary; it never mutates the
// aggregate.
package syncstatus

import (
	"errors"
	"time"
)

// Status is the sync phase.
type Status int

const (
	StatusIdle Status = iota
	StatusSyncing
	StatusError
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSyncing:
		return "syncing"
	case StatusError:
		return "error"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Direction tells which counter a completed item moves.
type Direction int

const (
	DirectionUpload Direction = iota + 1
	DirectionDownload
)

func (d Direction) String() string {
	switch d {
	case DirectionUpload:
		return "upload"
	case DirectionDownload:
		return "download"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidTransition = errors.New("invalid sync status transition")
	ErrUnknownDirection  = errors.New("unknown sync direction")
)

// Snapshot is a point-in-time copy of the aggregate.
type Snapshot struct {
	Status Status
	// LastSync is the completion time of the last successful cycle; zero if
	// there was none.
	LastSync   time.Time
	Pending    int
	Uploaded   int
	Downloaded int
	// Message is the failure description while Status is StatusError.
	Message string
}

// HasSynced reports whether a cycle ever completed.
func (s Snapshot) HasSynced() bool {
	return !s.LastSync.IsZero()
}
