package state

import (
	"context"
	"time"

	"github.com/looplab/fsm"
)

// PayloadStatus describes the lifecycle of a background command.
type PayloadStatus string

const (
	PayloadIdle      PayloadStatus = "idle"
	PayloadRunning   PayloadStatus = "running"
	PayloadSuccess   PayloadStatus = "success"
	PayloadFailed    PayloadStatus = "failed"
	PayloadTimeout   PayloadStatus = "timeout"
	PayloadCancelled PayloadStatus = "cancelled"
)

// Terminal reports whether the status ends a payload run.
func (s PayloadStatus) Terminal() bool {
	switch s {
	case PayloadSuccess, PayloadFailed, PayloadTimeout, PayloadCancelled:
		return true
	}
	return false
}

// PayloadInfo describes the payload currently in flight. It exists only
// while a payload is running and is replaced wholesale on each start.
type PayloadInfo struct {
	Name    string
	Command string
	Start   time.Time
	PID     int
}

// Elapsed returns the wall-clock time since the payload started.
func (p PayloadInfo) Elapsed() time.Duration {
	return time.Since(p.Start)
}

const (
	eventStart   = "start"
	eventSucceed = "succeed"
	eventFail    = "fail"
	eventExpire  = "expire"
	eventAbort   = "abort"
)

var terminalEvents = map[PayloadStatus]string{
	PayloadSuccess:   eventSucceed,
	PayloadFailed:    eventFail,
	PayloadTimeout:   eventExpire,
	PayloadCancelled: eventAbort,
}

// newPayloadFSM builds the transition machine for payload status. A new
// run may start from idle or from any terminal state; terminal statuses
// are reachable only from running. Invalid transitions are rejected by
// the machine, which doubles as the defensive guard against misuse of
// the state layer (the single-flight guarantee itself lives in the
// runner).
func newPayloadFSM() *fsm.FSM {
	restartable := []string{
		string(PayloadIdle),
		string(PayloadSuccess),
		string(PayloadFailed),
		string(PayloadTimeout),
		string(PayloadCancelled),
	}
	running := []string{string(PayloadRunning)}
	return fsm.NewFSM(
		string(PayloadIdle),
		fsm.Events{
			{Name: eventStart, Src: restartable, Dst: string(PayloadRunning)},
			{Name: eventSucceed, Src: running, Dst: string(PayloadSuccess)},
			{Name: eventFail, Src: running, Dst: string(PayloadFailed)},
			{Name: eventExpire, Src: running, Dst: string(PayloadTimeout)},
			{Name: eventAbort, Src: running, Dst: string(PayloadCancelled)},
		},
		fsm.Callbacks{},
	)
}

func fireEvent(m *fsm.FSM, event string) bool {
	return m.Event(context.Background(), event) == nil
}
