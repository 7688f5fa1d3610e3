package state

import "time"

// AlertLevel classifies operator-visible events.
type AlertLevel string

const (
	LevelInfo     AlertLevel = "info"
	LevelOK       AlertLevel = "ok"
	LevelWarning  AlertLevel = "warning"
	LevelError    AlertLevel = "error"
	LevelCritical AlertLevel = "critical"
)

// Alert is a single immutable entry in the alert history.
type Alert struct {
	Time    time.Time
	Message string
	Level   AlertLevel
}

// Clock formats the alert timestamp for display.
func (a Alert) Clock() string {
	return a.Time.Format("15:04:05")
}
