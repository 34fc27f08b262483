// Package audit provides audit logging for configuration batches.
package audit

import (
	"fmt"
	"time"
)

// Event records one batch preview or commit attempt against a device.
type Event struct {
	ID           string        `json:"id"`
	Timestamp    time.Time     `json:"timestamp"`
	User         string        `json:"user"`
	Device       string        `json:"device"`
	Family       string        `json:"family,omitempty"`
	Operation    string        `json:"operation"`
	Instructions []string      `json:"instructions,omitempty"` // CLI-line rendering of the batch
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
	ExecuteMode  bool          `json:"execute_mode"` // true if -x was used
	DryRun       bool          `json:"dry_run"`
	Duration     time.Duration `json:"duration"`
}

// Filter defines criteria for querying audit events
type Filter struct {
	Device      string
	User        string
	Operation   string
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates a new audit event
func NewEvent(user, device, operation string) *Event {
	return &Event{
		ID:        generateID(),
		Timestamp: time.Now(),
		User:      user,
		Device:    device,
		Operation: operation,
	}
}

// WithFamily sets the feature family
func (e *Event) WithFamily(family string) *Event {
	e.Family = family
	return e
}

// WithInstructions attaches the batch's rendered instruction lines
func (e *Event) WithInstructions(lines []string) *Event {
	e.Instructions = lines
	return e
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets the operation duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

// WithExecuteMode marks if execute mode was used
func (e *Event) WithExecuteMode(execute bool) *Event {
	e.ExecuteMode = execute
	e.DryRun = !execute
	return e
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
