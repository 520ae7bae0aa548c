package domain

import "time"

// Snapshot is the persisted position of a presenter session.
// Timers are never persisted: a restored session always resumes without auto-play.
type Snapshot struct {
	SessionID  string    `json:"session_id"`
	SlideIndex int       `json:"slide_index"`
	SlideID    string    `json:"slide_id"`
	Generation uint64    `json:"generation"`
	Mode       string    `json:"mode,omitempty"`
	Scenario   string    `json:"scenario,omitempty"`
	Step       int       `json:"step"`
	Focused    string    `json:"focused,omitempty"`
	GateOpen   bool      `json:"gate_open,omitempty"`
	Current    string    `json:"current,omitempty"`
	Active     []string  `json:"active,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSnapshot creates a snapshot positioned on the first slide with an idle walkthrough.
func NewSnapshot(sessionID string) *Snapshot {
	return &Snapshot{
		SessionID: sessionID,
		Step:      -1,
	}
}
