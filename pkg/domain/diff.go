package domain

import "slices"

// SnapshotDiff represents the changes between two snapshots.
// It is serialized to JSON for partial updates on remote presenter clients.
type SnapshotDiff struct {
	SessionID  string   `json:"session_id"`
	SlideIndex *int     `json:"slide_index,omitempty"`
	SlideID    *string  `json:"slide_id,omitempty"`
	Mode       *string  `json:"mode,omitempty"`
	Scenario   *string  `json:"scenario,omitempty"`
	Step       *int     `json:"step,omitempty"`
	Focused    *string  `json:"focused,omitempty"`
	Current    *string  `json:"current,omitempty"`
	GateOpen   *bool    `json:"gate_open,omitempty"`
	Active     []string `json:"active,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, the diff carries every field of newSnap.
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{SessionID: newSnap.SessionID}

	if oldSnap == nil || oldSnap.SlideIndex != newSnap.SlideIndex {
		diff.SlideIndex = &newSnap.SlideIndex
	}
	if oldSnap == nil || oldSnap.SlideID != newSnap.SlideID {
		diff.SlideID = &newSnap.SlideID
	}
	if oldSnap == nil || oldSnap.Mode != newSnap.Mode {
		diff.Mode = &newSnap.Mode
	}
	if oldSnap == nil || oldSnap.Scenario != newSnap.Scenario {
		diff.Scenario = &newSnap.Scenario
	}
	if oldSnap == nil || oldSnap.Step != newSnap.Step {
		diff.Step = &newSnap.Step
	}
	if oldSnap == nil || oldSnap.Focused != newSnap.Focused {
		diff.Focused = &newSnap.Focused
	}
	if oldSnap == nil || oldSnap.Current != newSnap.Current {
		diff.Current = &newSnap.Current
	}
	if oldSnap == nil || oldSnap.GateOpen != newSnap.GateOpen {
		diff.GateOpen = &newSnap.GateOpen
	}
	if oldSnap == nil || !slices.Equal(oldSnap.Active, newSnap.Active) {
		// Active is sent whole: it is small and rarely a pure append.
		diff.Active = newSnap.Active
		if diff.Active == nil {
			diff.Active = []string{}
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.SlideIndex == nil &&
		d.SlideID == nil &&
		d.Mode == nil &&
		d.Scenario == nil &&
		d.Step == nil &&
		d.Focused == nil &&
		d.Current == nil &&
		d.GateOpen == nil &&
		d.Active == nil
}
