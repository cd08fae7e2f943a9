package placement

import (
	"github.com/anchorplan/anchorplan/pkg/geo"
	"github.com/anchorplan/anchorplan/pkg/tuning"
)

// Priority ranks candidates for arbitration. Higher priorities are
// arbitrated first and tolerate closer neighbors.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	}
	return "unknown"
}

// Candidate is a proposed anchor position emitted by a strategy. It is
// transient: created and consumed entirely within one placement run.
type Candidate struct {
	Pos geo.Point

	Priority Priority

	// Corner marks offset-ring corner candidates; the resulting anchors
	// are protected from density pruning.
	Corner bool

	// RoomIndex is the detected room the candidate belongs to.
	RoomIndex int
}

// conflictFactor returns the arbitration distance in units of the
// coverage radius for this candidate's priority.
func (c Candidate) conflictFactor(arb tuning.Arbitration) float64 {
	switch c.Priority {
	case PriorityCritical:
		return arb.CriticalFactor
	case PriorityHigh:
		return arb.HighFactor
	default:
		return arb.NormalFactor
	}
}
