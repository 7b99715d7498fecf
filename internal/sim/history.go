package sim

// HistoryCapacity bounds the line-chart time series. Oldest snapshots
// are evicted first once the buffer is full.
const HistoryCapacity = 50

// SeriesPoint is one agent's affordability at one step.
type SeriesPoint struct {
	Agent      string  `json:"agent"`
	Affordable float64 `json:"affordable"`
}

// Snapshot is the per-step history record: one point per agent, in
// creation order, labeled with the step the values belong to.
type Snapshot struct {
	StepIndex int           `json:"step_index"`
	Points    []SeriesPoint `json:"points"`
}

// History is a bounded FIFO of per-step snapshots. No compaction or
// aggregation: push appends, overflow drops the oldest entry.
type History struct {
	capacity int
	snaps    []Snapshot
}

// NewHistory creates an empty buffer holding at most capacity snapshots.
func NewHistory(capacity int) *History {
	return &History{capacity: capacity}
}

// Push appends a snapshot, evicting the oldest entry on overflow.
func (h *History) Push(snap Snapshot) {
	h.snaps = append(h.snaps, snap)
	if len(h.snaps) > h.capacity {
		h.snaps = h.snaps[len(h.snaps)-h.capacity:]
	}
}

// Clear empties the buffer.
func (h *History) Clear() {
	h.snaps = nil
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.snaps)
}

// Snapshots returns a copy of the retained snapshots, oldest first.
func (h *History) Snapshots() []Snapshot {
	out := make([]Snapshot, len(h.snaps))
	copy(out, h.snaps)
	return out
}

// snapshot captures the state entering the current step, labeled with
// the pre-advance step index so the series always begins with the
// initial condition.
func (s *Sim) snapshot() Snapshot {
	points := make([]SeriesPoint, len(s.Agents))
	for i, a := range s.Agents {
		points[i] = SeriesPoint{Agent: a.Name, Affordable: a.BreadAffordable}
	}
	return Snapshot{StepIndex: s.StepIndex, Points: points}
}
