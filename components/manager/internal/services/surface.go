package services

import (
	"sync"
)

// SurfaceState is the lifecycle of one rendering-surface session.
type SurfaceState string

const (
	// SurfaceIdle means no session exists for the report.
	SurfaceIdle SurfaceState = "idle"

	// SurfaceRequested means a render message is about to be published.
	SurfaceRequested SurfaceState = "surface_requested"

	// SurfaceOpen means the render message was published and the manager is
	// awaiting the acknowledgement. There is no timeout; the flow is user-paced.
	SurfaceOpen SurfaceState = "surface_open"

	// ReportAcknowledged is the terminal success state: the ack arrived and the
	// record was committed to the archive.
	ReportAcknowledged SurfaceState = "report_acknowledged"

	// SurfaceClosedWithoutAck is the terminal abandonment state: the surface
	// was closed or superseded before an ack arrived. Not an error; the
	// document was only a preview until committed.
	SurfaceClosedWithoutAck SurfaceState = "surface_closed_without_ack"
)

// SurfaceTracker tracks rendering-surface sessions per report id. The manager
// holds exactly one live session at a time: tracking a new session detaches a
// dangling previous one so repeated generations never leak listeners.
type SurfaceTracker struct {
	mu       sync.Mutex
	sessions map[string]SurfaceState
	liveID   string
}

// NewSurfaceTracker creates an empty tracker.
func NewSurfaceTracker() *SurfaceTracker {
	return &SurfaceTracker{
		sessions: make(map[string]SurfaceState),
	}
}

// Track begins a session for the report id in SurfaceRequested. Any previous
// session still awaiting its ack is marked SurfaceClosedWithoutAck.
func (t *SurfaceTracker) Track(reportID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.liveID != "" && t.liveID != reportID {
		if state := t.sessions[t.liveID]; state == SurfaceRequested || state == SurfaceOpen {
			t.sessions[t.liveID] = SurfaceClosedWithoutAck
		}
	}

	t.sessions[reportID] = SurfaceRequested
	t.liveID = reportID
}

// Open transitions the session to SurfaceOpen once the render message has been
// handed to the broker.
func (t *SurfaceTracker) Open(reportID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sessions[reportID] == SurfaceRequested {
		t.sessions[reportID] = SurfaceOpen
	}
}

// Acknowledge marks the terminal success state. Acks for sessions already
// detached are recorded anyway; the archive commit is idempotent so a late or
// duplicate ack is harmless.
func (t *SurfaceTracker) Acknowledge(reportID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sessions[reportID] = ReportAcknowledged

	if t.liveID == reportID {
		t.liveID = ""
	}
}

// Abandon marks the session closed without an ack, e.g. when publishing the
// render message failed.
func (t *SurfaceTracker) Abandon(reportID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sessions[reportID] = SurfaceClosedWithoutAck

	if t.liveID == reportID {
		t.liveID = ""
	}
}

// State reports the session state for the report id, SurfaceIdle when none
// exists.
func (t *SurfaceTracker) State(reportID string) SurfaceState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if state, ok := t.sessions[reportID]; ok {
		return state
	}

	return SurfaceIdle
}
