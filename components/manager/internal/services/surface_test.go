package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_surfaceTracker_lifecycle(t *testing.T) {
	tracker := NewSurfaceTracker()

	assert.Equal(t, SurfaceIdle, tracker.State("patient-1"))

	tracker.Track("patient-1")
	assert.Equal(t, SurfaceRequested, tracker.State("patient-1"))

	tracker.Open("patient-1")
	assert.Equal(t, SurfaceOpen, tracker.State("patient-1"))

	tracker.Acknowledge("patient-1")
	assert.Equal(t, ReportAcknowledged, tracker.State("patient-1"))
}

func Test_surfaceTracker_newSessionDetachesDangling(t *testing.T) {
	tracker := NewSurfaceTracker()

	tracker.Track("patient-1")
	tracker.Open("patient-1")

	// Generating again before the ack arrives supersedes the live session.
	tracker.Track("patient-2")

	assert.Equal(t, SurfaceClosedWithoutAck, tracker.State("patient-1"))
	assert.Equal(t, SurfaceRequested, tracker.State("patient-2"))
}

func Test_surfaceTracker_acknowledgedSessionIsNotDetached(t *testing.T) {
	tracker := NewSurfaceTracker()

	tracker.Track("patient-1")
	tracker.Open("patient-1")
	tracker.Acknowledge("patient-1")

	tracker.Track("patient-2")

	assert.Equal(t, ReportAcknowledged, tracker.State("patient-1"))
}

func Test_surfaceTracker_abandon(t *testing.T) {
	tracker := NewSurfaceTracker()

	tracker.Track("patient-1")
	tracker.Abandon("patient-1")

	assert.Equal(t, SurfaceClosedWithoutAck, tracker.State("patient-1"))

	// The abandoned session is no longer live, so the next Track leaves it alone.
	tracker.Track("patient-2")
	assert.Equal(t, SurfaceClosedWithoutAck, tracker.State("patient-1"))
}

func Test_surfaceTracker_lateAckIsRecorded(t *testing.T) {
	tracker := NewSurfaceTracker()

	tracker.Track("patient-1")
	tracker.Open("patient-1")
	tracker.Track("patient-2")

	// The ack for the detached session still lands; the commit it carries is
	// idempotent so recording it is harmless.
	tracker.Acknowledge("patient-1")

	assert.Equal(t, ReportAcknowledged, tracker.State("patient-1"))
	assert.Equal(t, SurfaceRequested, tracker.State("patient-2"))
}

func Test_surfaceTracker_openRequiresRequested(t *testing.T) {
	tracker := NewSurfaceTracker()

	tracker.Open("patient-1")

	assert.Equal(t, SurfaceIdle, tracker.State("patient-1"))
}
