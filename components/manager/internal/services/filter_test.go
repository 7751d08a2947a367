package services

import (
	"testing"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/stretchr/testify/assert"
)

func Test_appointmentStatusMatches(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		filter  string
		matches bool
	}{
		{name: "scheduled matches scheduled", status: "scheduled", filter: "scheduled", matches: true},
		{name: "legacy pending matches scheduled", status: "pending", filter: "scheduled", matches: true},
		{name: "legacy upcoming matches scheduled", status: "upcoming", filter: "scheduled", matches: true},
		{name: "legacy new matches scheduled", status: "new", filter: "scheduled", matches: true},
		{name: "legacy booked matches scheduled", status: "booked", filter: "scheduled", matches: true},
		{name: "legacy spelling is case insensitive", status: "Booked", filter: "Scheduled", matches: true},
		{name: "confirmed does not match scheduled", status: "confirmed", filter: "scheduled", matches: false},
		{name: "completed does not match scheduled", status: "completed", filter: "scheduled", matches: false},
		{name: "cancelled does not match scheduled", status: "cancelled", filter: "scheduled", matches: false},
		{name: "non-scheduled filter is plain equality", status: "completed", filter: "completed", matches: true},
		{name: "non-scheduled filter ignores case", status: "Completed", filter: "completed", matches: true},
		{name: "pending filter does not widen", status: "upcoming", filter: "pending", matches: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, appointmentStatusMatches(tt.status, tt.filter))
		})
	}
}

func Test_filterAll_isIdentity(t *testing.T) {
	patients := []model.Patient{
		{ID: "p1", Name: "Ayesha Khan", Status: "active"},
		{ID: "p2", Name: "Bilal Ahmed", Status: "inactive"},
		{ID: "p3", Name: "Sana Malik", Status: "active"},
	}

	appointments := []model.Appointment{
		{ID: "a1", Status: "pending"},
		{ID: "a2", Status: "completed"},
	}

	filteredPatients := filterPatients(patients, constant.StatusFilterAll)
	filteredAppointments := filterAppointments(appointments, constant.StatusFilterAll)

	// "all" preserves both length and order of the primary collection.
	assert.Len(t, filteredPatients, len(patients))
	assert.Equal(t, patients, filteredPatients)
	assert.Len(t, filteredAppointments, len(appointments))
	assert.Equal(t, appointments, filteredAppointments)
}

func Test_filterPatients(t *testing.T) {
	patients := []model.Patient{
		{ID: "p1", Name: "Ayesha Khan", Status: "active"},
		{ID: "p2", Name: "Bilal Ahmed", Status: "Inactive"},
		{ID: "p3", Name: "Sana Malik", Status: "ACTIVE"},
	}

	tests := []struct {
		name     string
		filter   string
		expected []string
	}{
		{name: "status equality is case insensitive", filter: "active", expected: []string{"p1", "p3"}},
		{name: "inactive matches stored capitalization", filter: "inactive", expected: []string{"p2"}},
		{name: "no match yields empty not nil", filter: "archived", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := filterPatients(patients, tt.filter)

			assert.NotNil(t, filtered)
			assert.Len(t, filtered, len(tt.expected))

			for i, id := range tt.expected {
				assert.Equal(t, id, filtered[i].ID)
			}
		})
	}
}

func Test_filterAppointments_scheduledWidening(t *testing.T) {
	appointments := []model.Appointment{
		{ID: "a1", Status: "scheduled"},
		{ID: "a2", Status: "pending"},
		{ID: "a3", Status: "upcoming"},
		{ID: "a4", Status: "new"},
		{ID: "a5", Status: "booked"},
		{ID: "a6", Status: "confirmed"},
		{ID: "a7", Status: "completed"},
		{ID: "a8", Status: "cancelled"},
	}

	filtered := filterAppointments(appointments, "scheduled")

	assert.Len(t, filtered, 5)

	for _, a := range filtered {
		assert.NotContains(t, []string{"confirmed", "completed", "cancelled"}, a.Status)
	}
}
