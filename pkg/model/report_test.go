package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_reportData_emptyResultRoundTrips(t *testing.T) {
	data := ReportData{
		Filter:       "confirmed",
		Appointments: []AppointmentRow{},
	}

	encoded, err := json.Marshal(data)

	assert.NoError(t, err)
	assert.Contains(t, string(encoded), `"appointments":[]`)

	var decoded ReportData
	assert.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.NotNil(t, decoded.Appointments)
	assert.Len(t, decoded.Appointments, 0)
	assert.Equal(t, 0, decoded.TotalAppointments)
}

func Test_flatTable_foldsTypeCasing(t *testing.T) {
	record := &ReportRecord{
		Type: "Patient",
		Data: ReportData{
			Patients: []PatientRow{{Name: "Ayesha Khan", Age: "34", Gender: "female", Phone: "N/A", Email: "N/A", Status: "Active", RegistrationDate: "N/A"}},
		},
	}

	headers, rows := record.FlatTable()

	assert.Equal(t, []string{"Name", "Age", "Gender", "Phone", "Email", "Status", "Registered"}, headers)
	assert.Len(t, rows, 1)

	// Records archived before the capitalized tag still resolve.
	record.Type = "patient"
	headers, _ = record.FlatTable()
	assert.NotEmpty(t, headers)
}
