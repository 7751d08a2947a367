package services

import (
	"testing"

	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/stretchr/testify/assert"
)

func Test_matchRelation_ruleOrder(t *testing.T) {
	appointments := []model.Appointment{
		{ID: "a1", PatientID: "p1", PatientName: "Someone Else"},
		{ID: "a2", PatientID: "", PatientName: "Ayesha Khan"},
		{ID: "a3", PatientID: "", PatientName: "ayesha khan"},
	}

	tests := []struct {
		name        string
		primaryID   string
		primaryName string
		expected    []string
	}{
		{
			// The id rule matches, so the name rules are never consulted even
			// though they would match other records.
			name:        "shared id wins over name equality",
			primaryID:   "p1",
			primaryName: "Ayesha Khan",
			expected:    []string{"a1"},
		},
		{
			name:        "exact name used when no id matches",
			primaryID:   "p9",
			primaryName: "Ayesha Khan",
			expected:    []string{"a2"},
		},
		{
			name:        "case insensitive name is the last resort",
			primaryID:   "p9",
			primaryName: "AYESHA KHAN",
			expected:    []string{"a3"},
		},
		{
			name:        "no rule matches yields empty not nil",
			primaryID:   "p9",
			primaryName: "Nadia Hussain",
			expected:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := matchRelation(appointments, tt.primaryID, tt.primaryName, appointmentPatientKeys)

			assert.NotNil(t, matched)
			assert.Len(t, matched, len(tt.expected))

			for i, id := range tt.expected {
				assert.Equal(t, id, matched[i].ID)
			}
		})
	}
}

func Test_matchRelation_emptyForeignKeysNeverMatch(t *testing.T) {
	// Records with neither an id nor a name must not attach to a primary whose
	// own keys are also empty.
	appointments := []model.Appointment{
		{ID: "a1", PatientID: "", PatientName: ""},
	}

	matched := matchRelation(appointments, "", "", appointmentPatientKeys)

	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}

func Test_resolveAppointmentRelations(t *testing.T) {
	data := &model.ClinicData{
		Patients: []model.Patient{
			{ID: "p1", Name: "Ayesha Khan"},
			{ID: "p2", Name: "Bilal Ahmed"},
		},
		Invoices: []model.Invoice{
			{ID: "i1", PatientID: "p1", PatientName: "Ayesha Khan"},
			{ID: "i2", PatientID: "p2", PatientName: "Bilal Ahmed"},
		},
	}

	appointment := model.Appointment{ID: "a1", PatientID: "p1", PatientName: "Ayesha Khan"}

	patient, invoices := resolveAppointmentRelations(appointment, data)

	assert.NotNil(t, patient)
	assert.Equal(t, "p1", patient.ID)
	assert.Len(t, invoices, 1)
	assert.Equal(t, "i1", invoices[0].ID)
}

func Test_resolveInvoiceRelations(t *testing.T) {
	data := &model.ClinicData{
		Appointments: []model.Appointment{
			{ID: "a1", PatientName: "Ayesha Khan"},
			{ID: "a2", PatientName: "Ayesha Khan"},
			{ID: "a3", PatientName: "Bilal Ahmed"},
		},
	}

	t.Run("appointment id attaches the single appointment", func(t *testing.T) {
		invoice := model.Invoice{ID: "i1", AppointmentID: "a2", PatientName: "Ayesha Khan"}

		appointments := resolveInvoiceRelations(invoice, data)

		assert.Len(t, appointments, 1)
		assert.Equal(t, "a2", appointments[0].ID)
	})

	t.Run("patient identity attaches all their appointments", func(t *testing.T) {
		invoice := model.Invoice{ID: "i2", PatientName: "Ayesha Khan"}

		appointments := resolveInvoiceRelations(invoice, data)

		assert.Len(t, appointments, 2)
	})
}

func Test_resolveInventoryRelations(t *testing.T) {
	data := &model.ClinicData{
		Appointments: []model.Appointment{
			{ID: "a1", Treatment: "Root Canal"},
			{ID: "a2", Treatment: "root canal"},
			{ID: "a3", Treatment: "Cleaning"},
		},
		Invoices: []model.Invoice{
			{ID: "i1", Treatments: []model.TreatmentLine{{Name: "Root Canal", Quantity: 1}}},
			{ID: "i2", Treatments: []model.TreatmentLine{{Name: "Cleaning", Quantity: 1}}},
		},
	}

	item := model.InventoryItem{ID: "inv1", Name: "Root Canal"}

	appointments, invoices := resolveInventoryRelations(item, data)

	assert.Len(t, appointments, 2)
	assert.Len(t, invoices, 1)
	assert.Equal(t, "i1", invoices[0].ID)
}

func Test_resolveFeedbackRelations(t *testing.T) {
	data := &model.ClinicData{
		Patients: []model.Patient{
			{ID: "p1", Name: "Ayesha Khan"},
		},
	}

	t.Run("patient resolved by name", func(t *testing.T) {
		feedback := model.Feedback{ID: "f1", PatientName: "Ayesha Khan"}

		patient := resolveFeedbackRelations(feedback, data)

		assert.NotNil(t, patient)
		assert.Equal(t, "p1", patient.ID)
	})

	t.Run("unknown patient resolves to nil", func(t *testing.T) {
		feedback := model.Feedback{ID: "f2", PatientName: "Unknown Person"}

		assert.Nil(t, resolveFeedbackRelations(feedback, data))
	})
}
