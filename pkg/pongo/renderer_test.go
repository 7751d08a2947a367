package pongo

import (
	"context"
	"testing"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/LerianStudio/lib-commons/v2/commons/log"
	"github.com/stretchr/testify/assert"
)

func recordFixture() *model.ReportRecord {
	return &model.ReportRecord{
		ID:     "patient-1756564200000",
		Name:   "Patient Report - Active",
		Type:   "Patient",
		Format: "list-pdf",
		Date:   "2025-08-30",
		Data: model.ReportData{
			Filter:        "active",
			TotalPatients: 1,
			StatusCounts:  map[string]int{"active": 1},
			Patients: []model.PatientRow{
				{Name: "Ayesha Khan", Age: "34", Gender: "female", Phone: "0300-1234567", Email: "N/A", Status: "Active", RegistrationDate: "2024-03-01"},
			},
			DetailedPatients: []model.DetailedPatient{
				{
					Patient: model.Patient{ID: "p1", Name: "Ayesha Khan", Age: 34, Status: "active"},
					Appointments: []model.Appointment{
						{ID: "a1", PatientName: "Ayesha Khan", Treatment: "Root Canal", Status: "Scheduled"},
					},
					Invoices: []model.Invoice{},
				},
			},
		},
	}
}

func Test_renderRecord_listMode(t *testing.T) {
	renderer := NewTemplateRenderer()

	html, err := renderer.RenderRecord(context.Background(), recordFixture(), constant.DisplayModeList, &log.NoneLogger{})

	assert.NoError(t, err)
	assert.Contains(t, html, "Patient Report - Active")
	assert.Contains(t, html, "Ayesha Khan")
	assert.Contains(t, html, "Registered")
	assert.Contains(t, html, "2025-08-30")
}

func Test_renderRecord_detailsMode(t *testing.T) {
	renderer := NewTemplateRenderer()

	html, err := renderer.RenderRecord(context.Background(), recordFixture(), constant.DisplayModeDetails, &log.NoneLogger{})

	assert.NoError(t, err)
	assert.Contains(t, html, "Patient Report - Active")
	assert.Contains(t, html, "Ayesha Khan")
}

func Test_renderRecord_emptyProjection(t *testing.T) {
	renderer := NewTemplateRenderer()

	record := &model.ReportRecord{
		Name:   "Staff Report - Archived",
		Type:   "Staff",
		Format: "list-pdf",
		Date:   "2025-08-30",
		Data:   model.ReportData{Filter: "archived"},
	}

	html, err := renderer.RenderRecord(context.Background(), record, constant.DisplayModeList, &log.NoneLogger{})

	assert.NoError(t, err)
	assert.Contains(t, html, "No records found")
}
