package encoder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func recordFixture() *model.ReportRecord {
	return &model.ReportRecord{
		ID:     "patient-1756564200000",
		Name:   "Patient Report - Active",
		Type:   "Patient",
		Format: "list-csv",
		Date:   "2025-08-30",
		Data: model.ReportData{
			Filter:        "active",
			TotalPatients: 2,
			Patients: []model.PatientRow{
				{Name: "Ayesha Khan", Age: "34", Gender: "female", Phone: "0300-1234567", Email: "N/A", Status: "Active", RegistrationDate: "2024-03-01"},
				{Name: "Bilal Ahmed", Age: "41", Gender: "male", Phone: "N/A", Email: "N/A", Status: "Active", RegistrationDate: "N/A"},
			},
		},
	}
}

func Test_delimited(t *testing.T) {
	out, err := Delimited(recordFixture())

	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Name,Age,Gender,Phone,Email,Status,Registered", lines[0])
	assert.Contains(t, lines[1], "Ayesha Khan")
}

func Test_delimited_emptyProjectionIsHeaderOnly(t *testing.T) {
	record := &model.ReportRecord{Type: "Patient", Format: "list-csv", Data: model.ReportData{Filter: "archived"}}

	out, err := Delimited(record)

	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Len(t, lines, 1)
	assert.Equal(t, "Name,Age,Gender,Phone,Email,Status,Registered", lines[0])
}

func Test_spreadsheet(t *testing.T) {
	record := recordFixture()
	record.Format = "list-excel"

	out, err := Spreadsheet(record)

	assert.NoError(t, err)
	assert.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	assert.NoError(t, err)

	defer f.Close()

	rows, err := f.GetRows("Report")
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Ayesha Khan", rows[1][0])
}

func Test_spreadsheet_emptyProjectionIsHeaderOnly(t *testing.T) {
	record := &model.ReportRecord{Type: "Staff", Format: "list-excel", Data: model.ReportData{Filter: "archived"}}

	out, err := Spreadsheet(record)

	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	assert.NoError(t, err)

	defer f.Close()

	rows, err := f.GetRows("Report")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func Test_artifactNaming(t *testing.T) {
	record := recordFixture()

	assert.Equal(t, "Patient_Report_-_Active_2025-08-30.csv", ArtifactName(record))

	record.Format = "details-pdf"
	assert.Equal(t, "Patient_Report_-_Active_2025-08-30.pdf", ArtifactName(record))

	record.Format = "list-excel"
	assert.Equal(t, "Patient_Report_-_Active_2025-08-30.xlsx", ArtifactName(record))
}

func Test_contentTypes(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("pdf"))
	assert.Equal(t, "text/csv", ContentType("csv"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ContentType("excel"))
	assert.Equal(t, "application/octet-stream", ContentType("unknown"))
}
