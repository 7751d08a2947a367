package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/shopspring/decimal"
)

// The report data builder assembles the canonical ReportRecord payload from a
// filtered primary collection and its resolved relations. Sub-status counts
// and monetary aggregates are computed once here so every renderer and encoder
// displays the same totals. The returned record carries no Timestamp; that is
// stamped by the archive commit.

var reportTitles = map[string]string{
	constant.ReportTypePatient:     "Patient Report",
	constant.ReportTypeAppointment: "Appointment Report",
	constant.ReportTypeFinancial:   "Financial Report",
	constant.ReportTypeStaff:       "Staff Report",
	constant.ReportTypeInventory:   "Inventory Report",
	constant.ReportTypeFeedback:    "Feedback Report",
}

// buildReport produces an unarchived ReportRecord for the request from one
// clinic snapshot.
func buildReport(input *model.CreateReportInput, data *model.ClinicData, now time.Time) *model.ReportRecord {
	record := &model.ReportRecord{
		ID:     fmt.Sprintf("%s-%d", input.ReportType, now.UnixMilli()),
		Name:   reportTitles[input.ReportType] + " - " + titleCase(input.StatusFilter),
		Type:   titleCase(input.ReportType),
		Format: input.DisplayMode + "-" + input.OutputFormat,
		Date:   now.Format(constant.DateOnlyLayout),
	}

	reportData := model.ReportData{
		Filter: input.StatusFilter,
	}

	switch input.ReportType {
	case constant.ReportTypePatient:
		buildPatientData(&reportData, filterPatients(data.Patients, input.StatusFilter), data)
	case constant.ReportTypeAppointment:
		buildAppointmentData(&reportData, filterAppointments(data.Appointments, input.StatusFilter), data)
	case constant.ReportTypeFinancial:
		buildFinancialData(&reportData, filterInvoices(data.Invoices, input.StatusFilter), data)
	case constant.ReportTypeStaff:
		buildStaffData(&reportData, filterStaff(data.Staff, input.StatusFilter), data)
	case constant.ReportTypeInventory:
		buildInventoryData(&reportData, filterInventory(data.Inventory, input.StatusFilter), data)
	case constant.ReportTypeFeedback:
		buildFeedbackData(&reportData, filterFeedback(data.Feedback, input.StatusFilter), data)
	}

	record.Data = reportData
	record.Size = payloadSize(reportData)

	return record
}

func buildPatientData(out *model.ReportData, patients []model.Patient, data *model.ClinicData) {
	out.TotalPatients = len(patients)
	out.Patients = make([]model.PatientRow, 0, len(patients))
	out.DetailedPatients = make([]model.DetailedPatient, 0, len(patients))
	out.StatusCounts = make(map[string]int)

	for _, p := range patients {
		out.StatusCounts[strings.ToLower(p.Status)]++

		out.Patients = append(out.Patients, model.PatientRow{
			Name:             orNA(p.Name),
			Age:              intOrNA(p.Age),
			Gender:           orNA(p.Gender),
			Phone:            orNA(p.Phone),
			Email:            orNA(p.Email),
			Status:           displayStatus(p.Status),
			RegistrationDate: orNA(p.RegistrationDate),
		})

		appointments, invoices := resolvePatientRelations(p, data)

		out.DetailedPatients = append(out.DetailedPatients, model.DetailedPatient{
			Patient:      p,
			Appointments: displayAppointments(appointments),
			Invoices:     invoices,
			Billing:      billingSummary(invoices),
		})
	}
}

func buildAppointmentData(out *model.ReportData, appointments []model.Appointment, data *model.ClinicData) {
	out.TotalAppointments = len(appointments)
	out.Appointments = make([]model.AppointmentRow, 0, len(appointments))
	out.DetailedAppointments = make([]model.DetailedAppointment, 0, len(appointments))
	out.StatusCounts = make(map[string]int)

	for _, a := range appointments {
		out.StatusCounts[normalizeAppointmentStatus(a.Status)]++

		out.Appointments = append(out.Appointments, model.AppointmentRow{
			PatientName: orNA(a.PatientName),
			StaffName:   orNA(a.StaffName),
			Date:        orNA(a.Date),
			Time:        orNA(a.Time),
			Treatment:   orNA(a.Treatment),
			Status:      displayAppointmentStatus(a.Status),
		})

		patient, invoices := resolveAppointmentRelations(a, data)

		out.DetailedAppointments = append(out.DetailedAppointments, model.DetailedAppointment{
			Appointment: displayAppointment(a),
			Patient:     patient,
			Invoices:    invoices,
		})
	}
}

func buildFinancialData(out *model.ReportData, invoices []model.Invoice, data *model.ClinicData) {
	out.TotalInvoices = len(invoices)
	out.Invoices = make([]model.InvoiceRow, 0, len(invoices))
	out.DetailedInvoices = make([]model.DetailedInvoice, 0, len(invoices))
	out.StatusCounts = make(map[string]int)

	summary := billingSummary(invoices)
	out.Billing = &summary

	for _, i := range invoices {
		out.StatusCounts[strings.ToLower(i.Status)]++

		out.Invoices = append(out.Invoices, model.InvoiceRow{
			InvoiceID:   orNA(i.ID),
			PatientName: orNA(i.PatientName),
			Date:        orNA(i.Date),
			Total:       i.Total.StringFixed(2),
			Status:      displayStatus(i.Status),
		})

		out.DetailedInvoices = append(out.DetailedInvoices, model.DetailedInvoice{
			Invoice:      i,
			Appointments: displayAppointments(resolveInvoiceRelations(i, data)),
		})
	}
}

func buildStaffData(out *model.ReportData, staff []model.Staff, data *model.ClinicData) {
	out.TotalStaff = len(staff)
	out.Staff = make([]model.StaffRow, 0, len(staff))
	out.DetailedStaff = make([]model.DetailedStaff, 0, len(staff))
	out.StatusCounts = make(map[string]int)

	for _, s := range staff {
		out.StatusCounts[strings.ToLower(s.Status)]++

		specialties := model.NotAvailable
		if len(s.Specialties) > 0 {
			specialties = strings.Join(s.Specialties, ", ")
		}

		out.Staff = append(out.Staff, model.StaffRow{
			Name:        orNA(s.Name),
			Role:        orNA(s.Role),
			Specialties: specialties,
			Phone:       orNA(s.Phone),
			Email:       orNA(s.Email),
			Status:      displayStatus(s.Status),
			JoinDate:    orNA(s.JoinDate),
		})

		appointments, invoices := resolveStaffRelations(s, data)

		out.DetailedStaff = append(out.DetailedStaff, model.DetailedStaff{
			Staff:        s,
			Appointments: displayAppointments(appointments),
			Invoices:     invoices,
		})
	}
}

func buildInventoryData(out *model.ReportData, items []model.InventoryItem, data *model.ClinicData) {
	out.TotalInventory = len(items)
	out.Inventory = make([]model.InventoryRow, 0, len(items))
	out.DetailedInventory = make([]model.DetailedInventoryItem, 0, len(items))
	out.StatusCounts = make(map[string]int)

	for _, item := range items {
		out.StatusCounts[strings.ToLower(item.Status)]++

		if item.Quantity <= constant.LowStockThreshold {
			out.LowStockCount++
		}

		out.Inventory = append(out.Inventory, model.InventoryRow{
			Name:      orNA(item.Name),
			Category:  orNA(item.Category),
			Quantity:  strconv.Itoa(item.Quantity),
			Unit:      orNA(item.Unit),
			UnitPrice: item.UnitPrice.StringFixed(2),
			Status:    displayStatus(item.Status),
			Supplier:  orNA(item.Supplier),
		})

		appointments, invoices := resolveInventoryRelations(item, data)

		out.DetailedInventory = append(out.DetailedInventory, model.DetailedInventoryItem{
			Item:         item,
			Appointments: displayAppointments(appointments),
			Invoices:     invoices,
		})
	}
}

func buildFeedbackData(out *model.ReportData, feedback []model.Feedback, data *model.ClinicData) {
	out.TotalFeedback = len(feedback)
	out.Feedback = make([]model.FeedbackRow, 0, len(feedback))
	out.DetailedFeedback = make([]model.DetailedFeedback, 0, len(feedback))
	out.StatusCounts = make(map[string]int)

	ratingSum := 0

	for _, f := range feedback {
		out.StatusCounts[strings.ToLower(f.Status)]++
		ratingSum += f.Rating

		out.Feedback = append(out.Feedback, model.FeedbackRow{
			PatientName: orNA(f.PatientName),
			Rating:      intOrNA(f.Rating),
			Comment:     orNA(f.Comment),
			Date:        orNA(f.Date),
			Status:      displayStatus(f.Status),
		})

		out.DetailedFeedback = append(out.DetailedFeedback, model.DetailedFeedback{
			Feedback: f,
			Patient:  resolveFeedbackRelations(f, data),
		})
	}

	if len(feedback) > 0 {
		out.AverageRating = decimal.NewFromInt(int64(ratingSum)).
			Div(decimal.NewFromInt(int64(len(feedback)))).
			StringFixed(1)
	}
}

// billingSummary aggregates a set of invoices into total invoiced, paid and
// pending amounts.
func billingSummary(invoices []model.Invoice) model.BillingSummary {
	summary := model.BillingSummary{
		TotalInvoiced: decimal.Zero,
		Paid:          decimal.Zero,
		Pending:       decimal.Zero,
	}

	for _, i := range invoices {
		summary.TotalInvoiced = summary.TotalInvoiced.Add(i.Total)

		switch strings.ToLower(i.Status) {
		case "paid":
			summary.Paid = summary.Paid.Add(i.Total)
		case "pending", "unpaid", "overdue":
			summary.Pending = summary.Pending.Add(i.Total)
		}
	}

	return summary
}

// normalizeAppointmentStatus folds the legacy scheduled spellings into the
// current vocabulary for counting.
func normalizeAppointmentStatus(status string) string {
	for _, legacy := range constant.ScheduledLegacyStatuses {
		if strings.EqualFold(status, legacy) {
			return "scheduled"
		}
	}

	return strings.ToLower(status)
}

// displayAppointmentStatus is the display rendering of an appointment status.
// Legacy spellings display as "Scheduled" everywhere a status is shown, flat
// projections and detailed bundles alike.
func displayAppointmentStatus(status string) string {
	if status == "" {
		return model.NotAvailable
	}

	return titleCase(normalizeAppointmentStatus(status))
}

// displayAppointment copies an appointment with its status rendered in the
// display vocabulary, so the detailed bundles never leak a legacy spelling.
func displayAppointment(a model.Appointment) model.Appointment {
	a.Status = displayAppointmentStatus(a.Status)
	return a
}

func displayAppointments(appointments []model.Appointment) []model.Appointment {
	out := make([]model.Appointment, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, displayAppointment(a))
	}

	return out
}

// displayStatus is the flat-projection rendering of a status value.
func displayStatus(status string) string {
	if strings.TrimSpace(status) == "" {
		return model.NotAvailable
	}

	return titleCase(status)
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return model.NotAvailable
	}

	return value
}

func intOrNA(value int) string {
	if value <= 0 {
		return model.NotAvailable
	}

	return strconv.Itoa(value)
}

func titleCase(value string) string {
	if value == "" {
		return value
	}

	return strings.ToUpper(value[:1]) + strings.ToLower(value[1:])
}

// payloadSize reports the approximate serialized payload size, human readable.
func payloadSize(data model.ReportData) string {
	encoded, err := json.Marshal(data)
	if err != nil {
		return model.NotAvailable
	}

	size := len(encoded)

	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/float64(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
