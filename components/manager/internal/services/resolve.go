package services

import (
	"strings"

	"github.com/muzammil922/dentalcare-reporter/pkg/model"
)

// Cross-reference resolution attaches secondary records to a primary record.
// Matching is an explicit, ordered rule list rather than ad hoc conditionals:
// a shared foreign id wins, then exact name equality, then case-insensitive
// name equality. Rules are tried in sequence and the first rule producing at
// least one match supplies the whole relation set. A missing relation is an
// empty slice, never nil.

type matchRule int

const (
	matchForeignID matchRule = iota
	matchNameExact
	matchNameFold
)

var matchRuleOrder = []matchRule{matchForeignID, matchNameExact, matchNameFold}

func ruleMatches(rule matchRule, foreignID, foreignName, primaryID, primaryName string) bool {
	switch rule {
	case matchForeignID:
		return foreignID != "" && foreignID == primaryID
	case matchNameExact:
		return foreignName != "" && foreignName == primaryName
	case matchNameFold:
		return foreignName != "" && strings.EqualFold(foreignName, primaryName)
	}

	return false
}

// matchRelation collects the secondaries related to one primary. keys extracts
// the secondary's foreign id and foreign name.
func matchRelation[T any](secondaries []T, primaryID, primaryName string, keys func(T) (string, string)) []T {
	for _, rule := range matchRuleOrder {
		matched := make([]T, 0)

		for _, secondary := range secondaries {
			foreignID, foreignName := keys(secondary)
			if ruleMatches(rule, foreignID, foreignName, primaryID, primaryName) {
				matched = append(matched, secondary)
			}
		}

		if len(matched) > 0 {
			return matched
		}
	}

	return []T{}
}

// matchOne resolves a single related record, or nil when no rule matches.
func matchOne[T any](secondaries []T, primaryID, primaryName string, keys func(T) (string, string)) *T {
	matched := matchRelation(secondaries, primaryID, primaryName, keys)
	if len(matched) == 0 {
		return nil
	}

	return &matched[0]
}

func appointmentPatientKeys(a model.Appointment) (string, string) {
	return a.PatientID, a.PatientName
}

func invoicePatientKeys(i model.Invoice) (string, string) {
	return i.PatientID, i.PatientName
}

func appointmentStaffKeys(a model.Appointment) (string, string) {
	return a.StaffID, a.StaffName
}

func invoiceStaffKeys(i model.Invoice) (string, string) {
	return i.StaffID, i.StaffName
}

func patientKeys(p model.Patient) (string, string) {
	return p.ID, p.Name
}

// resolvePatientRelations attaches a patient's appointments and invoices.
func resolvePatientRelations(p model.Patient, data *model.ClinicData) ([]model.Appointment, []model.Invoice) {
	appointments := matchRelation(data.Appointments, p.ID, p.Name, appointmentPatientKeys)
	invoices := matchRelation(data.Invoices, p.ID, p.Name, invoicePatientKeys)

	return appointments, invoices
}

// resolveAppointmentRelations attaches the owning patient record and the
// invoices sharing the appointment's patient identity.
func resolveAppointmentRelations(a model.Appointment, data *model.ClinicData) (*model.Patient, []model.Invoice) {
	patient := matchOne(data.Patients, a.PatientID, a.PatientName, patientKeys)
	invoices := matchRelation(data.Invoices, a.PatientID, a.PatientName, invoicePatientKeys)

	return patient, invoices
}

// resolveInvoiceRelations attaches the appointments associated with an
// invoice, by appointment id when the invoice carries one and by patient
// identity otherwise.
func resolveInvoiceRelations(i model.Invoice, data *model.ClinicData) []model.Appointment {
	return matchRelation(data.Appointments, i.AppointmentID, i.PatientName, func(a model.Appointment) (string, string) {
		return a.ID, a.PatientName
	})
}

// resolveStaffRelations attaches the appointments and invoices attributed to
// one staff member.
func resolveStaffRelations(s model.Staff, data *model.ClinicData) ([]model.Appointment, []model.Invoice) {
	appointments := matchRelation(data.Appointments, s.ID, s.Name, appointmentStaffKeys)
	invoices := matchRelation(data.Invoices, s.ID, s.Name, invoiceStaffKeys)

	return appointments, invoices
}

// resolveInventoryRelations attaches usage: appointments whose treatment names
// the item, and invoices carrying a treatment line item for it. Treatment
// references are stored by name only, so matching is name-based.
func resolveInventoryRelations(item model.InventoryItem, data *model.ClinicData) ([]model.Appointment, []model.Invoice) {
	appointments := make([]model.Appointment, 0)

	for _, a := range data.Appointments {
		if strings.EqualFold(a.Treatment, item.Name) {
			appointments = append(appointments, a)
		}
	}

	invoices := make([]model.Invoice, 0)

	for _, i := range data.Invoices {
		for _, line := range i.Treatments {
			if strings.EqualFold(line.Name, item.Name) {
				invoices = append(invoices, i)
				break
			}
		}
	}

	return appointments, invoices
}

// resolveFeedbackRelations attaches the patient who left the feedback.
func resolveFeedbackRelations(f model.Feedback, data *model.ClinicData) *model.Patient {
	return matchOne(data.Patients, f.PatientID, f.PatientName, patientKeys)
}
