package services

import (
	"strings"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"
)

// The filter engine applies the status predicate of a report request to its
// primary collection. "all" is the identity filter and preserves both length
// and order. Every other value is a plain equality on the status field, with
// one documented exception: appointment "scheduled" matches the widened set of
// historical spellings in constant.ScheduledLegacyStatuses, because the
// dashboard's appointment vocabulary changed over the years and old records
// must keep matching. An empty result is valid, never an error.

func statusMatches(status, filter string) bool {
	return strings.EqualFold(status, filter)
}

// appointmentStatusMatches applies the widened "scheduled" predicate.
func appointmentStatusMatches(status, filter string) bool {
	if !strings.EqualFold(filter, "scheduled") {
		return strings.EqualFold(status, filter)
	}

	for _, legacy := range constant.ScheduledLegacyStatuses {
		if strings.EqualFold(status, legacy) {
			return true
		}
	}

	return false
}

func filterPatients(patients []model.Patient, filter string) []model.Patient {
	if filter == constant.StatusFilterAll {
		return patients
	}

	out := make([]model.Patient, 0, len(patients))

	for _, p := range patients {
		if statusMatches(p.Status, filter) {
			out = append(out, p)
		}
	}

	return out
}

func filterAppointments(appointments []model.Appointment, filter string) []model.Appointment {
	if filter == constant.StatusFilterAll {
		return appointments
	}

	out := make([]model.Appointment, 0, len(appointments))

	for _, a := range appointments {
		if appointmentStatusMatches(a.Status, filter) {
			out = append(out, a)
		}
	}

	return out
}

func filterInvoices(invoices []model.Invoice, filter string) []model.Invoice {
	if filter == constant.StatusFilterAll {
		return invoices
	}

	out := make([]model.Invoice, 0, len(invoices))

	for _, i := range invoices {
		if statusMatches(i.Status, filter) {
			out = append(out, i)
		}
	}

	return out
}

func filterStaff(staff []model.Staff, filter string) []model.Staff {
	if filter == constant.StatusFilterAll {
		return staff
	}

	out := make([]model.Staff, 0, len(staff))

	for _, s := range staff {
		if statusMatches(s.Status, filter) {
			out = append(out, s)
		}
	}

	return out
}

func filterInventory(items []model.InventoryItem, filter string) []model.InventoryItem {
	if filter == constant.StatusFilterAll {
		return items
	}

	out := make([]model.InventoryItem, 0, len(items))

	for _, i := range items {
		if statusMatches(i.Status, filter) {
			out = append(out, i)
		}
	}

	return out
}

func filterFeedback(feedback []model.Feedback, filter string) []model.Feedback {
	if filter == constant.StatusFilterAll {
		return feedback
	}

	out := make([]model.Feedback, 0, len(feedback))

	for _, f := range feedback {
		if statusMatches(f.Status, filter) {
			out = append(out, f)
		}
	}

	return out
}
