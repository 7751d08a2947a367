package model

import (
	"github.com/shopspring/decimal"
)

// The clinic collections below mirror the dashboard's CRUD side. This service
// only ever reads them; ownership of writes stays with the dashboard.

// Patient is a registered clinic patient.
type Patient struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	Status           string `json:"status"`
	RegistrationDate string `json:"registrationDate"`
}

// Appointment is a booked visit. PatientID may be empty on records imported
// from the legacy dashboard, which only stored the patient's name.
type Appointment struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId,omitempty"`
	PatientName string `json:"patientName"`
	StaffID     string `json:"staffId,omitempty"`
	StaffName   string `json:"staffName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Treatment   string `json:"treatment"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

// TreatmentLine is a single billed line item on an invoice.
type TreatmentLine struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// Invoice is a bill issued to a patient.
type Invoice struct {
	ID            string          `json:"id"`
	PatientID     string          `json:"patientId,omitempty"`
	PatientName   string          `json:"patientName"`
	AppointmentID string          `json:"appointmentId,omitempty"`
	StaffID       string          `json:"staffId,omitempty"`
	StaffName     string          `json:"staffName,omitempty"`
	Date          string          `json:"date"`
	Treatments    []TreatmentLine `json:"treatments"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
}

// Staff is a clinic employee.
type Staff struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Specialties []string `json:"specialties"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Status      string   `json:"status"`
	JoinDate    string   `json:"joinDate"`
}

// InventoryItem is a stocked supply.
type InventoryItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Status        string          `json:"status"`
	Supplier      string          `json:"supplier,omitempty"`
	LastRestocked string          `json:"lastRestocked,omitempty"`
}

// Feedback is a patient review.
type Feedback struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId,omitempty"`
	PatientName string `json:"patientName"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

// ClinicData is a point-in-time read of the six clinic collections. Reports are
// always built from a single snapshot so cross-references stay consistent.
type ClinicData struct {
	Patients     []Patient       `json:"patients"`
	Appointments []Appointment   `json:"appointments"`
	Invoices     []Invoice       `json:"invoices"`
	Staff        []Staff         `json:"staff"`
	Inventory    []InventoryItem `json:"inventory"`
	Feedback     []Feedback      `json:"feedback"`
}
