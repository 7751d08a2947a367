package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NotAvailable is the literal rendered and exported for any missing value.
const NotAvailable = "N/A"

// CreateReportInput is the request body for generating a report.
type CreateReportInput struct {
	ReportType   string `json:"reportType" validate:"required,oneof=patient appointment financial staff inventory feedback" example:"patient"`
	DisplayMode  string `json:"displayMode" validate:"required,oneof=list details" example:"list"`
	OutputFormat string `json:"outputFormat" validate:"required,oneof=pdf excel csv" example:"pdf"`
	StatusFilter string `json:"statusFilter" validate:"required,max=64" example:"active"`
}

// ReportRecord is the archival unit. ID is {reportType}-{unixMilli}; Format is
// the compound {displayMode}-{outputFormat} tag; Timestamp is nil until the
// record is committed to the archive.
type ReportRecord struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Format    string     `json:"format"`
	Date      string     `json:"date"`
	Size      string     `json:"size"`
	Data      ReportData `json:"data"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// DisplayMode extracts the display-mode half of the compound format tag.
func (r *ReportRecord) DisplayMode() string {
	mode, _, _ := strings.Cut(r.Format, "-")
	return mode
}

// OutputFormat extracts the output-format half of the compound format tag.
func (r *ReportRecord) OutputFormat() string {
	_, format, _ := strings.Cut(r.Format, "-")
	return format
}

// ReportData carries everything a renderer or encoder needs, for every display
// mode at once: flat projections for list/spreadsheet/delimited output and
// Detailed* bundles for the details view. Only the fields of the report's own
// type are populated.
type ReportData struct {
	Filter       string         `json:"filter"`
	StatusCounts map[string]int `json:"statusCounts,omitempty"`

	// The slice fields never carry omitempty: an empty result is materialized
	// data and must round-trip as [], not vanish from the archived payload.

	TotalPatients    int               `json:"totalPatients,omitempty"`
	Patients         []PatientRow      `json:"patients"`
	DetailedPatients []DetailedPatient `json:"detailedPatients"`

	TotalAppointments    int                   `json:"totalAppointments,omitempty"`
	Appointments         []AppointmentRow      `json:"appointments"`
	DetailedAppointments []DetailedAppointment `json:"detailedAppointments"`

	TotalInvoices    int               `json:"totalInvoices,omitempty"`
	Invoices         []InvoiceRow      `json:"invoices"`
	DetailedInvoices []DetailedInvoice `json:"detailedInvoices"`
	Billing          *BillingSummary   `json:"billing,omitempty"`

	TotalStaff    int             `json:"totalStaff,omitempty"`
	Staff         []StaffRow      `json:"staff"`
	DetailedStaff []DetailedStaff `json:"detailedStaff"`

	TotalInventory    int                     `json:"totalInventory,omitempty"`
	LowStockCount     int                     `json:"lowStockCount,omitempty"`
	Inventory         []InventoryRow          `json:"inventory"`
	DetailedInventory []DetailedInventoryItem `json:"detailedInventory"`

	TotalFeedback    int               `json:"totalFeedback,omitempty"`
	AverageRating    string            `json:"averageRating,omitempty"`
	Feedback         []FeedbackRow     `json:"feedback"`
	DetailedFeedback []DetailedFeedback `json:"detailedFeedback"`
}

// Flat projection rows. Values are pre-formatted strings with missing data
// already substituted by NotAvailable, so every output format renders them
// identically.

type PatientRow struct {
	Name             string `json:"name"`
	Age              string `json:"age"`
	Gender           string `json:"gender"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Status           string `json:"status"`
	RegistrationDate string `json:"registrationDate"`
}

type AppointmentRow struct {
	PatientName string `json:"patientName"`
	StaffName   string `json:"staffName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Treatment   string `json:"treatment"`
	Status      string `json:"status"`
}

type InvoiceRow struct {
	InvoiceID   string `json:"invoiceId"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"`
	Total       string `json:"total"`
	Status      string `json:"status"`
}

type StaffRow struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Specialties string `json:"specialties"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Status      string `json:"status"`
	JoinDate    string `json:"joinDate"`
}

type InventoryRow struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Quantity  string `json:"quantity"`
	Unit      string `json:"unit"`
	UnitPrice string `json:"unitPrice"`
	Status    string `json:"status"`
	Supplier  string `json:"supplier"`
}

type FeedbackRow struct {
	PatientName string `json:"patientName"`
	Rating      string `json:"rating"`
	Comment     string `json:"comment"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

// Detailed bundles pair each primary record with its cross-referenced
// relations. Appointment statuses are rendered in the display vocabulary, so a
// legacy "pending" shows as "Scheduled" in detail views too.

type DetailedPatient struct {
	Patient      Patient        `json:"patient"`
	Appointments []Appointment  `json:"appointments"`
	Invoices     []Invoice      `json:"invoices"`
	Billing      BillingSummary `json:"billing"`
}

type DetailedAppointment struct {
	Appointment Appointment `json:"appointment"`
	Patient     *Patient    `json:"patient,omitempty"`
	Invoices    []Invoice   `json:"invoices"`
}

type DetailedInvoice struct {
	Invoice      Invoice       `json:"invoice"`
	Appointments []Appointment `json:"appointments"`
}

type DetailedStaff struct {
	Staff        Staff         `json:"staff"`
	Appointments []Appointment `json:"appointments"`
	Invoices     []Invoice     `json:"invoices"`
}

type DetailedInventoryItem struct {
	Item         InventoryItem `json:"item"`
	Appointments []Appointment `json:"appointments"`
	Invoices     []Invoice     `json:"invoices"`
}

type DetailedFeedback struct {
	Feedback Feedback `json:"feedback"`
	Patient  *Patient `json:"patient,omitempty"`
}

// BillingSummary aggregates a patient's invoices.
type BillingSummary struct {
	TotalInvoiced decimal.Decimal `json:"totalInvoiced"`
	Paid          decimal.Decimal `json:"paid"`
	Pending       decimal.Decimal `json:"pending"`
}

// RenderRequestMessage asks the rendering surface to print one report.
type RenderRequestMessage struct {
	DisplayMode string       `json:"displayMode"`
	ReportData  ReportRecord `json:"reportData"`
}

// SurfaceAckMessage is the fire-and-forget acknowledgement the rendering
// surface publishes once the artifact is stored. Type is always
// constant.SurfaceAckType; ReportData echoes the record verbatim.
type SurfaceAckMessage struct {
	Type       string       `json:"type"`
	ReportData ReportRecord `json:"reportData"`
}

// FlatTable returns the fixed header set of the record's report type together
// with one row of cell values per flat projection entry. Spreadsheet and
// delimited encoders and the list view all consume this single contract.
func (r *ReportRecord) FlatTable() ([]string, [][]string) {
	// Type is stored as the capitalized domain tag ("Patient"); fold it so
	// records produced before the capitalization are still renderable.
	switch strings.ToLower(r.Type) {
	case "patient":
		headers := []string{"Name", "Age", "Gender", "Phone", "Email", "Status", "Registered"}
		rows := make([][]string, 0, len(r.Data.Patients))

		for _, p := range r.Data.Patients {
			rows = append(rows, []string{p.Name, p.Age, p.Gender, p.Phone, p.Email, p.Status, p.RegistrationDate})
		}

		return headers, rows
	case "appointment":
		headers := []string{"Patient", "Dentist", "Date", "Time", "Treatment", "Status"}
		rows := make([][]string, 0, len(r.Data.Appointments))

		for _, a := range r.Data.Appointments {
			rows = append(rows, []string{a.PatientName, a.StaffName, a.Date, a.Time, a.Treatment, a.Status})
		}

		return headers, rows
	case "financial":
		headers := []string{"Invoice", "Patient", "Date", "Total", "Status"}
		rows := make([][]string, 0, len(r.Data.Invoices))

		for _, i := range r.Data.Invoices {
			rows = append(rows, []string{i.InvoiceID, i.PatientName, i.Date, i.Total, i.Status})
		}

		return headers, rows
	case "staff":
		headers := []string{"Name", "Role", "Specialties", "Phone", "Email", "Status", "Joined"}
		rows := make([][]string, 0, len(r.Data.Staff))

		for _, s := range r.Data.Staff {
			rows = append(rows, []string{s.Name, s.Role, s.Specialties, s.Phone, s.Email, s.Status, s.JoinDate})
		}

		return headers, rows
	case "inventory":
		headers := []string{"Item", "Category", "Quantity", "Unit", "Unit Price", "Status", "Supplier"}
		rows := make([][]string, 0, len(r.Data.Inventory))

		for _, i := range r.Data.Inventory {
			rows = append(rows, []string{i.Name, i.Category, i.Quantity, i.Unit, i.UnitPrice, i.Status, i.Supplier})
		}

		return headers, rows
	case "feedback":
		headers := []string{"Patient", "Rating", "Comment", "Date", "Status"}
		rows := make([][]string, 0, len(r.Data.Feedback))

		for _, f := range r.Data.Feedback {
			rows = append(rows, []string{f.PatientName, f.Rating, f.Comment, f.Date, f.Status})
		}

		return headers, rows
	}

	return nil, nil
}
