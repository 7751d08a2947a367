package constant

import "time"

const (
	// PresignedURLExpiry bounds how long a generated artifact download link
	// stays valid.
	PresignedURLExpiry = 15 * time.Minute
)

const (
	// ApplicationName identifies this service in logs and telemetry.
	ApplicationName = "dentalcare-reporter"

	// ArchiveTimeZone is the clinic's fixed locale. Day partitioning of the
	// report archive is always computed in this zone, never in server local time.
	ArchiveTimeZone = "Asia/Karachi"

	// DateOnlyLayout is the calendar-date layout used by the archive views.
	DateOnlyLayout = "2006-01-02"

	// LowStockThreshold marks inventory items as running low when the quantity
	// on hand falls to this value or below.
	LowStockThreshold = 10
)

// Report types (primary clinic collections).
const (
	ReportTypePatient     = "patient"
	ReportTypeAppointment = "appointment"
	ReportTypeFinancial   = "financial"
	ReportTypeStaff       = "staff"
	ReportTypeInventory   = "inventory"
	ReportTypeFeedback    = "feedback"
)

// Display modes.
const (
	DisplayModeList    = "list"
	DisplayModeDetails = "details"
)

// Output formats.
const (
	OutputFormatPDF   = "pdf"
	OutputFormatExcel = "excel"
	OutputFormatCSV   = "csv"
)

// StatusFilterAll selects every record of the primary collection.
const StatusFilterAll = "all"

// ScheduledLegacyStatuses are the historical spellings that earlier versions of
// the dashboard stored for a scheduled appointment. Filtering for "scheduled"
// must keep matching records written by those versions.
var ScheduledLegacyStatuses = []string{"scheduled", "pending", "upcoming", "new", "booked"}

// SurfaceAckType tags the message the rendering surface sends back once the
// report has been handed over for archiving.
const SurfaceAckType = "ADD_TO_RECENT_REPORTS"
