// Package clinic reads the six collections of the dashboard's clinic database.
// This adapter is strictly read-only; the dashboard owns all writes.
package clinic

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/muzammil922/dentalcare-reporter/pkg/model"
	"github.com/muzammil922/dentalcare-reporter/pkg/postgres"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// Repository provides an interface for reading the clinic collections.
//
//go:generate mockgen --destination=clinic.mock.go --package=clinic . Repository
type Repository interface {
	// FindAll reads all six collections as one snapshot.
	FindAll(ctx context.Context) (*model.ClinicData, error)
}

// ClinicPostgreSQLRepository is a PostgreSQL implementation of the clinic reader.
type ClinicPostgreSQLRepository struct {
	connection *postgres.Connection
}

// Compile-time interface satisfaction check.
var _ Repository = (*ClinicPostgreSQLRepository)(nil)

// NewClinicPostgreSQLRepository returns a new instance of ClinicPostgreSQLRepository using the given connection.
func NewClinicPostgreSQLRepository(pc *postgres.Connection) *ClinicPostgreSQLRepository {
	c := &ClinicPostgreSQLRepository{
		connection: pc,
	}

	if _, err := c.connection.GetDB(); err != nil {
		panic("Failed to connect database")
	}

	return c
}

// FindAll reads every collection inside a single span. Reports are built from
// one snapshot so cross-references never mix reads from different moments.
func (r *ClinicPostgreSQLRepository) FindAll(ctx context.Context) (*model.ClinicData, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.clinic.find_all")
	defer span.End()

	db, err := r.connection.GetDB()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database connection", err)
		return nil, err
	}

	data := &model.ClinicData{}

	if data.Patients, err = r.findPatients(ctx, db); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read patients", err)
		logger.Errorf("Failed to read patients: %v", err)

		return nil, err
	}

	if data.Appointments, err = r.findAppointments(ctx, db); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read appointments", err)
		logger.Errorf("Failed to read appointments: %v", err)

		return nil, err
	}

	if data.Invoices, err = r.findInvoices(ctx, db); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read invoices", err)
		logger.Errorf("Failed to read invoices: %v", err)

		return nil, err
	}

	if data.Staff, err = r.findStaff(ctx, db); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read staff", err)
		logger.Errorf("Failed to read staff: %v", err)

		return nil, err
	}

	if data.Inventory, err = r.findInventory(ctx, db); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read inventory", err)
		logger.Errorf("Failed to read inventory: %v", err)

		return nil, err
	}

	if data.Feedback, err = r.findFeedback(ctx, db); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read feedback", err)
		logger.Errorf("Failed to read feedback: %v", err)

		return nil, err
	}

	return data, nil
}

func (r *ClinicPostgreSQLRepository) findPatients(ctx context.Context, db *sql.DB) ([]model.Patient, error) {
	query, args, err := sq.Select("id", "name", "age", "gender", "phone", "email", "address", "status", "registration_date").
		From("patients").
		OrderBy("registration_date", "id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := make([]model.Patient, 0)

	for rows.Next() {
		var (
			p                            model.Patient
			gender, phone, email, addr   sql.NullString
		)

		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &gender, &phone, &email, &addr, &p.Status, &p.RegistrationDate); err != nil {
			return nil, err
		}

		p.Gender = gender.String
		p.Phone = phone.String
		p.Email = email.String
		p.Address = addr.String

		patients = append(patients, p)
	}

	return patients, rows.Err()
}

func (r *ClinicPostgreSQLRepository) findAppointments(ctx context.Context, db *sql.DB) ([]model.Appointment, error) {
	query, args, err := sq.Select("id", "patient_id", "patient_name", "staff_id", "staff_name", "date", "time", "treatment", "status", "notes").
		From("appointments").
		OrderBy("date", "time", "id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]model.Appointment, 0)

	for rows.Next() {
		var (
			a                        model.Appointment
			patientID, staffID, note sql.NullString
		)

		if err := rows.Scan(&a.ID, &patientID, &a.PatientName, &staffID, &a.StaffName, &a.Date, &a.Time, &a.Treatment, &a.Status, &note); err != nil {
			return nil, err
		}

		a.PatientID = patientID.String
		a.StaffID = staffID.String
		a.Notes = note.String

		appointments = append(appointments, a)
	}

	return appointments, rows.Err()
}

func (r *ClinicPostgreSQLRepository) findInvoices(ctx context.Context, db *sql.DB) ([]model.Invoice, error) {
	query, args, err := sq.Select("id", "patient_id", "patient_name", "appointment_id", "staff_id", "staff_name", "date", "treatments", "total", "status").
		From("invoices").
		OrderBy("date", "id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]model.Invoice, 0)

	for rows.Next() {
		var (
			i                                        model.Invoice
			patientID, appointmentID, staffID, staff sql.NullString
			treatments                               []byte
		)

		if err := rows.Scan(&i.ID, &patientID, &i.PatientName, &appointmentID, &staffID, &staff, &i.Date, &treatments, &i.Total, &i.Status); err != nil {
			return nil, err
		}

		i.PatientID = patientID.String
		i.AppointmentID = appointmentID.String
		i.StaffID = staffID.String
		i.StaffName = staff.String

		i.Treatments = make([]model.TreatmentLine, 0)
		if len(treatments) > 0 {
			if err := json.Unmarshal(treatments, &i.Treatments); err != nil {
				return nil, err
			}
		}

		invoices = append(invoices, i)
	}

	return invoices, rows.Err()
}

func (r *ClinicPostgreSQLRepository) findStaff(ctx context.Context, db *sql.DB) ([]model.Staff, error) {
	query, args, err := sq.Select("id", "name", "role", "specialties", "phone", "email", "status", "join_date").
		From("staff").
		OrderBy("join_date", "id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := make([]model.Staff, 0)

	for rows.Next() {
		var (
			s            model.Staff
			phone, email sql.NullString
			specialties  pq.StringArray
		)

		if err := rows.Scan(&s.ID, &s.Name, &s.Role, &specialties, &phone, &email, &s.Status, &s.JoinDate); err != nil {
			return nil, err
		}

		s.Specialties = []string(specialties)
		s.Phone = phone.String
		s.Email = email.String

		staff = append(staff, s)
	}

	return staff, rows.Err()
}

func (r *ClinicPostgreSQLRepository) findInventory(ctx context.Context, db *sql.DB) ([]model.InventoryItem, error) {
	query, args, err := sq.Select("id", "name", "category", "quantity", "unit", "unit_price", "status", "supplier", "last_restocked").
		From("inventory_items").
		OrderBy("name", "id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.InventoryItem, 0)

	for rows.Next() {
		var (
			item                    model.InventoryItem
			supplier, lastRestocked sql.NullString
		)

		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Unit, &item.UnitPrice, &item.Status, &supplier, &lastRestocked); err != nil {
			return nil, err
		}

		item.Supplier = supplier.String
		item.LastRestocked = lastRestocked.String

		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *ClinicPostgreSQLRepository) findFeedback(ctx context.Context, db *sql.DB) ([]model.Feedback, error) {
	query, args, err := sq.Select("id", "patient_id", "patient_name", "rating", "comment", "date", "status").
		From("feedback").
		OrderBy("date", "id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedback := make([]model.Feedback, 0)

	for rows.Next() {
		var (
			f                  model.Feedback
			patientID, comment sql.NullString
		)

		if err := rows.Scan(&f.ID, &patientID, &f.PatientName, &f.Rating, &comment, &f.Date, &f.Status); err != nil {
			return nil, err
		}

		f.PatientID = patientID.String
		f.Comment = comment.String

		feedback = append(feedback, f)
	}

	return feedback, rows.Err()
}
