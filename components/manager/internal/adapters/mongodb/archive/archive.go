package archive

import (
	"encoding/json"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportMongoDBModel is the archive representation of a report record. The
// report payload is stored as canonical JSON so the record round-trips
// byte-identically through the wire format.
type ReportMongoDBModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ReportID   string             `bson:"report_id"`
	Name       string             `bson:"name"`
	ReportType string             `bson:"report_type"`
	Format     string             `bson:"format"`
	Date       string             `bson:"date"`
	Size       string             `bson:"size"`
	Payload    []byte             `bson:"payload"`
	Timestamp  time.Time          `bson:"timestamp"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// FromEntity converts a report record to its archive representation.
func (m *ReportMongoDBModel) FromEntity(record *model.ReportRecord) error {
	payload, err := json.Marshal(record.Data)
	if err != nil {
		return err
	}

	m.ReportID = record.ID
	m.Name = record.Name
	m.ReportType = record.Type
	m.Format = record.Format
	m.Date = record.Date
	m.Size = record.Size
	m.Payload = payload

	if record.Timestamp != nil {
		m.Timestamp = *record.Timestamp
	}

	m.CreatedAt = time.Now().UTC()

	return nil
}

// ToEntity converts an archive document back to a report record.
func (m *ReportMongoDBModel) ToEntity() (*model.ReportRecord, error) {
	var data model.ReportData
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &data); err != nil {
			return nil, err
		}
	}

	ts := m.Timestamp

	return &model.ReportRecord{
		ID:        m.ReportID,
		Name:      m.Name,
		Type:      m.ReportType,
		Format:    m.Format,
		Date:      m.Date,
		Size:      m.Size,
		Data:      data,
		Timestamp: &ts,
	}, nil
}
