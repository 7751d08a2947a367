package archive

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
	libMongo "github.com/LerianStudio/lib-commons/v2/commons/mongo"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "reports"

// Repository provides an interface for the report archive (allReports).
//
//go:generate mockgen --destination=archive.mock.go --package=archive . Repository
type Repository interface {
	// Insert appends a record keyed by its report id. Returns false when a
	// record with the same id is already archived; that is not an error.
	Insert(ctx context.Context, record *model.ReportRecord) (bool, error)

	// FindAll returns every archived record, newest first.
	FindAll(ctx context.Context) ([]*model.ReportRecord, error)

	// FindByID returns the archived record with the given report id. A missing
	// record surfaces mongo.ErrNoDocuments.
	FindByID(ctx context.Context, reportID string) (*model.ReportRecord, error)

	// FindByDateRange returns records whose commit timestamp falls in
	// [from, to), newest first.
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*model.ReportRecord, error)
}

// ReportMongoDBRepository is a MongoDB implementation of the archive repository.
type ReportMongoDBRepository struct {
	connection *libMongo.MongoConnection
	Database   string

	indexOnce sync.Once
}

// Compile-time interface satisfaction check.
var _ Repository = (*ReportMongoDBRepository)(nil)

// NewReportMongoDBRepository returns a new instance of ReportMongoDBRepository using the given MongoDB connection.
func NewReportMongoDBRepository(mc *libMongo.MongoConnection) *ReportMongoDBRepository {
	r := &ReportMongoDBRepository{
		connection: mc,
		Database:   mc.Database,
	}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("Failed to connect mongodb")
	}

	return r
}

// ensureIndexes creates the unique index on report_id. Uniqueness is what
// makes the archive commit idempotent; a duplicate insert is absorbed, never
// duplicated.
func (r *ReportMongoDBRepository) ensureIndexes(ctx context.Context, coll *mongo.Collection) {
	r.indexOnce.Do(func() {
		logger := libCommons.NewLoggerFromContext(ctx)

		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "report_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			logger.Errorf("Failed to ensure unique index on report_id: %v", err)
		}
	})
}

func (r *ReportMongoDBRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	coll := db.Database(r.Database).Collection(collectionName)
	r.ensureIndexes(ctx, coll)

	return coll, nil
}

// Insert appends a record to the archive. A second insert of the same report
// id hits the unique index and is reported as (false, nil).
func (r *ReportMongoDBRepository) Insert(ctx context.Context, record *model.ReportRecord) (bool, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.archive.insert")
	defer span.End()

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get mongodb collection", err)
		return false, err
	}

	var doc ReportMongoDBModel
	if err := doc.FromEntity(record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to convert record to archive document", err)
		return false, err
	}

	if _, err := coll.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logger.Infof("Report %s already archived, insert absorbed", record.ID)
			return false, nil
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to insert archive document", err)

		logger.Errorf("Failed to insert report %s into archive: %v", record.ID, err)

		return false, err
	}

	logger.Infof("Report %s archived", record.ID)

	return true, nil
}

// FindAll returns every archived record, newest first.
func (r *ReportMongoDBRepository) FindAll(ctx context.Context) ([]*model.ReportRecord, error) {
	return r.find(ctx, "mongodb.archive.find_all", bson.M{})
}

// FindByID returns the archived record keyed by the given report id.
func (r *ReportMongoDBRepository) FindByID(ctx context.Context, reportID string) (*model.ReportRecord, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "mongodb.archive.find_by_id")
	defer span.End()

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get mongodb collection", err)
		return nil, err
	}

	var doc ReportMongoDBModel
	if err := coll.FindOne(ctx, bson.M{"report_id": reportID}).Decode(&doc); err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			libOpentelemetry.HandleSpanError(&span, "Failed to find archive document", err)

			logger.Errorf("Failed to find report %s in archive: %v", reportID, err)
		}

		return nil, err
	}

	record, err := doc.ToEntity()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to convert archive document", err)
		return nil, err
	}

	return record, nil
}

// FindByDateRange returns records committed in [from, to), newest first.
func (r *ReportMongoDBRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*model.ReportRecord, error) {
	filter := bson.M{"timestamp": bson.M{"$gte": from, "$lt": to}}
	return r.find(ctx, "mongodb.archive.find_by_date_range", filter)
}

func (r *ReportMongoDBRepository) find(ctx context.Context, spanName string, filter bson.M) ([]*model.ReportRecord, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get mongodb collection", err)
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to query archive", err)

		logger.Errorf("Failed to query archive: %v", err)

		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.Errorf("Failed to close archive cursor: %v", err)
		}
	}()

	records := make([]*model.ReportRecord, 0)

	for cursor.Next(ctx) {
		var doc ReportMongoDBModel
		if err := cursor.Decode(&doc); err != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to decode archive document", err)
			return nil, err
		}

		record, err := doc.ToEntity()
		if err != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to convert archive document", err)
			return nil, err
		}

		records = append(records, record)
	}

	if err := cursor.Err(); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Archive cursor error", err)
		return nil, err
	}

	return records, nil
}
