package services

import (
	"context"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/LerianStudio/lib-commons/v2/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// CommitReport performs the durable, idempotent archive write. The record is
// stamped with its generation instant on first commit; committing an id that
// is already archived is a no-op and returns false without error. A freshly
// inserted record that falls in the active day is appended to the current-day
// cache so readers see it without waiting for the next rollover.
func (uc *UseCase) CommitReport(ctx context.Context, record *model.ReportRecord) (bool, error) {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.commit_report")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.report_id", record.ID),
	)

	if record.Timestamp == nil {
		now := time.Now().In(uc.Location)
		record.Timestamp = &now
	}

	inserted, err := uc.ArchiveRepo.Insert(ctx, record)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to insert report into archive", err)

		logger.Errorf("Error committing report %s to archive: %v", record.ID, err)

		return false, err
	}

	if !inserted {
		logger.Infof("Report %s already archived, commit is a no-op", record.ID)
		return false, nil
	}

	if uc.isActiveDay(record.Timestamp) {
		if err := uc.DayViewRepo.AppendCurrentDay(ctx, record); err != nil {
			// The cache rebuilds from the archive on the next rollover, so a
			// failed append degrades freshness, not correctness.
			libOpentelemetry.HandleSpanError(&span, "Failed to append report to current-day cache", err)

			logger.Warnf("Failed to append report %s to current-day cache: %v", record.ID, err)
		}
	}

	logger.Infof("Report %s committed to archive", record.ID)

	return true, nil
}

// isActiveDay reports whether the timestamp falls on today's calendar date in
// the archive reference timezone.
func (uc *UseCase) isActiveDay(timestamp *time.Time) bool {
	if timestamp == nil {
		return false
	}

	today := time.Now().In(uc.Location).Format(constant.DateOnlyLayout)

	return timestamp.In(uc.Location).Format(constant.DateOnlyLayout) == today
}
