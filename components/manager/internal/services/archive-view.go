package services

import (
	"context"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg"
	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/LerianStudio/lib-commons/v2/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// GetAllReports returns the full archive, newest first.
func (uc *UseCase) GetAllReports(ctx context.Context) ([]*model.ReportRecord, error) {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.get_all_reports")
	defer span.End()

	records, err := uc.ArchiveRepo.FindAll(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read archive", err)

		logger.Errorf("Error reading report archive: %v", err)

		return nil, err
	}

	return records, nil
}

// GetCurrentDayReports returns the day-partitioned derived view. Rollover is
// pull-based: the persisted day marker is compared against today in the
// archive reference timezone on every read, and on mismatch the cached view is
// discarded and rebuilt from the archive. There is no background timer.
func (uc *UseCase) GetCurrentDayReports(ctx context.Context) ([]*model.ReportRecord, error) {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.get_current_day_reports")
	defer span.End()

	now := time.Now().In(uc.Location)
	today := now.Format(constant.DateOnlyLayout)

	marker, err := uc.DayViewRepo.GetDayMarker(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read day marker", err)
		return nil, err
	}

	if marker == today {
		records, found, err := uc.DayViewRepo.GetCurrentDay(ctx)
		if err != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to read current-day cache", err)
			return nil, err
		}

		if found {
			return records, nil
		}
	}

	span.SetAttributes(
		attribute.String("app.request.archive.rollover_day", today),
	)

	logger.Infof("Day boundary crossed (marker %q, today %q), rebuilding current-day view", marker, today)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.Location)

	records, err := uc.ArchiveRepo.FindByDateRange(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to rebuild current-day view from archive", err)

		logger.Errorf("Error rebuilding current-day view: %v", err)

		return nil, err
	}

	if err := uc.DayViewRepo.ReplaceCurrentDay(ctx, today, records); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to replace current-day cache", err)

		logger.Errorf("Error replacing current-day cache: %v", err)

		return nil, err
	}

	return records, nil
}

// GetReportsForDate is a pure read: it filters the archive by calendar-date
// equality in the reference timezone and mutates neither the archive nor the
// day marker.
func (uc *UseCase) GetReportsForDate(ctx context.Context, date string) ([]*model.ReportRecord, error) {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.get_reports_for_date")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.archive.date", date),
	)

	dayStart, err := time.ParseInLocation(constant.DateOnlyLayout, date, uc.Location)
	if err != nil {
		errInvalidDate := pkg.ValidateBusinessError(constant.ErrInvalidDateFormat, "")

		libOpentelemetry.HandleSpanError(&span, "Invalid date format", err)

		return nil, errInvalidDate
	}

	records, err := uc.ArchiveRepo.FindByDateRange(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read archive by date", err)

		logger.Errorf("Error reading archive for date %s: %v", date, err)

		return nil, err
	}

	return records, nil
}
