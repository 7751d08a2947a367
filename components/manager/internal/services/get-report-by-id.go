package services

import (
	"context"
	"errors"

	"github.com/muzammil922/dentalcare-reporter/pkg"
	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/LerianStudio/lib-commons/v2/commons"
	"github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
)

// GetReportByID returns one archived report record.
func (uc *UseCase) GetReportByID(ctx context.Context, id string) (*model.ReportRecord, error) {
	logger, tracer, reqId, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.get_report_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.report_id", id),
	)

	logger.Infof("Retrieving report for id %s", id)

	record, err := uc.ArchiveRepo.FindByID(ctx, id)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to get report on repo by id", err)

		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkg.ValidateBusinessError(constant.ErrEntityNotFound, "report")
		}

		logger.Errorf("Error getting report on repo by id: %v", err)

		return nil, err
	}

	return record, nil
}
