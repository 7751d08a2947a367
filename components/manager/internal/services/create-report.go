package services

import (
	"bytes"
	"context"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg"
	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/encoder"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/LerianStudio/lib-commons/v2/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// CreateReport generates a report from one clinic snapshot.
//
// Spreadsheet and delimited outputs are synchronous: the artifact is encoded,
// stored and the record committed before returning. The paginated-document
// output is asynchronous: a render message is handed to the rendering surface
// and the record stays uncommitted until the surface acknowledges; the
// returned record therefore carries no Timestamp yet.
func (uc *UseCase) CreateReport(ctx context.Context, input *model.CreateReportInput) (*model.ReportRecord, error) {
	logger, tracer, reqId, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.create_report")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.report_type", input.ReportType),
		attribute.String("app.request.output_format", input.OutputFormat),
	)

	err := libOpentelemetry.SetSpanAttributesFromStruct(&span, "app.request.payload", input)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to convert report input to JSON string", err)
	}

	logger.Infof("Creating %s report (%s, %s)", input.ReportType, input.DisplayMode, input.OutputFormat)

	data, err := uc.clinicSnapshot(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read clinic snapshot", err)

		logger.Errorf("Error reading clinic snapshot: %v", err)

		return nil, pkg.ValidateBusinessError(constant.ErrClinicDataUnavailable, "")
	}

	record := buildReport(input, data, time.Now().In(uc.Location))

	if input.OutputFormat == constant.OutputFormatPDF {
		return uc.openRenderingSurface(ctx, record)
	}

	return uc.writeArtifactAndCommit(ctx, record)
}

// clinicSnapshot reads the six collections through the circuit breaker.
func (uc *UseCase) clinicSnapshot(ctx context.Context) (*model.ClinicData, error) {
	result, err := uc.Breaker.Execute(clinicBreakerName, func() (any, error) {
		return uc.ClinicRepo.FindAll(ctx)
	})
	if err != nil {
		return nil, err
	}

	data, ok := result.(*model.ClinicData)
	if !ok || data == nil {
		return nil, constant.ErrClinicDataUnavailable
	}

	return data, nil
}

// openRenderingSurface publishes the render message and tracks the session.
// A publish failure is the "surface refused to open" condition: recoverable,
// reported as a business error, and nothing is committed to the archive.
func (uc *UseCase) openRenderingSurface(ctx context.Context, record *model.ReportRecord) (*model.ReportRecord, error) {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.open_rendering_surface")
	defer span.End()

	uc.Surfaces.Track(record.ID)

	message := model.RenderRequestMessage{
		DisplayMode: record.DisplayMode(),
		ReportData:  *record,
	}

	if _, err := uc.RabbitMQRepo.ProducerDefault(ctx, constant.ReportsExchange, constant.RenderRoutingKey, message); err != nil {
		uc.Surfaces.Abandon(record.ID)

		libOpentelemetry.HandleSpanError(&span, "Failed to publish render message", err)

		logger.Errorf("Error publishing render message for report %s: %v", record.ID, err)

		return nil, pkg.ValidateBusinessError(constant.ErrRenderSurfaceUnavailable, "")
	}

	uc.Surfaces.Open(record.ID)

	logger.Infof("Rendering surface opened for report %s, awaiting acknowledgement", record.ID)

	return record, nil
}

// writeArtifactAndCommit encodes the synchronous formats, stores the artifact
// and commits the record immediately.
func (uc *UseCase) writeArtifactAndCommit(ctx context.Context, record *model.ReportRecord) (*model.ReportRecord, error) {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.write_artifact_and_commit")
	defer span.End()

	var (
		artifact []byte
		err      error
	)

	switch record.OutputFormat() {
	case constant.OutputFormatExcel:
		artifact, err = encoder.Spreadsheet(record)
	case constant.OutputFormatCSV:
		artifact, err = encoder.Delimited(record)
	default:
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidOutputFormat, "")
	}

	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to encode report artifact", err)

		logger.Errorf("Error encoding artifact for report %s: %v", record.ID, err)

		return nil, err
	}

	key := encoder.ArtifactName(record)

	if _, err := uc.StorageRepo.Upload(ctx, key, bytes.NewReader(artifact), encoder.ContentType(record.OutputFormat())); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to store report artifact", err)

		logger.Errorf("Error storing artifact %s: %v", key, err)

		return nil, pkg.ValidateBusinessError(constant.ErrArtifactStorageUnavailable, "")
	}

	if _, err := uc.CommitReport(ctx, record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to commit report", err)
		return nil, err
	}

	return record, nil
}
