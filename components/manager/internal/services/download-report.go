package services

import (
	"context"
	"io"

	"github.com/muzammil922/dentalcare-reporter/pkg"
	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/encoder"

	"github.com/LerianStudio/lib-commons/v2/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// DownloadReport retrieves the stored artifact bytes, file name and content
// type for an archived report. The object key is reconstructed from the
// record; the artifact name is deterministic per record so no key needs to be
// persisted alongside the archive entry.
func (uc *UseCase) DownloadReport(ctx context.Context, id string) ([]byte, string, string, error) {
	logger, tracer, reqId, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.download_report")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.report_id", id),
	)

	logger.Infof("Downloading report artifact for id %s", id)

	record, err := uc.GetReportByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to retrieve report on query", err)

		logger.Errorf("Failed to retrieve report with id %s: %v", id, err)

		return nil, "", "", err
	}

	objectName := encoder.ArtifactName(record)
	contentType := encoder.ContentType(record.OutputFormat())

	reader, err := uc.StorageRepo.Download(ctx, objectName)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to download artifact from storage", err)

		logger.Errorf("Failed to download artifact %s: %v", objectName, err)

		return nil, "", "", pkg.ValidateBusinessError(constant.ErrArtifactStorageUnavailable, "report")
	}

	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			logger.Errorf("Failed to close artifact reader: %v", closeErr)
		}
	}()

	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to read artifact from storage", err)

		logger.Errorf("Failed to read artifact %s: %v", objectName, err)

		return nil, "", "", pkg.ValidateBusinessError(constant.ErrArtifactStorageUnavailable, "report")
	}

	logger.Infof("Downloaded artifact %s (%d bytes)", objectName, len(fileBytes))

	return fileBytes, objectName, contentType, nil
}

// PresignedDownloadURL returns a time-limited URL for the report's artifact so
// clients can fetch large documents straight from object storage.
func (uc *UseCase) PresignedDownloadURL(ctx context.Context, id string) (string, error) {
	logger, tracer, reqId, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.presigned_download_url")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.report_id", id),
	)

	record, err := uc.GetReportByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to retrieve report on query", err)

		return "", err
	}

	url, err := uc.StorageRepo.GeneratePresignedURL(ctx, encoder.ArtifactName(record), constant.PresignedURLExpiry)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to generate presigned URL", err)

		logger.Errorf("Failed to generate presigned URL for report %s: %v", id, err)

		return "", pkg.ValidateBusinessError(constant.ErrArtifactStorageUnavailable, "report")
	}

	return url, nil
}
