package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/encoder"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/LerianStudio/lib-commons/v2/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// HandleRenderRequest processes one render request from the queue: render the
// record to HTML, print it to PDF, store the artifact, then acknowledge back to
// the manager. Any failure before the ack leaves the message unacknowledged so
// the consumer retry policy re-runs the whole pipeline. The archive commit on
// the manager side is idempotent, so a duplicate ack after a retry is harmless.
func (uc *UseCase) HandleRenderRequest(ctx context.Context, body []byte) error {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.render_report")
	defer span.End()

	var message model.RenderRequestMessage
	if err := json.Unmarshal(body, &message); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to unmarshal render request", err)

		logger.Errorf("Failed to unmarshal render request: %v", err)

		return fmt.Errorf("failed to unmarshal render request: %w", err)
	}

	record := message.ReportData

	span.SetAttributes(
		attribute.String("app.request.report_id", record.ID),
		attribute.String("app.request.report_type", record.Type),
		attribute.String("app.request.display_mode", message.DisplayMode),
	)

	logger.Infof("Rendering report %s (%s, %s)", record.ID, record.Type, message.DisplayMode)

	html, err := uc.Renderer.RenderRecord(ctx, &record, message.DisplayMode, logger)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to render report template", err)

		logger.Errorf("Failed to render report %s: %v", record.ID, err)

		return err
	}

	artifact, err := uc.PdfPool.Print(html)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to print report to PDF", err)

		logger.Errorf("Failed to print report %s to PDF: %v", record.ID, err)

		return err
	}

	key := encoder.ArtifactName(&record)

	if _, err := uc.StorageRepo.Upload(ctx, key, bytes.NewReader(artifact), encoder.ContentType(constant.OutputFormatPDF)); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to store report artifact", err)

		logger.Errorf("Failed to store artifact %s for report %s: %v", key, record.ID, err)

		return err
	}

	logger.Infof("Stored artifact %s (%d bytes) for report %s", key, len(artifact), record.ID)

	// The record is echoed verbatim so the manager archives exactly what was
	// rendered, not a re-derived copy.
	ack := model.SurfaceAckMessage{
		Type:       constant.SurfaceAckType,
		ReportData: record,
	}

	if _, err := uc.RabbitMQRepo.ProducerDefault(ctx, constant.ReportsExchange, constant.AckRoutingKey, ack); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to publish surface acknowledgement", err)

		logger.Errorf("Failed to publish acknowledgement for report %s: %v", record.ID, err)

		return err
	}

	logger.Infof("Report %s rendered and acknowledged", record.ID)

	return nil
}
