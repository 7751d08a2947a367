package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/LerianStudio/lib-commons/v2/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// HandleSurfaceAck consumes one acknowledgement from the rendering surface and
// performs the archive commit for the echoed record. Duplicate delivery is
// harmless: the commit is idempotent on the record id. Unknown message types
// are rejected so a misrouted payload never reaches the archive.
func (uc *UseCase) HandleSurfaceAck(ctx context.Context, body []byte) error {
	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.handle_surface_ack")
	defer span.End()

	var message model.SurfaceAckMessage
	if err := json.Unmarshal(body, &message); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to unmarshal surface ack", err)

		logger.Errorf("Error unmarshalling surface ack: %v", err)

		return err
	}

	if message.Type != constant.SurfaceAckType {
		err := fmt.Errorf("unexpected surface message type %q", message.Type)

		libOpentelemetry.HandleSpanError(&span, "Unexpected surface message type", err)

		return err
	}

	record := message.ReportData

	span.SetAttributes(
		attribute.String("app.request.report_id", record.ID),
	)

	logger.Infof("Surface acknowledged report %s", record.ID)

	if _, err := uc.CommitReport(ctx, &record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to commit acknowledged report", err)
		return err
	}

	uc.Surfaces.Acknowledge(record.ID)

	return nil
}
