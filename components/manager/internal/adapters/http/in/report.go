package in

import (
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/services"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"
	"github.com/muzammil922/dentalcare-reporter/pkg/net/http"

	"github.com/LerianStudio/lib-commons/v2/commons"
	"github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler exposes the report generation and archive views over HTTP.
type ReportHandler struct {
	Service *services.UseCase
}

// CreateReport is a method that creates a report.
//
//	@Summary		Create a Report
//	@Description	Generate a report over the clinic collections with the input payload
//	@Tags			Reports
//	@Accept			json
//	@Produce		json
//	@Param			reports	body		model.CreateReportInput	true	"Report Input"
//	@Success		200		{object}	model.ReportRecord
//	@Router			/v1/reports [post]
func (rh *ReportHandler) CreateReport(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.create_report")
	defer span.End()

	c.SetUserContext(ctx)

	payload := p.(*model.CreateReportInput)
	logger.Infof("Request to create a report with details: %#v", payload)

	record, err := rh.Service.CreateReport(ctx, payload)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to create report", err)

		return http.WithError(c, err)
	}

	logger.Infof("Successfully created report %s", record.ID)

	return http.OK(c, record)
}

// GetAllReports returns the full archive, newest first.
//
//	@Summary		List archived reports
//	@Description	Every report ever committed to the archive
//	@Tags			Reports
//	@Produce		json
//	@Success		200	{array}	model.ReportRecord
//	@Router			/v1/reports [get]
func (rh *ReportHandler) GetAllReports(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_all_reports")
	defer span.End()

	c.SetUserContext(ctx)

	records, err := rh.Service.GetAllReports(ctx)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to get all reports", err)

		return http.WithError(c, err)
	}

	logger.Infof("Returning %d archived reports", len(records))

	return http.OK(c, records)
}

// GetReport returns one archived report by id.
//
//	@Summary		Get an archived report
//	@Description	The archived report record with the given id
//	@Tags			Reports
//	@Produce		json
//	@Param			id	path		string	true	"Report ID"
//	@Success		200	{object}	model.ReportRecord
//	@Router			/v1/reports/{id} [get]
func (rh *ReportHandler) GetReport(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_report")
	defer span.End()

	c.SetUserContext(ctx)

	id := c.Params("id")

	record, err := rh.Service.GetReportByID(ctx, id)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to get report by id", err)

		return http.WithError(c, err)
	}

	logger.Infof("Returning report %s", record.ID)

	return http.OK(c, record)
}

// GetDownloadReport streams the stored artifact of an archived report. With
// ?presigned=true it returns a time-limited storage URL instead of the bytes.
//
//	@Summary		Download a report artifact
//	@Description	The stored artifact (pdf, xlsx or csv) of the archived report
//	@Tags			Reports
//	@Param			id			path	string	true	"Report ID"
//	@Param			presigned	query	bool	false	"Return a presigned URL instead of the file"
//	@Success		200
//	@Router			/v1/reports/{id}/download [get]
func (rh *ReportHandler) GetDownloadReport(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_download_report")
	defer span.End()

	c.SetUserContext(ctx)

	id := c.Params("id")

	if c.QueryBool("presigned") {
		url, err := rh.Service.PresignedDownloadURL(ctx, id)
		if err != nil {
			opentelemetry.HandleSpanError(&span, "Failed to generate presigned download URL", err)

			return http.WithError(c, err)
		}

		return http.OK(c, fiber.Map{"url": url})
	}

	fileBytes, fileName, contentType, err := rh.Service.DownloadReport(ctx, id)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to download report artifact", err)

		return http.WithError(c, err)
	}

	logger.Infof("Serving artifact %s (%d bytes)", fileName, len(fileBytes))

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)

	return c.Status(fiber.StatusOK).Send(fileBytes)
}

// GetCurrentDayReports returns the day-partitioned derived view.
//
//	@Summary		List today's reports
//	@Description	Reports committed during the current day in the clinic timezone
//	@Tags			Reports
//	@Produce		json
//	@Success		200	{array}	model.ReportRecord
//	@Router			/v1/reports/current-day [get]
func (rh *ReportHandler) GetCurrentDayReports(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_current_day_reports")
	defer span.End()

	c.SetUserContext(ctx)

	records, err := rh.Service.GetCurrentDayReports(ctx)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to get current-day reports", err)

		return http.WithError(c, err)
	}

	logger.Infof("Returning %d current-day reports", len(records))

	return http.OK(c, records)
}

// GetReportsByDate returns the archive filtered to one calendar date.
//
//	@Summary		List reports for a date
//	@Description	Reports whose commit instant falls on the given date (YYYY-MM-DD) in the clinic timezone
//	@Tags			Reports
//	@Produce		json
//	@Param			date	path	string	true	"Calendar date"
//	@Success		200		{array}	model.ReportRecord
//	@Router			/v1/reports/by-date/{date} [get]
func (rh *ReportHandler) GetReportsByDate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_reports_by_date")
	defer span.End()

	c.SetUserContext(ctx)

	date := c.Params("date")

	records, err := rh.Service.GetReportsForDate(ctx, date)
	if err != nil {
		opentelemetry.HandleSpanError(&span, "Failed to get reports by date", err)

		return http.WithError(c, err)
	}

	logger.Infof("Returning %d reports for %s", len(records), date)

	return http.OK(c, records)
}
