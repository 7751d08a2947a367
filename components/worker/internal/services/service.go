// Package services implements the rendering pipeline of the worker component.
package services

import (
	"github.com/muzammil922/dentalcare-reporter/pkg/pdf"
	"github.com/muzammil922/dentalcare-reporter/pkg/pongo"
	"github.com/muzammil922/dentalcare-reporter/pkg/rabbitmq"
	"github.com/muzammil922/dentalcare-reporter/pkg/storage"
)

// UseCase wires the rendering surface together: template rendering, PDF
// printing, artifact storage and the acknowledgement channel back to the
// manager.
type UseCase struct {
	// Renderer turns a report record into the HTML the PDF pool prints.
	Renderer *pongo.TemplateRenderer

	// PdfPool prints rendered HTML to PDF bytes.
	PdfPool pdf.PDFGenerator

	// StorageRepo stores the printed artifact.
	StorageRepo storage.ObjectStorage

	// RabbitMQRepo publishes the surface acknowledgement to the manager.
	RabbitMQRepo rabbitmq.ProducerRepository
}
