package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"
	"github.com/muzammil922/dentalcare-reporter/pkg/pdf"
	"github.com/muzammil922/dentalcare-reporter/pkg/pongo"
	"github.com/muzammil922/dentalcare-reporter/pkg/rabbitmq"
	"github.com/muzammil922/dentalcare-reporter/pkg/storage"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func renderRequestFixture() []byte {
	record := model.ReportRecord{
		ID:     "patient-1756564200000",
		Name:   "Patient Report - Active",
		Type:   "Patient",
		Format: "list-pdf",
		Date:   "2025-08-30",
		Size:   "1.2 KB",
		Data: model.ReportData{
			Filter:        "active",
			TotalPatients: 1,
			Patients: []model.PatientRow{
				{Name: "Ayesha Khan", Age: "34", Gender: "female", Phone: "0300-1234567", Email: "N/A", Status: "Active", RegistrationDate: "2024-03-01"},
			},
			StatusCounts: map[string]int{"active": 1},
		},
	}

	body, _ := json.Marshal(model.RenderRequestMessage{
		DisplayMode: constant.DisplayModeList,
		ReportData:  record,
	})

	return body
}

func Test_handleRenderRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPdfPool := pdf.NewMockPDFGenerator(ctrl)
	mockStorage := storage.NewMockObjectStorage(ctrl)
	mockProducer := rabbitmq.NewMockProducerRepository(ctrl)

	uc := &UseCase{
		Renderer:     pongo.NewTemplateRenderer(),
		PdfPool:      mockPdfPool,
		StorageRepo:  mockStorage,
		RabbitMQRepo: mockProducer,
	}

	t.Run("render print store acknowledge", func(t *testing.T) {
		printed := []byte("%PDF-1.7 fake content")

		mockPdfPool.EXPECT().
			Print(gomock.Any()).
			DoAndReturn(func(html string) ([]byte, error) {
				assert.Contains(t, html, "Ayesha Khan")

				return printed, nil
			})
		mockStorage.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), "application/pdf").
			DoAndReturn(func(_ context.Context, key string, _ any, _ string) (string, error) {
				assert.Contains(t, key, "Patient_Report_-_Active")
				assert.Contains(t, key, ".pdf")

				return key, nil
			})
		mockProducer.EXPECT().
			ProducerDefault(gomock.Any(), constant.ReportsExchange, constant.AckRoutingKey, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, queueMessage any) (*string, error) {
				ack, ok := queueMessage.(model.SurfaceAckMessage)
				assert.True(t, ok)
				assert.Equal(t, constant.SurfaceAckType, ack.Type)

				// The record is echoed verbatim.
				assert.Equal(t, "patient-1756564200000", ack.ReportData.ID)
				assert.Equal(t, "1.2 KB", ack.ReportData.Size)

				return nil, nil
			})

		err := uc.HandleRenderRequest(context.Background(), renderRequestFixture())

		assert.NoError(t, err)
	})

	t.Run("print failure propagates and nothing is acknowledged", func(t *testing.T) {
		mockPdfPool.EXPECT().
			Print(gomock.Any()).
			Return(nil, errors.New("chrome timed out"))

		err := uc.HandleRenderRequest(context.Background(), renderRequestFixture())

		assert.Error(t, err)
	})

	t.Run("storage failure propagates and nothing is acknowledged", func(t *testing.T) {
		mockPdfPool.EXPECT().
			Print(gomock.Any()).
			Return([]byte("%PDF-1.7"), nil)
		mockStorage.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket unavailable"))

		err := uc.HandleRenderRequest(context.Background(), renderRequestFixture())

		assert.Error(t, err)
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		err := uc.HandleRenderRequest(context.Background(), []byte("{not json"))

		assert.Error(t, err)
	})
}
