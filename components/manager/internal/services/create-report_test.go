package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/mongodb/archive"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/postgres/clinic"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/redis"
	"github.com/muzammil922/dentalcare-reporter/pkg"
	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"
	"github.com/muzammil922/dentalcare-reporter/pkg/rabbitmq"
	"github.com/muzammil922/dentalcare-reporter/pkg/storage"

	"github.com/LerianStudio/lib-commons/v2/commons/log"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type createReportMocks struct {
	clinicRepo  *clinic.MockRepository
	archiveRepo *archive.MockRepository
	dayViewRepo *redis.MockDayViewRepository
	producer    *rabbitmq.MockProducerRepository
	storage     *storage.MockObjectStorage
}

func newCreateReportUseCase(ctrl *gomock.Controller) (*UseCase, *createReportMocks) {
	mocks := &createReportMocks{
		clinicRepo:  clinic.NewMockRepository(ctrl),
		archiveRepo: archive.NewMockRepository(ctrl),
		dayViewRepo: redis.NewMockDayViewRepository(ctrl),
		producer:    rabbitmq.NewMockProducerRepository(ctrl),
		storage:     storage.NewMockObjectStorage(ctrl),
	}

	uc := &UseCase{
		ClinicRepo:   mocks.clinicRepo,
		ArchiveRepo:  mocks.archiveRepo,
		DayViewRepo:  mocks.dayViewRepo,
		RabbitMQRepo: mocks.producer,
		StorageRepo:  mocks.storage,
		Surfaces:     NewSurfaceTracker(),
		Breaker:      pkg.NewCircuitBreakerManager(&log.NoneLogger{}),
		Location:     time.UTC,
	}

	return uc, mocks
}

func Test_createReport_synchronousFormats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, mocks := newCreateReportUseCase(ctrl)

	input := &model.CreateReportInput{
		ReportType:   constant.ReportTypePatient,
		DisplayMode:  constant.DisplayModeList,
		OutputFormat: constant.OutputFormatCSV,
		StatusFilter: constant.StatusFilterAll,
	}

	mocks.clinicRepo.EXPECT().
		FindAll(gomock.Any()).
		Return(snapshotFixture(), nil)
	mocks.storage.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), "text/csv").
		DoAndReturn(func(_ context.Context, key string, _ any, _ string) (string, error) {
			assert.Contains(t, key, "Patient_Report_-_All")
			assert.Contains(t, key, ".csv")

			return key, nil
		})
	mocks.archiveRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(true, nil)
	mocks.dayViewRepo.EXPECT().
		AppendCurrentDay(gomock.Any(), gomock.Any()).
		Return(nil)

	record, err := uc.CreateReport(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, "Patient", record.Type)
	assert.Equal(t, "list-csv", record.Format)

	// Synchronous formats are committed before returning.
	assert.NotNil(t, record.Timestamp)
}

func Test_createReport_paginatedDocumentOpensSurface(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, mocks := newCreateReportUseCase(ctrl)

	input := &model.CreateReportInput{
		ReportType:   constant.ReportTypeAppointment,
		DisplayMode:  constant.DisplayModeDetails,
		OutputFormat: constant.OutputFormatPDF,
		StatusFilter: "scheduled",
	}

	mocks.clinicRepo.EXPECT().
		FindAll(gomock.Any()).
		Return(snapshotFixture(), nil)
	mocks.producer.EXPECT().
		ProducerDefault(gomock.Any(), constant.ReportsExchange, constant.RenderRoutingKey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, queueMessage any) (*string, error) {
			message, ok := queueMessage.(model.RenderRequestMessage)
			assert.True(t, ok)
			assert.Equal(t, constant.DisplayModeDetails, message.DisplayMode)
			assert.Equal(t, "appointment", message.ReportData.Type)

			return nil, nil
		})

	record, err := uc.CreateReport(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, record)

	// Nothing was archived; the record awaits the surface acknowledgement.
	assert.Nil(t, record.Timestamp)
	assert.Equal(t, SurfaceOpen, uc.Surfaces.State(record.ID))
}

func Test_createReport_publishFailureAbandonsSurface(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, mocks := newCreateReportUseCase(ctrl)

	input := &model.CreateReportInput{
		ReportType:   constant.ReportTypePatient,
		DisplayMode:  constant.DisplayModeList,
		OutputFormat: constant.OutputFormatPDF,
		StatusFilter: constant.StatusFilterAll,
	}

	mocks.clinicRepo.EXPECT().
		FindAll(gomock.Any()).
		Return(snapshotFixture(), nil)
	mocks.producer.EXPECT().
		ProducerDefault(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("broker unreachable"))

	record, err := uc.CreateReport(context.Background(), input)

	assert.Error(t, err)
	assert.Nil(t, record)

	var businessErr pkg.UnprocessableOperationError
	assert.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "RPT-0010", businessErr.Code)
}

func Test_createReport_clinicSnapshotUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, mocks := newCreateReportUseCase(ctrl)

	input := &model.CreateReportInput{
		ReportType:   constant.ReportTypePatient,
		DisplayMode:  constant.DisplayModeList,
		OutputFormat: constant.OutputFormatCSV,
		StatusFilter: constant.StatusFilterAll,
	}

	mocks.clinicRepo.EXPECT().
		FindAll(gomock.Any()).
		Return(nil, errors.New("connection refused"))

	record, err := uc.CreateReport(context.Background(), input)

	assert.Error(t, err)
	assert.Nil(t, record)

	var businessErr pkg.UnprocessableOperationError
	assert.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "RPT-0011", businessErr.Code)
}

func Test_createReport_storageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, mocks := newCreateReportUseCase(ctrl)

	input := &model.CreateReportInput{
		ReportType:   constant.ReportTypeStaff,
		DisplayMode:  constant.DisplayModeList,
		OutputFormat: constant.OutputFormatExcel,
		StatusFilter: constant.StatusFilterAll,
	}

	mocks.clinicRepo.EXPECT().
		FindAll(gomock.Any()).
		Return(snapshotFixture(), nil)
	mocks.storage.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("bucket unavailable"))

	record, err := uc.CreateReport(context.Background(), input)

	assert.Error(t, err)
	assert.Nil(t, record)

	var businessErr pkg.UnprocessableOperationError
	assert.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "RPT-0014", businessErr.Code)
}
