package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/mongodb/archive"
	"github.com/muzammil922/dentalcare-reporter/pkg"
	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"
	"github.com/muzammil922/dentalcare-reporter/pkg/storage"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/mock/gomock"
)

func archivedRecordFixture() *model.ReportRecord {
	ts := time.Date(2025, 8, 30, 14, 30, 0, 0, time.UTC)

	return &model.ReportRecord{
		ID:        "patient-1756564200000",
		Name:      "Patient Report - Active",
		Type:      "Patient",
		Format:    "list-csv",
		Date:      "2025-08-30",
		Size:      "1.2 KB",
		Timestamp: &ts,
	}
}

func Test_getReportByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArchive := archive.NewMockRepository(ctrl)
	uc := &UseCase{ArchiveRepo: mockArchive}

	t.Run("returns the archived record", func(t *testing.T) {
		mockArchive.EXPECT().
			FindByID(gomock.Any(), "patient-1756564200000").
			Return(archivedRecordFixture(), nil)

		record, err := uc.GetReportByID(context.Background(), "patient-1756564200000")

		assert.NoError(t, err)
		assert.Equal(t, "Patient Report - Active", record.Name)
	})

	t.Run("missing record maps to entity not found", func(t *testing.T) {
		mockArchive.EXPECT().
			FindByID(gomock.Any(), "patient-999").
			Return(nil, mongo.ErrNoDocuments)

		record, err := uc.GetReportByID(context.Background(), "patient-999")

		assert.Nil(t, record)

		var notFoundErr pkg.EntityNotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "RPT-0005", notFoundErr.Code)
	})
}

func Test_downloadReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArchive := archive.NewMockRepository(ctrl)
	mockStorage := storage.NewMockObjectStorage(ctrl)

	uc := &UseCase{
		ArchiveRepo: mockArchive,
		StorageRepo: mockStorage,
	}

	t.Run("reconstructs the object key from the record", func(t *testing.T) {
		mockArchive.EXPECT().
			FindByID(gomock.Any(), "patient-1756564200000").
			Return(archivedRecordFixture(), nil)
		mockStorage.EXPECT().
			Download(gomock.Any(), "Patient_Report_-_Active_2025-08-30.csv").
			Return(io.NopCloser(bytes.NewReader([]byte("Name,Age\n"))), nil)

		fileBytes, fileName, contentType, err := uc.DownloadReport(context.Background(), "patient-1756564200000")

		assert.NoError(t, err)
		assert.Equal(t, []byte("Name,Age\n"), fileBytes)
		assert.Equal(t, "Patient_Report_-_Active_2025-08-30.csv", fileName)
		assert.Equal(t, "text/csv", contentType)
	})

	t.Run("missing record propagates entity not found", func(t *testing.T) {
		mockArchive.EXPECT().
			FindByID(gomock.Any(), "patient-999").
			Return(nil, mongo.ErrNoDocuments)

		_, _, _, err := uc.DownloadReport(context.Background(), "patient-999")

		var notFoundErr pkg.EntityNotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})

	t.Run("storage failure maps to artifact storage unavailable", func(t *testing.T) {
		mockArchive.EXPECT().
			FindByID(gomock.Any(), "patient-1756564200000").
			Return(archivedRecordFixture(), nil)
		mockStorage.EXPECT().
			Download(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("bucket unavailable"))

		_, _, _, err := uc.DownloadReport(context.Background(), "patient-1756564200000")

		var businessErr pkg.UnprocessableOperationError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, "RPT-0014", businessErr.Code)
	})
}

func Test_presignedDownloadURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArchive := archive.NewMockRepository(ctrl)
	mockStorage := storage.NewMockObjectStorage(ctrl)

	uc := &UseCase{
		ArchiveRepo: mockArchive,
		StorageRepo: mockStorage,
	}

	mockArchive.EXPECT().
		FindByID(gomock.Any(), "patient-1756564200000").
		Return(archivedRecordFixture(), nil)
	mockStorage.EXPECT().
		GeneratePresignedURL(gomock.Any(), "Patient_Report_-_Active_2025-08-30.csv", constant.PresignedURLExpiry).
		Return("https://storage.example/signed", nil)

	url, err := uc.PresignedDownloadURL(context.Background(), "patient-1756564200000")

	assert.NoError(t, err)
	assert.Equal(t, "https://storage.example/signed", url)
}
