package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/mongodb/archive"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/redis"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func Test_commitReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArchiveRepo := archive.NewMockRepository(ctrl)
	mockDayViewRepo := redis.NewMockDayViewRepository(ctrl)

	uc := &UseCase{
		ArchiveRepo: mockArchiveRepo,
		DayViewRepo: mockDayViewRepo,
		Location:    time.UTC,
	}

	t.Run("first commit stamps timestamp and appends to current day", func(t *testing.T) {
		record := &model.ReportRecord{ID: "patient-1", Type: "Patient"}

		mockArchiveRepo.EXPECT().
			Insert(gomock.Any(), record).
			Return(true, nil)
		mockDayViewRepo.EXPECT().
			AppendCurrentDay(gomock.Any(), record).
			Return(nil)

		inserted, err := uc.CommitReport(context.Background(), record)

		assert.NoError(t, err)
		assert.True(t, inserted)
		assert.NotNil(t, record.Timestamp)
	})

	t.Run("second commit of the same id is a no-op", func(t *testing.T) {
		now := time.Now().UTC()
		record := &model.ReportRecord{ID: "patient-1", Type: "Patient", Timestamp: &now}

		mockArchiveRepo.EXPECT().
			Insert(gomock.Any(), record).
			Return(false, nil)

		inserted, err := uc.CommitReport(context.Background(), record)

		assert.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("cache append failure does not fail the commit", func(t *testing.T) {
		record := &model.ReportRecord{ID: "patient-2", Type: "Patient"}

		mockArchiveRepo.EXPECT().
			Insert(gomock.Any(), record).
			Return(true, nil)
		mockDayViewRepo.EXPECT().
			AppendCurrentDay(gomock.Any(), record).
			Return(errors.New("redis unavailable"))

		inserted, err := uc.CommitReport(context.Background(), record)

		assert.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("record of a past day skips the current-day cache", func(t *testing.T) {
		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		record := &model.ReportRecord{ID: "patient-3", Type: "Patient", Timestamp: &yesterday}

		mockArchiveRepo.EXPECT().
			Insert(gomock.Any(), record).
			Return(true, nil)

		inserted, err := uc.CommitReport(context.Background(), record)

		assert.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("archive error is returned", func(t *testing.T) {
		record := &model.ReportRecord{ID: "patient-4", Type: "Patient"}

		mockArchiveRepo.EXPECT().
			Insert(gomock.Any(), record).
			Return(false, errors.New("mongo unavailable"))

		inserted, err := uc.CommitReport(context.Background(), record)

		assert.Error(t, err)
		assert.False(t, inserted)
	})
}
