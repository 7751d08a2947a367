package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/mongodb/archive"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/redis"
	"github.com/muzammil922/dentalcare-reporter/pkg"
	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func Test_getAllReports(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArchiveRepo := archive.NewMockRepository(ctrl)

	uc := &UseCase{
		ArchiveRepo: mockArchiveRepo,
		Location:    time.UTC,
	}

	records := []*model.ReportRecord{
		{ID: "patient-2", Type: "Patient"},
		{ID: "patient-1", Type: "Patient"},
	}

	t.Run("returns the full archive", func(t *testing.T) {
		mockArchiveRepo.EXPECT().
			FindAll(gomock.Any()).
			Return(records, nil)

		result, err := uc.GetAllReports(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("archive error is returned", func(t *testing.T) {
		mockArchiveRepo.EXPECT().
			FindAll(gomock.Any()).
			Return(nil, errors.New("mongo unavailable"))

		result, err := uc.GetAllReports(context.Background())

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func Test_getCurrentDayReports(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArchiveRepo := archive.NewMockRepository(ctrl)
	mockDayViewRepo := redis.NewMockDayViewRepository(ctrl)

	uc := &UseCase{
		ArchiveRepo: mockArchiveRepo,
		DayViewRepo: mockDayViewRepo,
		Location:    time.UTC,
	}

	today := time.Now().UTC().Format(constant.DateOnlyLayout)
	cached := []*model.ReportRecord{{ID: "patient-1", Type: "Patient"}}

	t.Run("marker matches today so the cache is served", func(t *testing.T) {
		mockDayViewRepo.EXPECT().
			GetDayMarker(gomock.Any()).
			Return(today, nil)
		mockDayViewRepo.EXPECT().
			GetCurrentDay(gomock.Any()).
			Return(cached, true, nil)

		result, err := uc.GetCurrentDayReports(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, cached, result)
	})

	t.Run("stale marker triggers rollover from the archive", func(t *testing.T) {
		rebuilt := []*model.ReportRecord{{ID: "patient-2", Type: "Patient"}}

		mockDayViewRepo.EXPECT().
			GetDayMarker(gomock.Any()).
			Return("2020-01-01", nil)
		mockArchiveRepo.EXPECT().
			FindByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, from, to time.Time) ([]*model.ReportRecord, error) {
				assert.Equal(t, today, from.Format(constant.DateOnlyLayout))
				assert.Equal(t, 24*time.Hour, to.Sub(from))

				return rebuilt, nil
			})
		mockDayViewRepo.EXPECT().
			ReplaceCurrentDay(gomock.Any(), today, rebuilt).
			Return(nil)

		result, err := uc.GetCurrentDayReports(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, rebuilt, result)
	})

	t.Run("missing cache with fresh marker also rebuilds", func(t *testing.T) {
		mockDayViewRepo.EXPECT().
			GetDayMarker(gomock.Any()).
			Return(today, nil)
		mockDayViewRepo.EXPECT().
			GetCurrentDay(gomock.Any()).
			Return(nil, false, nil)
		mockArchiveRepo.EXPECT().
			FindByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]*model.ReportRecord{}, nil)
		mockDayViewRepo.EXPECT().
			ReplaceCurrentDay(gomock.Any(), today, gomock.Any()).
			Return(nil)

		result, err := uc.GetCurrentDayReports(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, result)
	})
}

func Test_getReportsForDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArchiveRepo := archive.NewMockRepository(ctrl)
	mockDayViewRepo := redis.NewMockDayViewRepository(ctrl)

	uc := &UseCase{
		ArchiveRepo: mockArchiveRepo,
		DayViewRepo: mockDayViewRepo,
		Location:    time.UTC,
	}

	t.Run("reads exactly one day window and touches no caches", func(t *testing.T) {
		records := []*model.ReportRecord{{ID: "patient-1", Type: "Patient"}}

		// No day-marker or cache expectations: a historical read must not
		// mutate the current-day view.
		mockArchiveRepo.EXPECT().
			FindByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, from, to time.Time) ([]*model.ReportRecord, error) {
				assert.Equal(t, "2025-08-15", from.Format(constant.DateOnlyLayout))
				assert.Equal(t, 24*time.Hour, to.Sub(from))

				return records, nil
			})

		result, err := uc.GetReportsForDate(context.Background(), "2025-08-15")

		assert.NoError(t, err)
		assert.Equal(t, records, result)
	})

	t.Run("invalid date is a business error", func(t *testing.T) {
		result, err := uc.GetReportsForDate(context.Background(), "15-08-2025")

		assert.Error(t, err)
		assert.Nil(t, result)

		var businessErr pkg.ValidationError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, "RPT-0009", businessErr.Code)
	})
}
