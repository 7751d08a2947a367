package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/mongodb/archive"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/redis"
	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func Test_handleSurfaceAck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArchiveRepo := archive.NewMockRepository(ctrl)
	mockDayViewRepo := redis.NewMockDayViewRepository(ctrl)

	uc := &UseCase{
		ArchiveRepo: mockArchiveRepo,
		DayViewRepo: mockDayViewRepo,
		Surfaces:    NewSurfaceTracker(),
		Location:    time.UTC,
	}

	t.Run("acknowledged record is committed verbatim", func(t *testing.T) {
		record := model.ReportRecord{
			ID:     "patient-1756564200000",
			Name:   "Patient Report - Active",
			Type:   "Patient",
			Format: "list-pdf",
			Date:   "2025-08-30",
			Size:   "2.1 KB",
		}

		uc.Surfaces.Track(record.ID)
		uc.Surfaces.Open(record.ID)

		body, _ := json.Marshal(model.SurfaceAckMessage{
			Type:       constant.SurfaceAckType,
			ReportData: record,
		})

		mockArchiveRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, committed *model.ReportRecord) (bool, error) {
				assert.Equal(t, record.ID, committed.ID)
				assert.Equal(t, record.Name, committed.Name)
				assert.Equal(t, record.Size, committed.Size)

				return true, nil
			})
		mockDayViewRepo.EXPECT().
			AppendCurrentDay(gomock.Any(), gomock.Any()).
			Return(nil)

		err := uc.HandleSurfaceAck(context.Background(), body)

		assert.NoError(t, err)
		assert.Equal(t, ReportAcknowledged, uc.Surfaces.State(record.ID))
	})

	t.Run("unexpected message type is rejected before the archive", func(t *testing.T) {
		body, _ := json.Marshal(model.SurfaceAckMessage{
			Type:       "SOMETHING_ELSE",
			ReportData: model.ReportRecord{ID: "patient-9"},
		})

		err := uc.HandleSurfaceAck(context.Background(), body)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected surface message type")
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		err := uc.HandleSurfaceAck(context.Background(), []byte("{not json"))

		assert.Error(t, err)
	})

	t.Run("duplicate ack commits as a no-op", func(t *testing.T) {
		now := time.Now().UTC()
		record := model.ReportRecord{ID: "patient-2", Type: "Patient", Timestamp: &now}

		body, _ := json.Marshal(model.SurfaceAckMessage{
			Type:       constant.SurfaceAckType,
			ReportData: record,
		})

		mockArchiveRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := uc.HandleSurfaceAck(context.Background(), body)

		assert.NoError(t, err)
	})
}
