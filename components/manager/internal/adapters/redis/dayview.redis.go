// Package redis caches the day-partitioned view of the report archive.
package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	libRedis "github.com/LerianStudio/lib-commons/v2/commons/redis"
	goredis "github.com/redis/go-redis/v9"
)

// DayViewRepository persists the current-day marker and the cached
// current-day report slice. The manager is the single writer of both keys.
//
//go:generate mockgen --destination=dayview.mock.go --package=redis . DayViewRepository
type DayViewRepository interface {
	// GetDayMarker returns the calendar date the cache was built for, or ""
	// when the marker is unset.
	GetDayMarker(ctx context.Context) (string, error)

	// GetCurrentDay returns the cached slice. found is false on a cache miss.
	GetCurrentDay(ctx context.Context) (records []*model.ReportRecord, found bool, err error)

	// ReplaceCurrentDay atomically rebuilds the cache for a new day: the
	// record slice is replaced wholesale and the marker updated.
	ReplaceCurrentDay(ctx context.Context, day string, records []*model.ReportRecord) error

	// AppendCurrentDay appends one record to the cached slice.
	AppendCurrentDay(ctx context.Context, record *model.ReportRecord) error
}

// DayViewRedisRepository is a Redis implementation of the day-view cache.
type DayViewRedisRepository struct {
	conn *libRedis.RedisConnection
}

// Compile-time interface satisfaction check.
var _ DayViewRepository = (*DayViewRedisRepository)(nil)

// NewDayViewRedisRepository returns a new instance of DayViewRedisRepository using the given redis connection.
func NewDayViewRedisRepository(rc *libRedis.RedisConnection) *DayViewRedisRepository {
	return &DayViewRedisRepository{
		conn: rc,
	}
}

// GetDayMarker returns the persisted day marker.
func (r *DayViewRedisRepository) GetDayMarker(ctx context.Context) (string, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "redis.day_view.get_marker")
	defer span.End()

	client, err := r.conn.GetClient(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get redis client", err)
		return "", err
	}

	value, err := client.Get(ctx, constant.CurrentDayMarkerKey).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to get day marker", err)

		logger.Errorf("Failed to get day marker: %v", err)

		return "", err
	}

	return value, nil
}

// GetCurrentDay returns the cached current-day slice.
func (r *DayViewRedisRepository) GetCurrentDay(ctx context.Context) ([]*model.ReportRecord, bool, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "redis.day_view.get_current_day")
	defer span.End()

	client, err := r.conn.GetClient(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get redis client", err)
		return nil, false, err
	}

	payload, err := client.Get(ctx, constant.CurrentDayReportsKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return []*model.ReportRecord{}, false, nil
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to get current-day cache", err)

		logger.Errorf("Failed to get current-day cache: %v", err)

		return nil, false, err
	}

	records := make([]*model.ReportRecord, 0)
	if err := json.Unmarshal(payload, &records); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to decode current-day cache", err)
		return nil, false, err
	}

	return records, true, nil
}

// ReplaceCurrentDay replaces the cached slice with a single SET and moves the marker.
func (r *DayViewRedisRepository) ReplaceCurrentDay(ctx context.Context, day string, records []*model.ReportRecord) error {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "redis.day_view.replace_current_day")
	defer span.End()

	client, err := r.conn.GetClient(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get redis client", err)
		return err
	}

	if records == nil {
		records = []*model.ReportRecord{}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to encode current-day cache", err)
		return err
	}

	if err := client.Set(ctx, constant.CurrentDayReportsKey, payload, constant.CurrentDayTTL).Err(); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to replace current-day cache", err)

		logger.Errorf("Failed to replace current-day cache: %v", err)

		return err
	}

	if err := client.Set(ctx, constant.CurrentDayMarkerKey, day, constant.CurrentDayTTL).Err(); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to set day marker", err)

		logger.Errorf("Failed to set day marker: %v", err)

		return err
	}

	logger.Infof("Current-day cache rolled over to %s (%d records)", day, len(records))

	return nil
}

// AppendCurrentDay appends one record to the cached slice.
func (r *DayViewRedisRepository) AppendCurrentDay(ctx context.Context, record *model.ReportRecord) error {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "redis.day_view.append_current_day")
	defer span.End()

	client, err := r.conn.GetClient(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get redis client", err)
		return err
	}

	records := make([]*model.ReportRecord, 0)

	payload, err := client.Get(ctx, constant.CurrentDayReportsKey).Bytes()
	if err != nil && !errors.Is(err, goredis.Nil) {
		libOpentelemetry.HandleSpanError(&span, "Failed to get current-day cache", err)
		return err
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &records); err != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to decode current-day cache", err)
			return err
		}
	}

	records = append(records, record)

	updated, err := json.Marshal(records)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to encode current-day cache", err)
		return err
	}

	if err := client.Set(ctx, constant.CurrentDayReportsKey, updated, constant.CurrentDayTTL).Err(); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to append to current-day cache", err)

		logger.Errorf("Failed to append to current-day cache: %v", err)

		return err
	}

	return nil
}
