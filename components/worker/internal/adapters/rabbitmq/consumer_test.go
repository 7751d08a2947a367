package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg"
	pkgConstant "github.com/muzammil922/dentalcare-reporter/pkg/constant"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func Test_isRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil error is not retryable", err: nil, retryable: false},
		{name: "context canceled is not retryable", err: context.Canceled, retryable: false},
		{name: "deadline exceeded is not retryable", err: context.DeadlineExceeded, retryable: false},
		{name: "business code in message is not retryable", err: errors.New("RPT-0008 - invalid output format"), retryable: false},
		{name: "validation error type is not retryable", err: pkg.ValidationError{Code: "RPT-0007", Message: "invalid display mode"}, retryable: false},
		{name: "not found error type is not retryable", err: pkg.EntityNotFoundError{Code: "RPT-0001"}, retryable: false},
		{name: "unprocessable error type is not retryable", err: pkg.UnprocessableOperationError{Code: "RPT-0011"}, retryable: false},
		{name: "wrapped business error is not retryable", err: fmt.Errorf("handler: %w", pkg.ValidationError{Code: "RPT-0007"}), retryable: false},
		{name: "network error is retryable", err: errors.New("connection reset by peer"), retryable: true},
		{name: "unknown error defaults to retryable", err: errors.New("boom"), retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryable(tt.err))
		})
	}
}

func Test_getRetryCount(t *testing.T) {
	tests := []struct {
		name     string
		headers  amqp091.Table
		expected int
	}{
		{name: "nil headers", headers: nil, expected: 0},
		{name: "missing header", headers: amqp091.Table{}, expected: 0},
		{name: "int value", headers: amqp091.Table{pkgConstant.RetryCountHeader: 3}, expected: 3},
		{name: "int32 value", headers: amqp091.Table{pkgConstant.RetryCountHeader: int32(2)}, expected: 2},
		{name: "int64 value", headers: amqp091.Table{pkgConstant.RetryCountHeader: int64(4)}, expected: 4},
		{name: "float64 value", headers: amqp091.Table{pkgConstant.RetryCountHeader: float64(1)}, expected: 1},
		{name: "negative value clamps to zero", headers: amqp091.Table{pkgConstant.RetryCountHeader: -2}, expected: 0},
		{name: "unparseable value", headers: amqp091.Table{pkgConstant.RetryCountHeader: "three"}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getRetryCount(amqp091.Delivery{Headers: tt.headers}))
		})
	}
}

func Test_retryHeaders(t *testing.T) {
	delivery := amqp091.Delivery{
		Headers: amqp091.Table{
			"x-request-id":               "req-1",
			pkgConstant.RetryCountHeader: 2,
		},
	}

	headers := retryHeaders(delivery, errors.New("connection reset by peer"), 2)

	assert.Equal(t, int32(3), headers[pkgConstant.RetryCountHeader])
	assert.Equal(t, "connection reset by peer", headers[pkgConstant.RetryFailureReasonHeader])
	assert.Equal(t, "req-1", headers["x-request-id"])

	// The original delivery headers are left untouched.
	assert.Equal(t, 2, delivery.Headers[pkgConstant.RetryCountHeader])
}

func Test_truncateFailureReason(t *testing.T) {
	assert.Equal(t, "boom", truncateFailureReason("boom"))

	long := strings.Repeat("x", pkgConstant.RetryFailureReasonMaxLen+50)
	truncated := truncateFailureReason(long)

	assert.Len(t, truncated, pkgConstant.RetryFailureReasonMaxLen)
}

func Test_calculateBackoff(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		backoff := calculateBackoff(attempt)

		minimum := pkgConstant.RetryInitialBackoff * time.Duration(1<<attempt)
		if minimum > pkgConstant.RetryMaxBackoff {
			minimum = pkgConstant.RetryMaxBackoff
		}

		assert.GreaterOrEqual(t, backoff, minimum, "attempt %d", attempt)
		assert.LessOrEqual(t, backoff, minimum+pkgConstant.RetryJitterMax, "attempt %d", attempt)
	}
}
