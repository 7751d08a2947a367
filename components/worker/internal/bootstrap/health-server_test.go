package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg/pdf"

	"github.com/LerianStudio/lib-commons/v2/commons/log"
	"github.com/stretchr/testify/assert"
)

func Test_healthServer_liveness(t *testing.T) {
	hs := NewHealthServer("0", nil, nil, &log.NoneLogger{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	hs.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp["status"])
}

func Test_healthServer_readinessWithoutDependencies(t *testing.T) {
	hs := NewHealthServer("0", nil, nil, &log.NoneLogger{})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	hs.handleReady(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp["status"])
}

func Test_healthServer_checkPDFPool(t *testing.T) {
	hs := &HealthServer{logger: &log.NoneLogger{}}

	assert.Equal(t, "not_ready", hs.checkPDFPool().Status)

	hs.pdfPool = pdf.NewWorkerPool(1, time.Second, &log.NoneLogger{})
	defer hs.pdfPool.Close()

	assert.Equal(t, "ready", hs.checkPDFPool().Status)
}

func Test_healthServer_checkRabbitMQ_notConfigured(t *testing.T) {
	hs := &HealthServer{logger: &log.NoneLogger{}}

	status := hs.checkRabbitMQ()

	assert.Equal(t, "not_ready", status.Status)
	assert.Equal(t, "connection not configured", status.Message)
}
