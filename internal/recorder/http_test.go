package recorder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/your-org/mediaflow-recorder/pkg/observability"
)

func TestHTTPHandlerEvents(t *testing.T) {
	f := newFixture(t)
	h := NewHTTPHandler(f.svc, zap.NewNop(), "arn:minio:webhook:us-east-1:000000000000:recorder")

	t.Run("records notification", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(photoEventRaw)))

		assert.Equal(t, http.StatusOK, rec.Code)
		var msg string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		assert.Equal(t, SuccessMessage, msg)

		require.Len(t, f.table.rows, 1)
		assert.Equal(t, "000000000000", f.table.rows[0].Account)
	})

	t.Run("invalid body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events", strings.NewReader("{not json")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var msg string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		assert.True(t, strings.HasPrefix(msg, "Error: malformed input"))
		assert.Len(t, f.table.rows, 1)
	})

	t.Run("missing s3 key", func(t *testing.T) {
		body := `{"Records":[{"userIdentity":{"principalId":"AIDAEXAMPLE"}}]}`
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Len(t, f.table.rows, 1)
	})
}

func TestHTTPHandlerHealthAndMetrics(t *testing.T) {
	f := newFixture(t)
	h := NewHTTPHandler(f.svc, zap.NewNop(), testARN)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "recorder_records_written_total")
}

func TestHTTPHandlerDecodeFailureSharesFailurePath(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	tbl := &fakeTable{}
	svc := NewService(Params{Table: tbl, Logger: zap.New(core), Metrics: metrics})
	h := NewHTTPHandler(svc, zap.NewNop(), testARN)

	rec := httptest.NewRecorder()
	body := `{"Records":[{"s3":{"object":{"size":"big"}}}]}`
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, tbl.rows)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Failures.WithLabelValues("malformed_input")))

	failures := logs.FilterMessage("record upload metadata failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "malformed_input", failures[0].ContextMap()["kind"])
}

func TestHTTPHandlerOversizedBody(t *testing.T) {
	f := newFixture(t)
	h := NewHTTPHandler(f.svc, zap.NewNop(), testARN)

	body := `{"Records":[],"pad":"` + strings.Repeat("x", maxEventBytes) + `"}`
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var msg string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.True(t, strings.HasPrefix(msg, "Error: malformed input: read event"))
	assert.Empty(t, f.table.rows)
}
