package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/your-org/mediaflow-recorder/pkg/observability"
	"github.com/your-org/mediaflow-recorder/pkg/table"
)

// SuccessMessage is the body returned for a recorded upload.
const SuccessMessage = "Metadata saved to DynamoDB and SNS notification sent"

var tracer = otel.Tracer("github.com/your-org/mediaflow-recorder/internal/recorder")

// Publisher announces written records. Implemented by kafka.Producer.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any, headers map[string]string) error
}

// Service turns upload notifications into metadata records.
type Service struct {
	table     table.Writer
	publisher Publisher
	logger    *zap.Logger
	metrics   *observability.Metrics
	now       func() time.Time
	newID     func() string
}

type Params struct {
	Table table.Writer
	// Publisher is optional; nil disables post-write notifications.
	Publisher Publisher
	Logger    *zap.Logger
	Metrics   *observability.Metrics
	Now       func() time.Time
	NewID     func() string
}

// Result is the outcome of one invocation.
type Result struct {
	StatusCode int
	Message    string
	Record     *Record
	Err        error
}

// NewService constructs a recorder Service.
func NewService(p Params) *Service {
	s := &Service{
		table:     p.Table,
		publisher: p.Publisher,
		logger:    p.Logger,
		metrics:   p.Metrics,
		now:       p.Now,
		newID:     p.NewID,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics(prometheus.NewRegistry())
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Record writes one metadata row for the first record of ev. invokedARN
// identifies the invocation; its account field becomes the row's Account.
// A typed event cannot tell an absent size from zero; Handle checks that.
func (s *Service) Record(ctx context.Context, ev events.S3Event, invokedARN string) (*Record, error) {
	u, dropped, err := firstUpload(ev)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		s.metrics.DroppedRecords.Add(float64(dropped))
		s.logger.Warn("event carries more than one record, only the first is recorded",
			zap.Int("dropped", dropped),
			zap.String("bucket", u.Bucket),
			zap.String("key", u.Key),
		)
	}

	account, err := AccountFromARN(invokedARN)
	if err != nil {
		return nil, err
	}

	rec, err := newRecord(s.newID(), account, u, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	if err := s.table.Put(ctx, rec.row()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	s.metrics.RecordsWritten.Inc()

	s.notify(ctx, rec, u)
	return &rec, nil
}

// notify never fails the invocation: the row is already committed.
func (s *Service) notify(ctx context.Context, rec Record, u upload) {
	if s.publisher == nil {
		return
	}
	headers := map[string]string{
		"record_id":  rec.ID,
		"event_type": EventTypeRecorded,
	}
	if err := s.publisher.PublishJSON(ctx, rec.ID, recordedEvent(rec, u), headers); err != nil {
		s.metrics.NotifyFailures.Inc()
		s.logger.Warn("publish recorded event failed", zap.String("record_id", rec.ID), zap.Error(err))
	}
}

// Handle decodes payload as an upload notification, runs Record and folds the
// outcome into a 200 or 500 Result. Decode failures are folded like any other.
func (s *Service) Handle(ctx context.Context, payload []byte, invokedARN string) Result {
	return s.handle(ctx, func() (events.S3Event, error) {
		return decodeEvent(payload)
	}, invokedARN)
}

// HandleReader is Handle for a notification body that still has to be read.
func (s *Service) HandleReader(ctx context.Context, r io.Reader, invokedARN string) Result {
	return s.handle(ctx, func() (events.S3Event, error) {
		payload, err := io.ReadAll(r)
		if err != nil {
			return events.S3Event{}, fmt.Errorf("%w: read event: %v", ErrMalformedInput, err)
		}
		return decodeEvent(payload)
	}, invokedARN)
}

func (s *Service) handle(ctx context.Context, decode func() (events.S3Event, error), invokedARN string) Result {
	ctx, span := tracer.Start(ctx, "recorder.Handle")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.HandleLatency.Observe(time.Since(start).Seconds())
	}()

	var rec *Record
	ev, err := decode()
	if err == nil {
		rec, err = s.Record(ctx, ev, invokedARN)
	}
	if err != nil {
		kind := Kind(err)
		s.metrics.Failures.WithLabelValues(kind).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		s.logger.Error("record upload metadata failed", zap.String("kind", kind), zap.Error(err))
		return Result{
			StatusCode: http.StatusInternalServerError,
			Message:    "Error: " + err.Error(),
			Err:        err,
		}
	}

	span.SetAttributes(
		attribute.String("recorder.record_id", rec.ID),
		attribute.String("recorder.account", rec.Account),
		attribute.Int64("recorder.file_size", rec.FileSize),
	)
	s.logger.Info("upload metadata recorded",
		zap.String("record_id", rec.ID),
		zap.String("file_name", rec.FileName),
		zap.Int64("file_size", rec.FileSize),
	)
	return Result{
		StatusCode: http.StatusOK,
		Message:    SuccessMessage,
		Record:     rec,
	}
}

// Response renders r the way the function returns it: a status code and a
// JSON-encoded message string as body.
func (r Result) Response() events.APIGatewayProxyResponse {
	body, err := json.Marshal(r.Message)
	if err != nil {
		body = []byte(`"Error"`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
