package recorder

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"
)

// LambdaHandler adapts the service to the function runtime. The payload is
// taken raw so a mistyped event still yields a 500 response rather than an
// invocation error. flush runs after every invocation and may be nil.
func LambdaHandler(s *Service, flush func(context.Context) error) func(context.Context, json.RawMessage) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
		var requestID, invokedARN string
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			requestID = lc.AwsRequestID
			invokedARN = lc.InvokedFunctionArn
		}

		res := s.Handle(ctx, payload, invokedARN)
		s.logger.Debug("invocation finished",
			zap.String("request_id", requestID),
			zap.Int("status", res.StatusCode),
		)

		if flush != nil {
			if err := flush(ctx); err != nil {
				s.logger.Warn("flush traces failed", zap.String("request_id", requestID), zap.Error(err))
			}
		}
		return res.Response(), nil
	}
}
