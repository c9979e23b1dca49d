package api

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
	"github.com/phrazzld/todos-api/internal/api/shared"
)

// HandleAPIGateway adapts an API Gateway REST proxy event to Handle. The
// gateway's request ID becomes the trace ID so logs correlate with access
// logs. The returned error is always nil; failures are 400 responses.
func (h *TaskHandler) HandleAPIGateway(
	ctx context.Context,
	event events.APIGatewayProxyRequest,
) (events.APIGatewayProxyResponse, error) {
	ctx = shared.WithTraceID(ctx, event.RequestContext.RequestID)

	body := event.Body
	if event.IsBase64Encoded && body != "" {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			resp := h.failure(ctx, ErrMalformedBody)
			return toProxyResponse(resp), nil
		}
		body = string(decoded)
	}

	resp := h.Handle(ctx, Request{
		Method:         event.HTTPMethod,
		Resource:       event.Resource,
		PathParameters: event.PathParameters,
		Body:           body,
	})
	return toProxyResponse(resp), nil
}

func toProxyResponse(resp Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}
