package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"intent-chat/chat"
	"intent-chat/config"
	"intent-chat/service/envelope"
)

type lambdaHandler struct {
	cfg       config.Config
	responder chat.Answerer
	logger    *slog.Logger
}

// handler answers API Gateway proxy events the same way the HTTP server answers POST /chat,
// including the CORS origin checks.
func (l *lambdaHandler) handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := l.logger.With(slog.String("request_id", request.RequestContext.RequestID))
	ctx = chat.ContextWithLogger(ctx, logger)
	logger.InfoContext(ctx, "Handler started", slog.String("method", request.HTTPMethod), slog.String("path", request.Path))

	origin := header(request.Headers, "Origin")
	if origin != "" && !l.cfg.AllowsOrigin(origin) {
		logger.WarnContext(ctx, "rejected cross origin request", slog.String("origin", origin))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusForbidden}, nil
	}
	headers := l.corsHeaders(origin)

	switch request.HTTPMethod {
	case http.MethodOptions:
		headers["Access-Control-Allow-Methods"] = strings.Join(config.CORSAllowMethods, ",")
		headers["Access-Control-Allow-Headers"] = strings.Join(config.CORSAllowHeaders, ",")
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent, Headers: headers}, nil
	case http.MethodPost, "":
	default:
		return events.APIGatewayProxyResponse{StatusCode: http.StatusMethodNotAllowed, Headers: headers}, nil
	}

	var reply chat.Reply
	payload, err := decodePayload(request)
	if err != nil {
		logger.ErrorContext(ctx, "failed to parse request body", slog.Any("error", err))
		reply = chat.Reply{Err: err}
	} else {
		reply = l.responder.Respond(ctx, payload.Message)
	}

	responseBytes, err := json.Marshal(envelope.ResponseBody{Response: reply.Message()})
	if err != nil {
		logger.ErrorContext(ctx, "serialize response", slog.Any("error", err))
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       "something went wrong building the response",
		}, err
	}

	headers["Content-Type"] = "application/json; charset=utf-8"
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       string(responseBytes),
	}, nil
}

func decodePayload(request events.APIGatewayProxyRequest) (envelope.RequestPayload, error) {
	body := []byte(request.Body)
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			return envelope.RequestPayload{}, fmt.Errorf("failed to decode base64 request body: %w", err)
		}
		body = decoded
	}
	return envelope.DecodeRequest(body)
}

func (l *lambdaHandler) corsHeaders(origin string) map[string]string {
	headers := map[string]string{}
	if origin == "" {
		return headers
	}
	headers["Access-Control-Allow-Origin"] = origin
	headers["Access-Control-Allow-Credentials"] = "true"
	headers["Access-Control-Expose-Headers"] = config.RequestIDHeader
	headers["Vary"] = "Origin"
	return headers
}

// API Gateway passes headers through with whatever casing the client used.
func header(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
