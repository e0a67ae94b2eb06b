package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"intent-chat/chat"
	"intent-chat/config"
	"intent-chat/service/envelope"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	cfg       config.Config
	responder chat.Answerer
	logger    *slog.Logger
}

// NewRouter builds the gin engine serving the chat API.
func NewRouter(cfg config.Config, responder chat.Answerer, logger *slog.Logger) *gin.Engine {
	s := &server{
		cfg:       cfg,
		responder: responder,
		logger:    logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestContext(), cors.New(CORSConfig(cfg)))

	router.GET("/health", s.healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/chat", s.chatHandler)

	return router
}

// CORSConfig allows credentialed requests from the configured origin patterns.
func CORSConfig(cfg config.Config) cors.Config {
	return cors.Config{
		AllowOriginFunc:  cfg.AllowsOrigin,
		AllowMethods:     config.CORSAllowMethods,
		AllowHeaders:     config.CORSAllowHeaders,
		ExposeHeaders:    []string{config.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// requestContext tags every request with an id and logs it once it completes.
func (s *server) requestContext() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.GetHeader(config.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(config.RequestIDHeader, requestID)

		logger := s.logger.With(slog.String("request_id", requestID))
		ctx.Request = ctx.Request.WithContext(chat.ContextWithLogger(ctx.Request.Context(), logger))

		ctx.Next()

		logger.InfoContext(ctx.Request.Context(), "request handled",
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.Request.URL.Path),
			slog.Int("status", ctx.Writer.Status()),
			slog.Duration("latency", time.Since(start)))
	}
}

func (s *server) healthHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": s.cfg.ServerName,
	})
}

// chatHandler always answers 200, faults are reported inside the response text.
func (s *server) chatHandler(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	body, err := ctx.GetRawData()
	if err != nil {
		chat.LoggerFromContext(reqCtx, s.logger).ErrorContext(reqCtx, "failed to read request body", slog.Any("error", err))
		ctx.JSON(http.StatusOK, envelope.ResponseBody{Response: chat.Reply{Err: err}.Message()})
		return
	}

	payload, err := envelope.DecodeRequest(body)
	if err != nil {
		chat.LoggerFromContext(reqCtx, s.logger).ErrorContext(reqCtx, "failed to bind request to expected object", slog.Any("error", err))
		ctx.JSON(http.StatusOK, envelope.ResponseBody{Response: chat.Reply{Err: err}.Message()})
		return
	}

	reply := s.responder.Respond(reqCtx, payload.Message)
	ctx.JSON(http.StatusOK, envelope.ResponseBody{Response: reply.Message()})
}

// Serve runs handler on addr until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("chat service listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unexpected error in http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
