package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"intent-chat/chat"
	"intent-chat/config"
	"intent-chat/service/server"
)

func main() {
	cfg, err := config.Load(os.Getenv("INTENT_CHAT_CONFIG"))
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	if cfg.Nationalize.APIKeySecret != "" {
		smClient, err := config.NewSecretsClient(ctx)
		if err != nil {
			log.Fatal(err)
		}
		cfg, err = config.ResolveSecrets(ctx, cfg, smClient)
		if err != nil {
			log.Fatal(err)
		}
	}

	if cfg.Environment != config.EnvironmentDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.NewRouter(cfg, chat.New(cfg, logger), logger)
	err = server.Serve(ctx, fmt.Sprintf(":%d", cfg.Port), router, logger)
	if err != nil {
		log.Fatal(err)
	}
}
