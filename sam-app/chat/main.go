package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"intent-chat/chat"
	"intent-chat/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("INTENT_CHAT_CONFIG"))
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	if cfg.Nationalize.APIKeySecret != "" {
		smClient, err := config.NewSecretsClient(context.Background())
		if err != nil {
			panic(err)
		}
		cfg, err = config.ResolveSecrets(context.Background(), cfg, smClient)
		if err != nil {
			panic(err)
		}
	}

	logger := cfg.NewLogger(os.Stdout)
	handler := lambdaHandler{
		cfg:       cfg,
		responder: chat.New(cfg, logger),
		logger:    logger,
	}

	lambda.Start(handler.handler)
}
