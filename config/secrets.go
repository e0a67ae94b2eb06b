package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretGetter is the part of the Secrets Manager client needed to resolve API keys.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func NewSecretsClient(ctx context.Context) (*secretsmanager.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return secretsmanager.NewFromConfig(awsCfg), nil
}

// ResolveSecrets returns a copy of cfg with the nationalize API key read from Secrets Manager.
// A key given directly in the configuration wins over the secret.
func ResolveSecrets(ctx context.Context, cfg Config, sm SecretGetter) (Config, error) {
	if cfg.Nationalize.APIKey != "" || cfg.Nationalize.APIKeySecret == "" {
		return cfg, nil
	}

	secret, err := sm.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(cfg.Nationalize.APIKeySecret),
	})
	if err != nil {
		return cfg, fmt.Errorf("failed to read secret %s: %w", cfg.Nationalize.APIKeySecret, err)
	}

	cfg.Nationalize.APIKey = aws.ToString(secret.SecretString)
	return cfg, nil
}
