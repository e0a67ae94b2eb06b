package ask

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"intent-chat/chat"
	"intent-chat/config"
)

func Ask(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if timeout := ctx.Duration("timeout"); timeout > 0 {
		cfg.Upstream.Timeout = timeout
	}

	if cfg.Nationalize.APIKeySecret != "" {
		smClient, err := config.NewSecretsClient(ctx.Context)
		if err != nil {
			return err
		}
		cfg, err = config.ResolveSecrets(ctx.Context, cfg, smClient)
		if err != nil {
			return err
		}
	}

	// Keep stdout for the reply itself
	logger := cfg.NewLogger(os.Stderr)
	reply := chat.New(cfg, logger).Respond(ctx.Context, strings.Join(ctx.Args().Slice(), " "))

	_, err = fmt.Fprintln(ctx.App.Writer, reply.Message())
	return err
}
