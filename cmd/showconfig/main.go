package showconfig

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"intent-chat/config"
)

// Show prints the configuration after defaults, files and environment are merged. The
// nationalize API key is never printed.
func Show(ctx *cli.Context) error {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	_, err = ctx.App.Writer.Write(out)
	return err
}
