package route

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"intent-chat/intent"
)

func Route(ctx *cli.Context) error {
	message := strings.Join(ctx.Args().Slice(), " ")
	decision := intent.Route(strings.TrimSpace(message))

	_, err := fmt.Fprintf(ctx.App.Writer, "intent: %s\nterm: %q\n", decision.Intent, decision.Term)
	return err
}
