package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bnema/balanceline/internal/adapters/render/statusline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func runStatusline(cmd *cobra.Command, app *app, plain bool) error {
	drainStdin(cmd.InOrStdin())

	resolution := app.resolver.Resolve(cmd.Context())
	renderer := statusline.NewRenderer(cmd.OutOrStdout(), statusline.Options{
		Symbol: app.cfg.CurrencySymbol,
		Plain:  plain,
	})

	segment := renderer.Segment(resolution)
	if segment == "" {
		return nil
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), segment)
	return err
}

// drainStdin consumes the session JSON the host pipes in so the writer never
// blocks on a full pipe. The payload itself is not used.
func drainStdin(in io.Reader) {
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return
	}

	go func() {
		_, _ = io.Copy(io.Discard, in)
	}()
}
