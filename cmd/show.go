package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	statusadapter "github.com/bnema/balanceline/internal/adapters/render/status"
	"github.com/bnema/balanceline/internal/application"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type showOutput struct {
	Available  bool            `json:"available"`
	Source     string          `json:"source,omitempty"`
	Stale      bool            `json:"stale"`
	CapturedAt *time.Time      `json:"captured_at,omitempty"`
	Display    string          `json:"display,omitempty"`
	Balance    string          `json:"balance,omitempty"`
	Used       string          `json:"used,omitempty"`
	Total      string          `json:"total,omitempty"`
	Unlimited  bool            `json:"unlimited"`
	Failures   []failureOutput `json:"failures,omitempty"`
}

type failureOutput struct {
	Tier  string `json:"tier"`
	Error string `json:"error"`
}

func newShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved balance with its source and failed tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func runShow(cmd *cobra.Command, app *app, asJSON bool) error {
	var resolution application.Resolution
	resolve := func(ctx context.Context) error {
		resolution = app.resolver.Resolve(ctx)
		return nil
	}

	if asJSON {
		_ = resolve(cmd.Context())
		return writeShowJSON(cmd, resolution, app.cfg.CurrencySymbol)
	}

	if err := runResolveSpinner(cmd.Context(), cmd.ErrOrStderr(), resolve); err != nil {
		return err
	}

	rendered, err := app.statusRenderer(resolution, statusadapter.RenderOptions{
		Now:    app.now(),
		Symbol: app.cfg.CurrencySymbol,
	})
	if err != nil {
		return fmt.Errorf("render balance: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeShowJSON(cmd *cobra.Command, resolution application.Resolution, symbol string) error {
	out := showOutput{
		Available: resolution.Available(),
		Stale:     resolution.Stale,
		Failures: lo.Map(resolution.Failures(), func(attempt application.Attempt, _ int) failureOutput {
			return failureOutput{Tier: string(attempt.Tier), Error: attempt.Err.Error()}
		}),
	}

	if out.Available {
		data := resolution.Balance
		out.Source = string(resolution.Source)
		out.CapturedAt = lo.EmptyableToPtr(resolution.CapturedAt)
		out.Display = data.FormatDisplay(symbol)
		out.Balance = data.Balance.StringFixed(2)
		out.Used = data.Used.StringFixed(2)
		out.Total = data.Total.StringFixed(2)
		out.Unlimited = data.IsUnlimited
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
