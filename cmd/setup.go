package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/balanceline/internal/application"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSetupCmd(app *app) *cobra.Command {
	var accessToken string
	var userID int64
	var exchangeRate string
	var quotaPerUnit string
	var clearConfig bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Configure the account quota query",
		Long: "setup stores the dashboard access token and user id used to query the account quota " +
			"endpoint. The token goes to the secret store; the rest is written to balance.toml. " +
			"Without this configuration only the billing endpoints are queried.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clearConfig {
				if err := app.service.ClearAccountConfig(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "account quota configuration removed")
				return err
			}

			rate, err := parseOptionalAmount("exchange-rate", exchangeRate)
			if err != nil {
				return err
			}
			perUnit, err := parseOptionalAmount("quota-per-unit", quotaPerUnit)
			if err != nil {
				return err
			}

			if err := app.service.SetAccountConfig(cmd.Context(), application.SetAccountConfigCommand{
				AccessToken:  accessToken,
				UserID:       userID,
				ExchangeRate: rate,
				QuotaPerUnit: perUnit,
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "account quota configured for user %d\n", userID)
			return err
		},
	}

	cmd.Flags().StringVar(&accessToken, "access-token", "", "Dashboard access token")
	cmd.Flags().Int64Var(&userID, "user-id", 0, "Dashboard user id")
	cmd.Flags().StringVar(&exchangeRate, "exchange-rate", "", "Currency units per USD (default 7.3)")
	cmd.Flags().StringVar(&quotaPerUnit, "quota-per-unit", "", "Quota units per USD (default 500000)")
	cmd.Flags().BoolVar(&clearConfig, "clear", false, "Remove the stored configuration")
	cmd.MarkFlagsRequiredTogether("access-token", "user-id")
	cmd.MarkFlagsOneRequired("access-token", "clear")
	cmd.MarkFlagsMutuallyExclusive("clear", "access-token")
	cmd.MarkFlagsMutuallyExclusive("clear", "user-id")

	return cmd
}

// parseOptionalAmount returns zero for an empty flag so that the domain
// defaults apply.
func parseOptionalAmount(flag, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, raw, err)
	}

	return value, nil
}
