package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/balanceline/internal/application"
	"github.com/bnema/balanceline/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

type RenderOptions struct {
	Now    time.Time
	Symbol string
}

const barWidth = 24

func renderView(resolution application.Resolution, opts RenderOptions, s styles) string {
	if opts.Symbol == "" {
		opts.Symbol = domain.DefaultCurrencySymbol
	}

	lines := []string{s.title.Render("Account Balance")}

	if !resolution.Available() {
		lines = append(lines, s.empty.Render("Balance unavailable."))
	} else {
		lines = append(lines,
			s.header.Render(sourceLine(resolution, opts.Now)),
			s.section.Render(renderAmounts(resolution.Balance, opts.Symbol, s)),
		)
		if resolution.Stale {
			lines = append(lines, s.warning.Render("[stale] live queries failed, showing last known balance"))
		}
	}

	if failures := resolution.Failures(); len(failures) > 0 {
		lines = append(lines, s.section.Render(renderFailures(failures, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAmounts(data domain.BalanceData, symbol string, s styles) string {
	if data.IsUnlimited {
		return lipgloss.JoinVertical(lipgloss.Left,
			amountLine("balance:", s.amount.Render(domain.UnlimitedGlyph), s),
			amountLine("used:", s.detail.Render(formatAmount(data.Used, symbol)), s),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		amountLine("balance:", s.amount.Render(data.FormatDisplay(symbol)), s),
		amountLine("used:", s.detail.Render(formatAmount(data.Used, symbol)), s),
		amountLine("total:", s.detail.Render(formatAmount(data.Total, symbol)), s),
		remainingLine(data, s),
	)
}

func amountLine(label, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(fmt.Sprintf("%-9s", label)), value)
}

func remainingLine(data domain.BalanceData, s styles) string {
	if !data.Total.IsPositive() {
		return s.detail.Render("remaining: n/a")
	}

	left, _ := data.Balance.Div(data.Total).Mul(decimal.NewFromInt(100)).Float64()
	left = clampPercent(left)
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(left, 0, 100))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderProgressBar(left, barWidth, s),
		" ",
		percentStyle.Render(fmt.Sprintf("%2.0f%% left", left)),
	)
}

func sourceLine(resolution application.Resolution, now time.Time) string {
	line := "source: " + sourceLabel(resolution.Source)
	if resolution.CapturedAt.IsZero() {
		return line
	}
	if now.IsZero() {
		return fmt.Sprintf("%s, captured %s", line, resolution.CapturedAt.Format(time.RFC3339))
	}

	return fmt.Sprintf("%s, captured %s", line, humanize.RelTime(resolution.CapturedAt, now, "ago", "from now"))
}

func sourceLabel(tier application.Tier) string {
	switch tier {
	case application.TierMemo:
		return "in-process memo"
	case application.TierAccountQuota:
		return "account quota (live)"
	case application.TierBilling:
		return "billing (live)"
	case application.TierDurable:
		return "durable cache"
	default:
		return string(tier)
	}
}

func renderFailures(failures []application.Attempt, s styles) string {
	lines := []string{s.key.Render("failed tiers:")}
	for _, failure := range failures {
		lines = append(lines, s.detail.Render(fmt.Sprintf("  %s: %v", failure.Tier, failure.Err)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatAmount(value decimal.Decimal, symbol string) string {
	return symbol + value.StringFixed(2)
}

func renderProgressBar(leftPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(leftPercent) / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
