package statusline

import (
	"io"

	"github.com/bnema/balanceline/internal/application"
	"github.com/bnema/balanceline/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type Options struct {
	Symbol string
	// Plain disables ANSI styling.
	Plain bool
}

// Renderer produces the one-line balance segment. Statusline hosts read the
// segment through a pipe, so the color profile is fixed instead of detected.
type Renderer struct {
	symbol string
	plain  bool

	fresh    lipgloss.Style
	stale    lipgloss.Style
	negative lipgloss.Style
}

func NewRenderer(w io.Writer, opts Options) *Renderer {
	symbol := opts.Symbol
	if symbol == "" {
		symbol = domain.DefaultCurrencySymbol
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	return &Renderer{
		symbol:   symbol,
		plain:    opts.Plain,
		fresh:    r.NewStyle().Foreground(lipgloss.Color("114")),
		stale:    r.NewStyle().Foreground(lipgloss.Color("245")).Faint(true),
		negative: r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}

// Segment renders the empty string when no balance could be resolved.
func (r *Renderer) Segment(resolution application.Resolution) string {
	if !resolution.Available() {
		return ""
	}

	text := resolution.Balance.FormatDisplay(r.symbol)
	if r.plain {
		return text
	}

	switch {
	case resolution.Stale:
		return r.stale.Render(text)
	case !resolution.Balance.IsUnlimited && resolution.Balance.Balance.IsNegative():
		return r.negative.Render(text)
	default:
		return r.fresh.Render(text)
	}
}
