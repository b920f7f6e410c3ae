package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stock-sentiment-analyzer/internal/keys"
	"stock-sentiment-analyzer/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			MarginTop(1)

	signalBoxStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 2)

	bulletStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// signalColors maps known signal tokens to badge colors. Unrecognized tokens
// fall back to the neutral gray.
var signalColors = map[string]lipgloss.Color{
	types.SignalStrongBuy:  lipgloss.Color("#10B981"),
	types.SignalBuy:        lipgloss.Color("#34D399"),
	types.SignalHold:       lipgloss.Color("#F59E0B"),
	types.SignalSell:       lipgloss.Color("#F87171"),
	types.SignalStrongSell: lipgloss.Color("#EF4444"),
}

func signalColor(signal string) lipgloss.Color {
	if c, ok := signalColors[signal]; ok {
		return c
	}
	return lipgloss.Color("#9CA3AF")
}

// RenderAnalysis renders one analysis run for the terminal.
func RenderAnalysis(a types.Analysis) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Analysis: %s", a.Symbol)))
	sb.WriteString("\n")

	rec := a.Recommendation
	badge := signalBoxStyle.
		Foreground(signalColor(rec.Signal)).
		BorderForeground(signalColor(rec.Signal)).
		Render(fmt.Sprintf("Trading Signal: %s", rec.Signal))
	sb.WriteString(badge)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Confidence: %d/10\n", rec.Confidence))

	if len(rec.Reasons) > 0 {
		sb.WriteString(sectionStyle.Render("Key Reasons"))
		sb.WriteString("\n")
		for _, r := range rec.Reasons {
			sb.WriteString(bulletStyle.Render("• " + r))
			sb.WriteString("\n")
		}
	}
	if len(rec.Risks) > 0 {
		sb.WriteString(sectionStyle.Render("Risk Factors"))
		sb.WriteString("\n")
		for _, r := range rec.Risks {
			sb.WriteString(bulletStyle.Render("• " + r))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(sectionStyle.Render("Summary"))
	sb.WriteString("\n")
	sb.WriteString(rec.Summary)
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render("Sources"))
	sb.WriteString("\n")
	for _, st := range a.Sources {
		if st.OK {
			sb.WriteString(okStyle.Render(fmt.Sprintf("✓ %s (%d records)", st.Source, st.Count)))
		} else {
			sb.WriteString(warnStyle.Render(fmt.Sprintf("✗ %s: %s", st.Source, st.Message)))
		}
		sb.WriteString("\n")
	}

	if len(a.Articles) > 0 {
		sb.WriteString(sectionStyle.Render(fmt.Sprintf("Source Articles (%d)", len(a.Articles))))
		sb.WriteString("\n")
		for i, item := range a.Articles {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item.Title))
			line := "Source: " + item.Source
			if item.URL != "" {
				line += "  " + item.URL
			}
			sb.WriteString(dimStyle.Render("   " + line))
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString(dimStyle.Render("No articles found for this symbol."))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("Disclaimer: educational use only, not financial advice."))
	sb.WriteString("\n")
	return sb.String()
}

// RenderKeyStatus renders the credential panel with redacted values.
func RenderKeyStatus(ks []*keys.Key) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("API Keys"))
	sb.WriteString("\n")
	for _, k := range ks {
		if k.Exists() {
			sb.WriteString(okStyle.Render(fmt.Sprintf("✓ %s key loaded (%s)", k.Description, k.Redacted())))
		} else {
			sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %s key missing", k.Description)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
