// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/kdx-labs/mintdeck/business/mint/domain"
)

// SaleComponent renders the sale phase, active tier, price, countdown
// and minting progress.
type SaleComponent struct {
	bar progress.Model

	status    domain.SaleStatus
	tierID    string
	tierType  string
	priceText string
	countdown domain.Countdown
	minted    int64
	supply    int64
	complete  bool
	loaded    bool
}

// NewSaleComponent creates an empty sale component.
func NewSaleComponent() *SaleComponent {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(36))
	return &SaleComponent{bar: bar}
}

// Update installs the latest sale state.
func (s *SaleComponent) Update(active domain.ActiveTier, countdown domain.Countdown, priceText string, minted, supply int64, complete bool) {
	s.status = active.Status
	s.tierID = active.TierID()
	s.tierType = ""
	if active.Tier != nil {
		s.tierType = string(active.Tier.Type)
	}
	s.priceText = priceText
	s.countdown = countdown
	s.minted = minted
	s.supply = supply
	s.complete = complete
	s.loaded = true
}

// View renders the sale component.
func (s *SaleComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	liveStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	doneStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("SALE"))
	sb.WriteString("\n\n")

	if !s.loaded {
		sb.WriteString(mutedStyle.Render("Loading collection..."))
		return sb.String()
	}

	switch s.status {
	case domain.SaleBefore:
		sb.WriteString(mutedStyle.Render("Sale starts in  "))
		sb.WriteString(liveStyle.Render(formatCountdown(s.countdown)))
	case domain.SaleDuring:
		sb.WriteString(liveStyle.Render(fmt.Sprintf("LIVE  %s", s.tierID)))
		if s.tierType != "" {
			sb.WriteString(mutedStyle.Render(fmt.Sprintf("  (%s)", s.tierType)))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Price: %s\n", s.priceText))
		sb.WriteString(mutedStyle.Render("Tier ends in  "))
		sb.WriteString(formatCountdown(s.countdown))
	case domain.SaleFinal:
		sb.WriteString(doneStyle.Render("SALE ENDED"))
	case domain.SaleInactive:
		sb.WriteString(mutedStyle.Render("Next tier in  "))
		sb.WriteString(formatCountdown(s.countdown))
	}
	sb.WriteString("\n\n")

	if s.supply > 0 {
		pct := float64(s.minted) / float64(s.supply)
		sb.WriteString(s.bar.ViewAs(pct))
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("%d / %d minted", s.minted, s.supply)))
		if s.complete {
			sb.WriteString("  ")
			sb.WriteString(doneStyle.Render("SOLD OUT"))
		}
	}

	return sb.String()
}

// formatCountdown renders a countdown as dd:hh:mm:ss, dropping leading
// zero segments.
func formatCountdown(c domain.Countdown) string {
	if c.Days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", c.Days, c.Hours, c.Minutes, c.Seconds)
	}
	if c.Hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
	}
	return fmt.Sprintf("%02d:%02d", c.Minutes, c.Seconds)
}
