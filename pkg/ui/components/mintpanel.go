package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MintPanel renders the amount stepper and mint action state.
type MintPanel struct {
	amount    int64
	max       int64
	priceText string
	busy      bool
	connected bool
	mintable  bool
}

// NewMintPanel creates a panel with the stepper at 1.
func NewMintPanel() *MintPanel {
	return &MintPanel{amount: 1, max: 10}
}

// Amount returns the stepper value.
func (p *MintPanel) Amount() int64 {
	return p.amount
}

// Step moves the stepper by delta, clamped to [1, max].
func (p *MintPanel) Step(delta int64) {
	p.amount += delta
	if p.amount < 1 {
		p.amount = 1
	}
	if p.amount > p.max {
		p.amount = p.max
	}
}

// SetLimits installs the stepper ceiling. remaining below zero means
// the whitelist does not apply and only the hard cap of 10 holds.
func (p *MintPanel) SetLimits(remaining int64) {
	p.max = 10
	if remaining >= 0 && remaining < p.max {
		p.max = remaining
	}
	if p.max < 1 {
		p.max = 1
	}
	if p.amount > p.max {
		p.amount = p.max
	}
}

// SetState installs the surrounding sale state.
func (p *MintPanel) SetState(priceText string, connected, mintable bool) {
	p.priceText = priceText
	p.connected = connected
	p.mintable = mintable
}

// SetBusy toggles the in-flight indicator.
func (p *MintPanel) SetBusy(busy bool) {
	p.busy = busy
}

// View renders the mint panel.
func (p *MintPanel) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	actionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	busyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("MINT"))
	sb.WriteString("\n\n")

	switch {
	case !p.connected:
		sb.WriteString(mutedStyle.Render("Connect a wallet to mint  (w)"))
	case !p.mintable:
		sb.WriteString(mutedStyle.Render("Minting is not open right now"))
	case p.busy:
		sb.WriteString(busyStyle.Render("Submitting transaction..."))
	default:
		sb.WriteString(fmt.Sprintf("Amount:  %s %d %s   (max %d)\n",
			mutedStyle.Render("-"), p.amount, mutedStyle.Render("+"), p.max))
		sb.WriteString(fmt.Sprintf("Price:   %s each\n\n", p.priceText))
		sb.WriteString(actionStyle.Render("Press m to mint"))
	}

	return sb.String()
}
