package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kdx-labs/mintdeck/business/mint/domain"
)

// TokensComponent renders the connected account's token list.
type TokensComponent struct {
	tokens  []domain.OwnedToken
	uriRoot string
	maxRows int
}

// NewTokensComponent creates a token list showing at most maxRows.
func NewTokensComponent(uriRoot string, maxRows int) *TokensComponent {
	return &TokensComponent{uriRoot: uriRoot, maxRows: maxRows}
}

// Update replaces the token list.
func (t *TokensComponent) Update(tokens []domain.OwnedToken) {
	t.tokens = tokens
}

// View renders the token list.
func (t *TokensComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	revealedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("YOUR TOKENS (%d)", len(t.tokens))))
	sb.WriteString("\n\n")

	if len(t.tokens) == 0 {
		sb.WriteString(mutedStyle.Render("No tokens yet"))
		return sb.String()
	}

	rows := t.tokens
	overflow := 0
	if len(rows) > t.maxRows {
		overflow = len(rows) - t.maxRows
		rows = rows[len(rows)-t.maxRows:]
	}

	for _, token := range rows {
		if token.Revealed {
			sb.WriteString(revealedStyle.Render(fmt.Sprintf("  #%-5d", token.TokenID)))
			sb.WriteString(mutedStyle.Render(token.ImageURI(t.uriRoot)))
		} else {
			sb.WriteString(pendingStyle.Render(fmt.Sprintf("  #%-5d", token.TokenID)))
			sb.WriteString(mutedStyle.Render("unrevealed"))
		}
		sb.WriteString("\n")
	}

	if overflow > 0 {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("  ... and %d more", overflow)))
	}

	return sb.String()
}
