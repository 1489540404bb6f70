package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// toastTTL is how long a toast stays visible.
const toastTTL = 8 * time.Second

// Toast is one transient message.
type Toast struct {
	Kind    string // "error" or "success"
	Text    string
	AddedAt time.Time
}

// ToastsComponent renders transient messages, newest first.
type ToastsComponent struct {
	toasts []Toast
	max    int
}

// NewToastsComponent creates a toast stack holding at most max entries.
func NewToastsComponent(max int) *ToastsComponent {
	return &ToastsComponent{max: max}
}

// Add pushes a toast.
func (t *ToastsComponent) Add(kind, text string) {
	t.toasts = append([]Toast{{Kind: kind, Text: text, AddedAt: time.Now()}}, t.toasts...)
	if len(t.toasts) > t.max {
		t.toasts = t.toasts[:t.max]
	}
}

// Expire drops toasts older than their TTL. Called on the UI tick.
func (t *ToastsComponent) Expire() {
	kept := t.toasts[:0]
	for _, toast := range t.toasts {
		if time.Since(toast.AddedAt) < toastTTL {
			kept = append(kept, toast)
		}
	}
	t.toasts = kept
}

// View renders the visible toasts.
func (t *ToastsComponent) View() string {
	if len(t.toasts) == 0 {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	var sb strings.Builder
	for _, toast := range t.toasts {
		style := successStyle
		icon := "✓"
		if toast.Kind == "error" {
			style = errorStyle
			icon = "✗"
		}
		ago := time.Since(toast.AddedAt).Round(time.Second)
		sb.WriteString(style.Render("  " + icon + " " + toast.Text))
		sb.WriteString(mutedStyle.Render("  (" + ago.String() + " ago)"))
		sb.WriteString("\n")
	}

	return sb.String()
}
