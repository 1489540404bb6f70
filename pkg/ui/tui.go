// Package ui provides the Bubble Tea TUI for the minting storefront.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kdx-labs/mintdeck/business/mint/app"
	"github.com/kdx-labs/mintdeck/business/mint/domain"
	"github.com/kdx-labs/mintdeck/pkg/ui/components"
)

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome   Phase = "welcome" // Initial welcome screen
	PhaseStartup   Phase = "startup" // Loading collection data
	PhaseDashboard Phase = "dashboard"
)

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	// Components
	sale    *components.SaleComponent
	mint    *components.MintPanel
	tokens  *components.TokensComponent
	toasts  *components.ToastsComponent
	keys    KeyMap
	network string

	// Phase state
	phase        Phase
	welcomeStart time.Time
	startupTime  time.Time

	// State
	ready    bool
	quitting bool
	width    int
	height   int
	account  string
	busy     bool
	snapshot app.Snapshot
	haveSale bool
	pending  int // in-flight confirmations
}

// New creates a new TUI model.
func New(uriRoot, network string) Model {
	now := time.Now()
	return Model{
		sale:         components.NewSaleComponent(),
		mint:         components.NewMintPanel(),
		tokens:       components.NewTokensComponent(uriRoot, 12),
		toasts:       components.NewToastsComponent(3),
		keys:         DefaultKeyMap(),
		network:      network,
		phase:        PhaseWelcome,
		welcomeStart: now,
		startupTime:  now,
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every 100ms for smooth animations.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Always allow quit
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		// During welcome phase, any other key skips to startup
		if m.phase == PhaseWelcome {
			m.phase = PhaseStartup
			m.startupTime = time.Now()
			// Trigger callback directly (don't use Send() from within Update)
			if OnStartModules != nil {
				go OnStartModules()
			}
			return m, tickCmd()
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		if m.phase == PhaseWelcome && time.Since(m.welcomeStart) >= WelcomeDuration {
			m.phase = PhaseStartup
			m.startupTime = time.Now()
			if OnStartModules != nil {
				go OnStartModules()
			}
		}
		m.toasts.Expire()
		return m, tickCmd()

	case SaleMsg:
		m.snapshot = msg.Snapshot
		m.haveSale = true
		if m.phase == PhaseStartup {
			m.phase = PhaseDashboard
		}
		// Empty means no account data loaded yet; the wallet events own
		// the transition to and from the disconnected state.
		if msg.Snapshot.Account != "" {
			m.account = msg.Snapshot.Account
		}
		m.applySnapshot()

	case TxSubmittedMsg:
		m.busy = false
		m.pending++
		m.toasts.Add("success", fmt.Sprintf("Minting %d: submitted as %s", msg.Amount, shortKey(msg.RequestKey)))

	case TxResolvedMsg:
		if m.pending > 0 {
			m.pending--
		}
		if msg.Err != nil {
			m.toasts.Add("error", fmt.Sprintf("Mint %s failed: %v", shortKey(msg.RequestKey), msg.Err))
		} else {
			m.toasts.Add("success", fmt.Sprintf("Mint %s confirmed", shortKey(msg.RequestKey)))
		}

	case ToastMsg:
		if msg.Kind == "error" {
			m.busy = false
		}
		m.toasts.Add(msg.Kind, msg.Text)

	case WalletConnectedMsg:
		m.account = msg.Account
		m.toasts.Add("success", "Wallet connected: "+truncateAccount(msg.Account))

	case WalletDisconnectedMsg:
		m.account = ""
		m.toasts.Add("success", "Wallet disconnected")

	case ErrorMsg:
		m.busy = false
		m.toasts.Add("error", msg.Error.Error())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Connect):
		if m.account == "" && OnConnectWallet != nil {
			go OnConnectWallet()
		}
	case key.Matches(msg, m.keys.Disconnect):
		if m.account != "" && OnDisconnectWallet != nil {
			go OnDisconnectWallet()
		}
	case key.Matches(msg, m.keys.More):
		m.mint.Step(1)
	case key.Matches(msg, m.keys.Less):
		m.mint.Step(-1)
	case key.Matches(msg, m.keys.Mint):
		if m.canMint() && OnMint != nil {
			m.busy = true
			m.mint.SetBusy(true)
			amount := m.mint.Amount()
			go OnMint(amount)
		}
	case key.Matches(msg, m.keys.Refresh):
		if OnRefresh != nil {
			go OnRefresh()
		}
	}
	m.mint.SetBusy(m.busy)
	return m, nil
}

// applySnapshot pushes the snapshot into the sub-components.
func (m *Model) applySnapshot() {
	s := m.snapshot
	m.sale.Update(s.Active, s.Countdown, s.PriceText,
		s.Collection.MintedCount, s.Collection.TotalSupply, s.Complete)
	m.tokens.Update(s.Tokens)
	m.mint.SetLimits(s.Remaining)
	m.mint.SetState(s.PriceText, m.account != "", m.canMint())
	m.mint.SetBusy(m.busy)
}

// canMint reports whether the mint action is available.
func (m Model) canMint() bool {
	if m.account == "" || !m.haveSale || m.busy {
		return false
	}
	s := m.snapshot
	if s.Complete || s.Active.Status != domain.SaleDuring || s.Active.Cost < 0 {
		return false
	}
	// Whitelist tier with nothing left
	if s.Active.Tier != nil && s.Active.Tier.Type == domain.TierTypeWhitelist && s.Remaining == 0 {
		return false
	}
	return true
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	switch m.phase {
	case PhaseWelcome:
		return m.renderWelcomeScreen()
	case PhaseStartup:
		if !m.haveSale {
			return m.renderStartupScreen()
		}
	}

	var b strings.Builder

	title := TitleStyle.Render(" ⛏ mintdeck ")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	leftCol := m.sale.View() + "\n\n" + m.mint.View()
	rightCol := m.tokens.View()

	if m.width > 100 {
		left := BoxStyle.Width(m.width/2 - 2).Render(leftCol)
		right := BoxStyle.Width(m.width/2 - 2).Render(rightCol)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		b.WriteString(BoxStyle.Width(m.width - 4).Render(leftCol))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Width(m.width - 4).Render(rightCol))
	}

	b.WriteString("\n\n")

	if toasts := m.toasts.View(); toasts != "" {
		b.WriteString(toasts)
		b.WriteString("\n")
	}

	helpText := "q: quit • w: connect • d: disconnect • +/-: amount • m: mint • r: refresh"
	b.WriteString(HelpStyle.Render(helpText))

	return b.String()
}

// renderStatusBar renders wallet, network and confirmation state.
func (m Model) renderStatusBar() string {
	var parts []string

	if m.account != "" {
		parts = append(parts, StatusConnected.Render("● "+truncateAccount(m.account)))
	} else {
		parts = append(parts, StatusDisconnected.Render("○ no wallet"))
	}

	parts = append(parts, MutedValue.Render(m.network))

	if m.pending > 0 {
		spinners := []string{"◐", "◓", "◑", "◒"}
		idx := int(time.Now().UnixMilli()/200) % len(spinners)
		pendingStyle := lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
		parts = append(parts, pendingStyle.Render(fmt.Sprintf("%s %d confirming", spinners[idx], m.pending)))
	}

	return strings.Join(parts, "  │  ")
}

// renderWelcomeScreen renders the animated welcome screen.
func (m Model) renderWelcomeScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED"))

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	greenStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	elapsed := time.Since(m.welcomeStart)
	dotCount := int(elapsed.Milliseconds()/300) % 4
	dots := strings.Repeat(".", dotCount)

	var sb strings.Builder

	sb.WriteString("\n\n\n\n")

	logo := `
   ███╗   ███╗██╗███╗   ██╗████████╗██████╗ ███████╗ ██████╗██╗  ██╗
   ████╗ ████║██║████╗  ██║╚══██╔══╝██╔══██╗██╔════╝██╔════╝██║ ██╔╝
   ██╔████╔██║██║██╔██╗ ██║   ██║   ██║  ██║█████╗  ██║     █████╔╝
   ██║╚██╔╝██║██║██║╚██╗██║   ██║   ██║  ██║██╔══╝  ██║     ██╔═██╗
   ██║ ╚═╝ ██║██║██║ ╚████║   ██║   ██████╔╝███████╗╚██████╗██║  ██╗
   ╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝   ╚═╝   ╚═════╝ ╚══════╝ ╚═════╝╚═╝  ╚═╝
`
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")

	subtitle := "            K A D E N A   N F T   S T O R E F R O N T"
	sb.WriteString(mutedStyle.Render(subtitle))
	sb.WriteString("\n\n\n")

	loading := fmt.Sprintf("                  Initializing%s", dots)
	sb.WriteString(greenStyle.Render(loading))
	sb.WriteString("\n\n")

	hint := "            Press any key to skip, or wait..."
	sb.WriteString(mutedStyle.Render(hint))
	sb.WriteString("\n")

	return sb.String()
}

// renderStartupScreen renders the loading screen.
func (m Model) renderStartupScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		MarginBottom(1)

	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	connectingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

	spinners := []string{"◐", "◓", "◑", "◒"}
	idx := int(time.Since(m.startupTime).Milliseconds()/200) % len(spinners)

	var sb strings.Builder
	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("  ⛏ mintdeck"))
	sb.WriteString("\n\n")
	sb.WriteString(connectingStyle.Render(fmt.Sprintf("  %s Loading collection from Chainweb...", spinners[idx])))
	sb.WriteString("\n\n")
	elapsed := time.Since(m.startupTime).Round(time.Second)
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  Elapsed: %s", elapsed)))
	sb.WriteString("\n")

	return sb.String()
}

// truncateAccount shortens a k:pubkey account for display.
func truncateAccount(account string) string {
	if len(account) <= 14 {
		return account
	}
	return account[:10] + "..." + account[len(account)-4:]
}

// shortKey shortens a request key for display.
func shortKey(requestKey string) string {
	if len(requestKey) <= 10 {
		return requestKey
	}
	return requestKey[:10] + "..."
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// Callbacks set by main.go to bridge key presses into the application
// services. They run on their own goroutines, never on the UI loop.
var (
	OnStartModules     func()
	OnConnectWallet    func()
	OnDisconnectWallet func()
	OnMint             func(amount int64)
	OnRefresh          func()
)

// Run starts the Bubble Tea program.
func Run(uriRoot, network string) error {
	Program = tea.NewProgram(New(uriRoot, network), tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
}
