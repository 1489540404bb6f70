// Package ui provides the Bubble Tea TUI for the minting storefront.
package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit       key.Binding
	Connect    key.Binding
	Disconnect key.Binding
	Mint       key.Binding
	More       key.Binding
	Less       key.Binding
	Refresh    key.Binding
	Help       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Connect: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "connect wallet"),
		),
		Disconnect: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "disconnect"),
		),
		Mint: key.NewBinding(
			key.WithKeys("m", "enter"),
			key.WithHelp("m", "mint"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "right", "k"),
			key.WithHelp("+", "more"),
		),
		Less: key.NewBinding(
			key.WithKeys("-", "left", "j"),
			key.WithHelp("-", "less"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Connect, k.Mint, k.Help}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Connect, k.Disconnect},
		{k.Mint, k.More, k.Less, k.Refresh},
	}
}
