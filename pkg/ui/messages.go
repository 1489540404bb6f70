// Package ui provides the Bubble Tea TUI for the minting storefront.
package ui

import (
	"github.com/kdx-labs/mintdeck/business/mint/app"
)

// Message types for TUI updates

// SaleMsg carries the latest sale snapshot. It arrives on every
// countdown tick and after each state-changing operation.
type SaleMsg struct {
	Snapshot app.Snapshot
}

// TxSubmittedMsg is sent when a mint is accepted into the mempool.
type TxSubmittedMsg struct {
	RequestKey string
	Amount     int64
}

// TxResolvedMsg is sent when a mint's confirmation lands. Err is nil
// on success.
type TxResolvedMsg struct {
	RequestKey string
	Err        error
}

// ToastMsg carries a transient user-facing message.
type ToastMsg struct {
	Kind string // "error" or "success"
	Text string
}

// WalletConnectedMsg is sent after a wallet session is established.
type WalletConnectedMsg struct {
	Account string
}

// WalletDisconnectedMsg is sent after the wallet session is cleared.
type WalletDisconnectedMsg struct{}

// ErrorMsg is sent when a background operation fails.
type ErrorMsg struct {
	Error error
}

// TickMsg drives welcome-screen animation and toast expiry.
type TickMsg struct{}
