// Package infra contains infrastructure adapters for the mint context.
package infra

import (
	"github.com/kdx-labs/mintdeck/business/mint/app"
	"github.com/kdx-labs/mintdeck/pkg/ui"
)

// TUINotifier bridges sale and wallet events into the Bubble Tea
// program as messages.
type TUINotifier struct{}

// NewTUINotifier creates the TUI bridge.
func NewTUINotifier() *TUINotifier {
	return &TUINotifier{}
}

// SaleUpdated forwards the sale snapshot to the TUI.
func (n *TUINotifier) SaleUpdated(snapshot app.Snapshot) {
	ui.Send(ui.SaleMsg{Snapshot: snapshot})
}

// TransactionSubmitted forwards a broadcast mint to the TUI.
func (n *TUINotifier) TransactionSubmitted(requestKey string, amount int64) {
	ui.Send(ui.TxSubmittedMsg{RequestKey: requestKey, Amount: amount})
}

// TransactionResolved forwards a confirmation outcome to the TUI.
func (n *TUINotifier) TransactionResolved(requestKey string, err error) {
	ui.Send(ui.TxResolvedMsg{RequestKey: requestKey, Err: err})
}

// Notify forwards a toast to the TUI.
func (n *TUINotifier) Notify(kind app.MessageKind, text string) {
	ui.Send(ui.ToastMsg{Kind: string(kind), Text: text})
}

// WalletConnected forwards the connect event to the TUI.
func (n *TUINotifier) WalletConnected(account string) {
	ui.Send(ui.WalletConnectedMsg{Account: account})
}

// WalletConnectFailed surfaces a failed connect as an error toast.
func (n *TUINotifier) WalletConnectFailed(err error) {
	ui.Send(ui.ErrorMsg{Error: err})
}

// WalletDisconnected forwards the disconnect event to the TUI.
func (n *TUINotifier) WalletDisconnected() {
	ui.Send(ui.WalletDisconnectedMsg{})
}
