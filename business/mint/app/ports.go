// Package app contains the application services of the mint context.
package app

import (
	"context"
	"encoding/json"

	kadena "github.com/kdx-labs/mintdeck/business/kadena/app"
	kdomain "github.com/kdx-labs/mintdeck/business/kadena/domain"
	"github.com/kdx-labs/mintdeck/business/mint/domain"
)

// TxGateway is the slice of the transaction service the sale needs.
type TxGateway interface {
	Query(ctx context.Context, code string, data map[string]any) (json.RawMessage, error)
	Simulate(ctx context.Context, env kdomain.Envelope) error
	Broadcast(ctx context.Context, env kdomain.Envelope) (string, error)
	Await(ctx context.Context, requestKey string) <-chan kadena.Confirmation
	Config() kadena.TxConfig
}

// WalletGateway exposes the connected session to the pipeline.
type WalletGateway interface {
	Connected() bool
	Account() string
	Sign(ctx context.Context, req kdomain.SigningRequest) (kdomain.Envelope, error)
}

// ReceiptStore persists mint receipts across runs.
type ReceiptStore interface {
	RecordReceipt(requestKey, account, collection string, amount int) error
	ResolveReceipt(requestKey, status string) error
}

// MessageKind classifies user-facing messages.
type MessageKind string

const (
	MessageError   MessageKind = "error"
	MessageSuccess MessageKind = "success"
)

// Notifier receives sale state changes and transaction events. The TUI
// registers one; headless runs use a console implementation.
type Notifier interface {
	// SaleUpdated fires on every countdown tick and tier transition.
	SaleUpdated(snapshot Snapshot)
	// TransactionSubmitted fires once per accepted mint, with the
	// request key the confirmation will resolve under.
	TransactionSubmitted(requestKey string, amount int64)
	// TransactionResolved fires exactly once when the confirmation for
	// requestKey lands. err is nil on success.
	TransactionResolved(requestKey string, err error)
	// Notify carries a plain user-facing message.
	Notify(kind MessageKind, text string)
}

// Snapshot is the rendered sale state at one instant.
type Snapshot struct {
	Collection domain.CollectionSummary
	Active     domain.ActiveTier
	Countdown  domain.Countdown
	PriceText  string
	// Remaining is the whitelist allowance left in the active tier, or
	// -1 when it does not apply.
	Remaining int64
	Tokens    []domain.OwnedToken
	Account   string
	Complete  bool
}
