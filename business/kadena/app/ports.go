// Package app contains the application services of the kadena context.
package app

import (
	"context"

	"github.com/kdx-labs/mintdeck/business/kadena/domain"
)

// ChainClient talks to a Chainweb node's Pact endpoints.
type ChainClient interface {
	// Local dry-runs a command without submitting it to the mempool.
	Local(ctx context.Context, env domain.Envelope) (domain.TxResult, error)
	// Send submits a signed command and returns its request key.
	Send(ctx context.Context, env domain.Envelope) (string, error)
	// Listen blocks until the command behind requestKey is mined.
	Listen(ctx context.Context, requestKey string) (domain.TxResult, error)
}

// WalletProvider integrates an external signing wallet. The capability
// set is closed: connect, disconnect, sign.
type WalletProvider interface {
	Name() string
	// Connect opens the wallet session and returns the account and its
	// signing key. pubKey may be empty if the wallet does not report one.
	Connect(ctx context.Context) (account, pubKey string, err error)
	// Disconnect releases the wallet session on the provider side.
	Disconnect(ctx context.Context) error
	// Sign presents req to the wallet and returns the signed envelope.
	Sign(ctx context.Context, req domain.SigningRequest) (domain.Envelope, error)
}

// SessionStore persists the wallet session across runs.
type SessionStore interface {
	Save(key, value string) error
	Load(key string) string
	Delete(key string) error
}

// Notifier receives wallet lifecycle events. A failed connect reports
// through WalletConnectFailed so the user sees it regardless of how
// the caller handles the returned error.
type Notifier interface {
	WalletConnected(account string)
	WalletConnectFailed(err error)
	WalletDisconnected()
}
