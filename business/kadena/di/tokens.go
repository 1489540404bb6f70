// Package di contains dependency injection tokens for the kadena context.
package di

import (
	"github.com/kdx-labs/mintdeck/business/kadena/app"
	"github.com/kdx-labs/mintdeck/internal/di"
)

// Public service tokens - exposed to other modules
var (
	WalletService = di.NewToken[*app.WalletService]("kadena.WalletService")
	TxService     = di.NewToken[*app.TxService]("kadena.TxService")
)

// Private dependency tokens - internal to kadena module
var (
	ChainClient = di.NewToken[app.ChainClient]("kadena:chainClient")
)

// WalletNotifier is registered by whichever module renders wallet
// events. The wallet service resolves it lazily at startup.
var WalletNotifier = di.NewToken[app.Notifier]("kadena:walletNotifier")

// Helper functions for type-safe access
func GetWalletService(c di.ServiceRegistry) *app.WalletService {
	return di.GetToken(c, WalletService)
}

func GetTxService(c di.ServiceRegistry) *app.TxService {
	return di.GetToken(c, TxService)
}

func GetChainClient(c di.ServiceRegistry) app.ChainClient {
	return di.GetToken(c, ChainClient)
}

func GetWalletNotifier(c di.ServiceRegistry) app.Notifier {
	return di.GetToken(c, WalletNotifier)
}
