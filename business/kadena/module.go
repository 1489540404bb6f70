// Package kadena implements the chain access bounded context: wallet
// sessions, command signing, and the Pact transaction lifecycle.
package kadena

import (
	"context"
	"time"

	"github.com/kdx-labs/mintdeck/business/kadena/app"
	kadenaDI "github.com/kdx-labs/mintdeck/business/kadena/di"
	"github.com/kdx-labs/mintdeck/business/kadena/infra/chainweb"
	"github.com/kdx-labs/mintdeck/business/kadena/infra/zelcore"
	"github.com/kdx-labs/mintdeck/internal/config"
	"github.com/kdx-labs/mintdeck/internal/di"
	"github.com/kdx-labs/mintdeck/internal/localstore"
	"github.com/kdx-labs/mintdeck/internal/logger"
	"github.com/kdx-labs/mintdeck/internal/monolith"
)

// Module implements the kadena bounded context.
type Module struct{}

// RegisterServices registers all kadena services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register ChainClient (Chainweb node) - private dependency
	di.RegisterToken(c, kadenaDI.ChainClient, func(sr di.ServiceRegistry) app.ChainClient {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := chainweb.NewClient(chainweb.Config{
			NodeURL:        cfg.Chainweb.NodeURL,
			NetworkID:      cfg.Chainweb.NetworkID,
			ChainID:        cfg.Chainweb.ChainID,
			RequestTimeout: cfg.Chainweb.RequestTimeout,
			ListenTimeout:  cfg.Chainweb.ListenTimeout,
			ListenRPM:      cfg.Chainweb.ListenRPM,
		}, log)
		if err != nil {
			panic("failed to create chainweb client: " + err.Error())
		}
		return client
	})

	// Register WalletService (public - exposed to other modules)
	di.RegisterToken(c, kadenaDI.WalletService, func(sr di.ServiceRegistry) *app.WalletService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		store := sr.Get("localStore").(*localstore.Store)
		notifier := kadenaDI.GetWalletNotifier(sr)

		provider, err := zelcore.NewProvider(cfg.Wallet.ZelcoreURL, log)
		if err != nil {
			panic("failed to create zelcore provider: " + err.Error())
		}

		return app.NewWalletService(store, notifier, log, provider)
	})

	// Register TxService (public - exposed to other modules)
	di.RegisterToken(c, kadenaDI.TxService, func(sr di.ServiceRegistry) *app.TxService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		chain := kadenaDI.GetChainClient(sr)

		return app.NewTxService(chain, app.TxConfig{
			NetworkID:    cfg.Chainweb.NetworkID,
			ChainID:      cfg.Chainweb.ChainID,
			TTL:          cfg.Chainweb.TTLSeconds,
			ReadGasLimit: cfg.Chainweb.ReadGasLimit,
			GasPrice:     cfg.Chainweb.GasPrice,
		}, log)
	})

	return nil
}

// Startup initializes the kadena module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	wallet := kadenaDI.GetWalletService(mono.Services())
	if wallet.Connected() {
		log.Info(ctx, "wallet session restored",
			"provider", wallet.Provider(), "account", wallet.Account())
	}

	// Probe the node so a bad URL surfaces at startup instead of on the
	// first mint.
	tx := kadenaDI.GetTxService(mono.Services())
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := tx.Query(probeCtx, "(+ 1 2)", nil); err != nil {
		log.Warn(ctx, "chainweb node probe failed", "error", err)
	}

	log.Info(ctx, "kadena module started")
	return nil
}
