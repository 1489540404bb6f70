// Package mint implements the storefront bounded context: the tiered
// sale, whitelist bookkeeping, and the mint transaction pipeline.
package mint

import (
	"context"

	kadenaApp "github.com/kdx-labs/mintdeck/business/kadena/app"
	kadenaDI "github.com/kdx-labs/mintdeck/business/kadena/di"
	"github.com/kdx-labs/mintdeck/business/mint/app"
	mintDI "github.com/kdx-labs/mintdeck/business/mint/di"
	"github.com/kdx-labs/mintdeck/business/mint/infra"
	"github.com/kdx-labs/mintdeck/internal/config"
	"github.com/kdx-labs/mintdeck/internal/di"
	"github.com/kdx-labs/mintdeck/internal/localstore"
	"github.com/kdx-labs/mintdeck/internal/logger"
	"github.com/kdx-labs/mintdeck/internal/monolith"
)

// Module implements the mint bounded context.
type Module struct{}

// RegisterServices registers all mint services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// The notifier renders sale and wallet events. One instance serves
	// both this module and the kadena wallet service.
	di.RegisterToken(c, mintDI.Notifier, func(sr di.ServiceRegistry) app.Notifier {
		cfg := sr.Get("config").(*config.Config)
		if cfg.App.TUIMode {
			return infra.NewTUINotifier()
		}
		return infra.NewConsoleNotifier()
	})

	di.RegisterToken(c, kadenaDI.WalletNotifier, func(sr di.ServiceRegistry) kadenaApp.Notifier {
		return mintDI.GetNotifier(sr).(kadenaApp.Notifier)
	})

	di.RegisterToken(c, mintDI.SaleService, func(sr di.ServiceRegistry) *app.SaleService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		tx := kadenaDI.GetTxService(sr)
		notifier := mintDI.GetNotifier(sr)

		return app.NewSaleService(tx, app.SaleConfig{
			Contract:     cfg.Collection.Contract,
			Name:         cfg.Collection.Name,
			URIRoot:      cfg.Collection.URIRoot,
			MintGasLimit: cfg.Chainweb.MintGasLimit,
		}, notifier, log)
	})

	di.RegisterToken(c, mintDI.Pipeline, func(sr di.ServiceRegistry) *app.Pipeline {
		log := sr.Get("logger").(logger.LoggerInterface)
		store := sr.Get("localStore").(*localstore.Store)
		sale := mintDI.GetSaleService(sr)
		wallet := kadenaDI.GetWalletService(sr)
		tx := kadenaDI.GetTxService(sr)
		notifier := mintDI.GetNotifier(sr)

		pipeline, err := app.NewPipeline(sale, wallet, tx, store, notifier, log)
		if err != nil {
			panic("failed to create mint pipeline: " + err.Error())
		}
		return pipeline
	})

	return nil
}

// Startup loads the collection and, when a wallet session survived the
// restart, the account's tokens and whitelist counts. Load failures
// surface as notifications rather than aborting startup so the UI can
// show them.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()
	sale := mintDI.GetSaleService(mono.Services())
	notifier := mintDI.GetNotifier(mono.Services())

	if err := sale.LoadCollection(ctx); err != nil {
		log.Warn(ctx, "collection load failed", "error", err)
		notifier.Notify(app.MessageError, "Failed to load collection data")
		return nil
	}

	wallet := kadenaDI.GetWalletService(mono.Services())
	if wallet.Connected() {
		if err := sale.LoadAccount(ctx, wallet.Account()); err != nil {
			log.Warn(ctx, "account load failed", "error", err)
			notifier.Notify(app.MessageError, "Failed to load account data")
		}
	}

	log.Info(ctx, "mint module started")
	return nil
}
