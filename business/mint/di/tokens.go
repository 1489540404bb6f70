// Package di contains dependency injection tokens for the mint context.
package di

import (
	"github.com/kdx-labs/mintdeck/business/mint/app"
	"github.com/kdx-labs/mintdeck/internal/di"
)

// Public service tokens - exposed to other modules
var (
	SaleService = di.NewToken[*app.SaleService]("mint.SaleService")
	Pipeline    = di.NewToken[*app.Pipeline]("mint.Pipeline")
)

// Notifier is the rendering sink for sale and transaction events. The
// concrete implementation depends on the run mode.
var Notifier = di.NewToken[app.Notifier]("mint:notifier")

// Helper functions for type-safe access
func GetSaleService(c di.ServiceRegistry) *app.SaleService {
	return di.GetToken(c, SaleService)
}

func GetPipeline(c di.ServiceRegistry) *app.Pipeline {
	return di.GetToken(c, Pipeline)
}

func GetNotifier(c di.ServiceRegistry) app.Notifier {
	return di.GetToken(c, Notifier)
}
