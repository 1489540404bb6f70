// Package main is the entry point for the mintdeck storefront.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/kdx-labs/mintdeck/business/kadena"
	kadenaDI "github.com/kdx-labs/mintdeck/business/kadena/di"
	"github.com/kdx-labs/mintdeck/business/kadena/infra/zelcore"
	"github.com/kdx-labs/mintdeck/business/mint"
	mintDI "github.com/kdx-labs/mintdeck/business/mint/di"
	"github.com/kdx-labs/mintdeck/internal/apm"
	"github.com/kdx-labs/mintdeck/internal/config"
	"github.com/kdx-labs/mintdeck/internal/health"
	"github.com/kdx-labs/mintdeck/internal/logger"
	"github.com/kdx-labs/mintdeck/internal/metrics"
	"github.com/kdx-labs/mintdeck/internal/monolith"
	"github.com/kdx-labs/mintdeck/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	cliMode := flag.Bool("cli", false, "Run in CLI mode with logs (no TUI)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mintdeck %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// TUI is the default, CLI is for debugging
	tuiMode := !*cliMode

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !tuiMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	if err := run(ctx, *configPath, tuiMode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, tuiMode bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Set TUI mode in config so modules know which notifier to build
	cfg.App.TUIMode = tuiMode

	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	var log *logger.Logger
	if tuiMode {
		// In TUI mode, suppress logs (discard output)
		log = logger.New(io.Discard, logLevel, cfg.App.Name, nil)
	} else {
		log = logger.New(os.Stderr, logLevel, cfg.App.Name, nil)
		log.Info(ctx, "starting mintdeck",
			"version", version,
			"environment", cfg.App.Environment,
		)
	}

	// Initialize observability if enabled
	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		traceProvider, err = apm.NewTraceProvider(
			apm.WithServiceName(cfg.Telemetry.ServiceName),
			apm.WithExporter(apm.ZipkinExporter, cfg.Telemetry.OTLPEndpoint, nil, log),
		)
		if err != nil {
			log.Warn(ctx, "tracing disabled", "error", err)
		} else {
			log.Info(ctx, "tracing initialized", "provider", "zipkin", "endpoint", cfg.Telemetry.OTLPEndpoint)
		}

		if _, err := metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.NewPrometheusConfig()),
		); err != nil {
			log.Warn(ctx, "metrics disabled", "error", err)
		} else {
			port := cfg.Telemetry.PrometheusPort
			if port == 0 {
				port = 9090
			}
			go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
			log.Info(ctx, "prometheus metrics server started", "port", port)
		}
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	// Health check server
	healthServer := health.NewServer(8081, version)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", 8081)
	}
	defer healthServer.Stop(ctx)

	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// Modules in dependency order: kadena provides the chain and wallet
	// services the mint context builds on.
	modules := []monolith.Module{
		&kadena.Module{},
		&mint.Module{},
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}

	tx := kadenaDI.GetTxService(mono.Services())
	healthServer.RegisterCachedCheck("chainweb", 30*time.Second, func(ctx context.Context) (bool, string) {
		if _, err := tx.Query(ctx, "(+ 1 1)", nil); err != nil {
			return false, err.Error()
		}
		return true, ""
	})

	if tuiMode {
		startFunc := func() error {
			return mono.StartModules(ctx, modules...)
		}
		return runTUI(ctx, cfg, mono, startFunc)
	}

	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	return runCLI(ctx, mono, log)
}

// runCLI connects the wallet, prints sale state changes through the
// console notifier, and waits for interruption.
func runCLI(ctx context.Context, mono monolith.Monolith, log *logger.Logger) error {
	log.Info(ctx, "all modules started")

	sale := mintDI.GetSaleService(mono.Services())
	defer sale.Stop()

	wallet := kadenaDI.GetWalletService(mono.Services())
	if !wallet.Connected() {
		if _, err := wallet.Connect(ctx, zelcore.ProviderName); err != nil {
			log.Warn(ctx, "wallet connect failed", "error", err)
		} else if err := sale.LoadAccount(ctx, wallet.Account()); err != nil {
			log.Warn(ctx, "account load failed", "error", err)
		}
	}

	<-ctx.Done()
	log.Info(ctx, "shutting down")
	return nil
}

// runTUI drives the Bubble Tea program and bridges its key actions to
// the application services.
func runTUI(ctx context.Context, cfg *config.Config, mono monolith.Monolith, startFunc func() error) error {
	startSignal := make(chan struct{}, 1)
	ui.OnStartModules = func() {
		select {
		case startSignal <- struct{}{}:
		default:
		}
	}

	// Create and start the TUI program immediately (shows welcome screen)
	p := tea.NewProgram(ui.New(cfg.Collection.URIRoot, cfg.Chainweb.NetworkID), tea.WithAltScreen())
	ui.Program = p

	errCh := make(chan error, 1)
	go func() {
		select {
		case <-startSignal:
			// Welcome complete, start modules
		case <-ctx.Done():
			errCh <- nil
			return
		}

		if err := startFunc(); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			errCh <- err
			return
		}

		bindActions(ctx, mono)

		// Seed the dashboard even when the clock is idle (sale ended).
		sale := mintDI.GetSaleService(mono.Services())
		ui.Send(ui.SaleMsg{Snapshot: sale.Snapshot()})

		<-ctx.Done()
		sale.Stop()
		errCh <- nil
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// bindActions wires the TUI key callbacks to the services. Each
// callback already runs off the UI loop.
func bindActions(ctx context.Context, mono monolith.Monolith) {
	sale := mintDI.GetSaleService(mono.Services())
	pipeline := mintDI.GetPipeline(mono.Services())
	wallet := kadenaDI.GetWalletService(mono.Services())

	ui.OnConnectWallet = func() {
		if _, err := wallet.Connect(ctx, zelcore.ProviderName); err != nil {
			return // the notifier already reported it
		}
		if err := sale.LoadAccount(ctx, wallet.Account()); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			return
		}
		ui.Send(ui.SaleMsg{Snapshot: sale.Snapshot()})
	}

	ui.OnDisconnectWallet = func() {
		if err := wallet.Disconnect(ctx); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			return
		}
		sale.ClearAccount()
		ui.Send(ui.SaleMsg{Snapshot: sale.Snapshot()})
	}

	ui.OnMint = func(amount int64) {
		// Failures surface through the notifier as toasts.
		_ = pipeline.SubmitMint(ctx, amount)
	}

	ui.OnRefresh = func() {
		if err := sale.LoadCollection(ctx); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			return
		}
		if wallet.Connected() {
			if err := sale.LoadAccount(ctx, wallet.Account()); err != nil {
				ui.Send(ui.ErrorMsg{Error: err})
			}
		}
		ui.Send(ui.SaleMsg{Snapshot: sale.Snapshot()})
	}
}
