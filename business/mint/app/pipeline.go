package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	kdomain "github.com/kdx-labs/mintdeck/business/kadena/domain"
	"github.com/kdx-labs/mintdeck/business/mint/domain"
	"github.com/kdx-labs/mintdeck/internal/apm"
	"github.com/kdx-labs/mintdeck/internal/apperror"
	"github.com/kdx-labs/mintdeck/internal/localstore"
	"github.com/kdx-labs/mintdeck/internal/logger"
)

const (
	minMintAmount = 1
	maxMintAmount = 10

	mintGasPrice = 1e-8
)

// Pipeline runs a mint attempt end to end: build, sign, simulate,
// broadcast, then await confirmation in the background. Optimistic
// state updates happen only after both simulate and broadcast succeed.
// Every terminal failure surfaces as exactly one user notification;
// nothing is retried.
type Pipeline struct {
	sale     *SaleService
	wallet   WalletGateway
	tx       TxGateway
	receipts ReceiptStore
	notifier Notifier
	log      logger.LoggerInterface
	tracer   apm.Tracer

	submitted metric.Int64Counter
	confirmed metric.Int64Counter
	failed    metric.Int64Counter
}

// NewPipeline wires the mint pipeline and registers its counters.
func NewPipeline(sale *SaleService, wallet WalletGateway, tx TxGateway, receipts ReceiptStore, notifier Notifier, log logger.LoggerInterface) (*Pipeline, error) {
	meter := otel.Meter("mintdeck/mint")

	submitted, err := meter.Int64Counter("mint_submitted_total",
		metric.WithDescription("Mint transactions accepted into the mempool"))
	if err != nil {
		return nil, err
	}
	confirmed, err := meter.Int64Counter("mint_confirmed_total",
		metric.WithDescription("Mint transactions confirmed on chain"))
	if err != nil {
		return nil, err
	}
	failed, err := meter.Int64Counter("mint_failed_total",
		metric.WithDescription("Mint attempts that ended in failure"))
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		sale:      sale,
		wallet:    wallet,
		tx:        tx,
		receipts:  receipts,
		notifier:  notifier,
		log:       log,
		tracer:    apm.NewTracer("mintdeck/mint"),
		submitted: submitted,
		confirmed: confirmed,
		failed:    failed,
	}, nil
}

// SubmitMint mints amount tokens in the currently active tier for the
// connected account. It returns after broadcast; confirmation resolves
// on a detached goroutine and reports through the notifier.
func (p *Pipeline) SubmitMint(ctx context.Context, amount int64) error {
	ctx, span := p.tracer.StartSpanFromContext(ctx, "mint.submit")
	defer span.End()
	span.SetAttributes(attribute.Int64("mint.amount", amount))

	if !p.wallet.Connected() {
		return p.fail(ctx, "precheck", apperror.New(apperror.CodeNoWalletConnected))
	}
	if amount < minMintAmount || amount > maxMintAmount {
		return p.fail(ctx, "precheck", apperror.Validation(apperror.CodeInvalidMintAmount,
			fmt.Sprintf("amount %d outside [%d,%d]", amount, minMintAmount, maxMintAmount)))
	}

	view := p.sale.active()
	if view.Cost < 0 {
		return p.fail(ctx, "precheck", apperror.New(apperror.CodeTierNotActive))
	}
	if view.Tier != nil && view.Tier.Type == domain.TierTypeWhitelist {
		if p.sale.Snapshot().Remaining == domain.NotWhitelisted {
			return p.fail(ctx, "precheck", apperror.New(apperror.CodeNotWhitelisted,
				apperror.WithContext(view.TierID())))
		}
	}

	account := p.wallet.Account()
	env, err := p.wallet.Sign(ctx, p.buildSigningRequest(account, view, amount))
	if err != nil {
		return p.fail(ctx, "sign", err)
	}

	if err := p.tx.Simulate(ctx, env); err != nil {
		return p.fail(ctx, "simulate", err)
	}

	requestKey, err := p.tx.Broadcast(ctx, env)
	if err != nil {
		return p.fail(ctx, "broadcast", err)
	}

	span.SetAttributes(attribute.String("mint.request_key", requestKey))

	cfg := p.sale.Config()
	if err := p.receipts.RecordReceipt(requestKey, account, cfg.Name, int(amount)); err != nil {
		p.log.Warn(ctx, "receipt not recorded", "requestKey", requestKey, "error", err)
	}

	p.sale.applyMint(view.TierID(), amount)
	p.submitted.Add(ctx, 1)
	p.log.Info(ctx, "mint submitted", "requestKey", requestKey, "account", account, "amount", amount)
	p.notifier.TransactionSubmitted(requestKey, amount)

	// The confirmation outlives the caller's context on purpose.
	go p.awaitConfirmation(context.WithoutCancel(ctx), requestKey)

	return nil
}

// buildSigningRequest assembles the wallet request for a mint. The
// transfer capability moves unitPrice times amount from the minter to
// the collection bank.
func (p *Pipeline) buildSigningRequest(account string, view domain.ActiveTier, amount int64) kdomain.SigningRequest {
	cfg := p.sale.Config()
	chain := p.tx.Config()

	total, _ := decimal.NewFromFloat(view.Cost).Mul(decimal.NewFromInt(amount)).Float64()

	return kdomain.SigningRequest{
		PactCode:  fmt.Sprintf("(%s.mint %q %q %d)", cfg.Contract, cfg.Name, account, amount),
		EnvData:   map[string]any{},
		NetworkID: chain.NetworkID,
		ChainID:   chain.ChainID,
		GasLimit:  cfg.MintGasLimit * amount,
		GasPrice:  mintGasPrice,
		TTL:       chain.TTL,
		Caps: []kdomain.Capability{
			kdomain.NewCapability("Gas", "Allows paying for gas", "coin.GAS"),
			kdomain.NewCapability("MINT", "Allows minting NFTs", cfg.Contract+".MINT"),
			kdomain.NewCapability("Transfer", "Allows sending KDA to the specified address",
				"coin.TRANSFER", account, p.sale.bankAccount(), total),
		},
	}
}

// awaitConfirmation resolves the broadcast outcome exactly once.
func (p *Pipeline) awaitConfirmation(ctx context.Context, requestKey string) {
	conf := <-p.tx.Await(ctx, requestKey)

	err := conf.Err
	if err == nil && !conf.Result.Succeeded() {
		err = apperror.New(apperror.CodeConfirmationFailed,
			apperror.WithContext(conf.Result.ErrorMessage()))
	}

	status := localstore.ReceiptSuccess
	if err != nil {
		status = localstore.ReceiptFailure
		p.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "confirm")))
		p.log.Warn(ctx, "mint rejected", "requestKey", requestKey, "error", err)
	} else {
		p.confirmed.Add(ctx, 1)
		p.log.Info(ctx, "mint confirmed", "requestKey", requestKey)
	}

	if rerr := p.receipts.ResolveReceipt(requestKey, status); rerr != nil {
		p.log.Warn(ctx, "receipt not resolved", "requestKey", requestKey, "error", rerr)
	}

	p.notifier.TransactionResolved(requestKey, err)
}

// fail converts a pipeline error into its single user notification.
func (p *Pipeline) fail(ctx context.Context, stage string, err error) error {
	p.tracer.SpanFromContext(ctx).NoticeError(err)
	p.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
	p.log.Warn(ctx, "mint attempt failed", "stage", stage, "error", err)
	p.notifier.Notify(MessageError, userText(err))
	return err
}

func userText(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.UserMessage()
	}
	return err.Error()
}
