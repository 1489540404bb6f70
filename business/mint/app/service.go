package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kdx-labs/mintdeck/business/mint/domain"
	"github.com/kdx-labs/mintdeck/internal/apperror"
	"github.com/kdx-labs/mintdeck/internal/logger"
)

// SaleConfig identifies the collection being sold.
type SaleConfig struct {
	Contract     string
	Name         string
	URIRoot      string
	MintGasLimit int64
}

// SaleService owns the storefront state: the collection summary, the
// connected account's tokens and whitelist counts, and the sale clock.
// All reads go through Snapshot; mutations come from the chain loaders
// and from the pipeline's optimistic updates.
type SaleService struct {
	tx       TxGateway
	cfg      SaleConfig
	notifier Notifier
	log      logger.LoggerInterface
	clock    *SaleClock

	mu      sync.Mutex
	summary domain.CollectionSummary
	ledger  *domain.WhitelistLedger
	tokens  []domain.OwnedToken
	account string
}

// NewSaleService creates the service with an idle clock. LoadCollection
// starts the countdown.
func NewSaleService(tx TxGateway, cfg SaleConfig, notifier Notifier, log logger.LoggerInterface) *SaleService {
	s := &SaleService{
		tx:       tx,
		cfg:      cfg,
		notifier: notifier,
		log:      log,
		ledger:   domain.NewWhitelistLedger(),
	}
	s.clock = NewSaleClock(s.onTick)
	return s
}

// Config returns the sale configuration.
func (s *SaleService) Config() SaleConfig {
	return s.cfg
}

// Stop halts the sale clock.
func (s *SaleService) Stop() {
	s.clock.Stop()
}

func (s *SaleService) onTick(domain.ActiveTier, domain.Countdown) {
	s.notifier.SaleUpdated(s.Snapshot())
}

// LoadCollection reads the collection summary from the chain and
// installs its tiers on the clock.
func (s *SaleService) LoadCollection(ctx context.Context) error {
	code := fmt.Sprintf("(%s.get-collection-data %q)", s.cfg.Contract, s.cfg.Name)

	raw, err := s.tx.Query(ctx, code, nil)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeCollectionLoadFailed, s.cfg.Name)
	}

	summary, err := domain.DecodeCollection(s.cfg.Name, raw)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeCollectionLoadFailed, s.cfg.Name)
	}

	s.mu.Lock()
	s.summary = summary
	s.mu.Unlock()

	s.log.Info(ctx, "collection loaded",
		"collection", summary.Name,
		"minted", summary.MintedCount,
		"totalSupply", summary.TotalSupply,
		"tiers", len(summary.Tiers))

	s.clock.SetTiers(summary.Tiers)
	return nil
}

// LoadAccount reads the account's owned tokens and whitelist counts in
// one chain round trip. The counts it installs are authoritative and
// replace any optimistic state.
func (s *SaleService) LoadAccount(ctx context.Context, account string) error {
	s.mu.Lock()
	tiers := append([]domain.Tier(nil), s.summary.Tiers...)
	s.mu.Unlock()

	raw, err := s.tx.Query(ctx, s.accountCode(account, tiers), nil)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeAccountLoadFailed, account)
	}

	tokens, counts, err := domain.DecodeAccountData(raw)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeAccountLoadFailed, account)
	}

	s.mu.Lock()
	s.account = account
	s.tokens = tokens
	s.ledger.SetCounts(counts)
	s.mu.Unlock()

	s.log.Info(ctx, "account data loaded", "account", account, "tokens", len(tokens))
	return nil
}

// accountCode builds the combined read: owned tokens plus one
// whitelist-count lookup per whitelist tier.
func (s *SaleService) accountCode(account string, tiers []domain.Tier) string {
	var counts []string
	for _, tier := range tiers {
		if tier.Type != domain.TierTypeWhitelist {
			continue
		}
		counts = append(counts, fmt.Sprintf("%q: (%s.get-whitelist-mint-count %q %q %q)",
			tier.ID, s.cfg.Contract, s.cfg.Name, tier.ID, account))
	}
	return fmt.Sprintf("[(%s.get-owned-for-collection %q %q) {%s}]",
		s.cfg.Contract, account, s.cfg.Name, strings.Join(counts, ", "))
}

// ClearAccount drops the account state on wallet disconnect.
func (s *SaleService) ClearAccount() {
	s.mu.Lock()
	s.account = ""
	s.tokens = nil
	s.ledger = domain.NewWhitelistLedger()
	s.mu.Unlock()
}

// Snapshot assembles the current sale state for rendering.
func (s *SaleService) Snapshot() Snapshot {
	view, countdown := s.clock.Active()

	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := domain.NotWhitelisted
	if view.Tier != nil {
		remaining = s.ledger.Remaining(*view.Tier)
	}

	return Snapshot{
		Collection: s.summary,
		Active:     view,
		Countdown:  countdown,
		PriceText:  domain.PriceLabel(view.Cost),
		Remaining:  remaining,
		Tokens:     append([]domain.OwnedToken(nil), s.tokens...),
		Account:    s.account,
		Complete:   s.summary.Complete(),
	}
}

// active returns the clock's current view.
func (s *SaleService) active() domain.ActiveTier {
	view, _ := s.clock.Active()
	return view
}

// bankAccount returns the collection's payout account.
func (s *SaleService) bankAccount() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary.BankAccount
}

// applyMint advances minted and whitelist state after a mint passed
// simulation and broadcast. The appended tokens are unrevealed until
// the next authoritative account load.
func (s *SaleService) applyMint(tierID string, amount int64) {
	s.mu.Lock()
	minted := s.summary.MintedCount
	s.summary.MintedCount += amount
	for i := int64(1); i <= amount; i++ {
		s.tokens = append(s.tokens, domain.OwnedToken{TokenID: minted + i})
	}
	s.ledger.RecordMint(tierID, amount)
	s.mu.Unlock()

	s.notifier.SaleUpdated(s.Snapshot())
}
