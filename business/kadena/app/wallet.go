package app

import (
	"context"
	"strings"
	"sync"

	"github.com/kdx-labs/mintdeck/business/kadena/domain"
	"github.com/kdx-labs/mintdeck/internal/apperror"
	"github.com/kdx-labs/mintdeck/internal/logger"
)

// Session keys in the local store.
const (
	sessionKeyProvider = "wallet.provider"
	sessionKeyAccount  = "wallet.account"
	sessionKeyPubKey   = "wallet.pubkey"
)

// WalletService manages the wallet session and signing.
type WalletService struct {
	providers map[string]WalletProvider
	store     SessionStore
	notifier  Notifier
	log       logger.LoggerInterface

	mu       sync.RWMutex
	provider string
	account  string
	pubKey   string
}

// NewWalletService builds a wallet service and rehydrates any previous
// session from the store.
func NewWalletService(store SessionStore, notifier Notifier, log logger.LoggerInterface, providers ...WalletProvider) *WalletService {
	byName := make(map[string]WalletProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}

	s := &WalletService{
		providers: byName,
		store:     store,
		notifier:  notifier,
		log:       log,
	}

	s.provider = store.Load(sessionKeyProvider)
	s.account = store.Load(sessionKeyAccount)
	s.pubKey = store.Load(sessionKeyPubKey)

	return s
}

// Connect opens a session with the named provider and persists it.
// Every failure path reports through the notifier exactly once.
func (s *WalletService) Connect(ctx context.Context, providerName string) (string, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return s.connectFailed(ctx, apperror.New(apperror.CodeUnknownProvider,
			apperror.WithContext(providerName)))
	}

	account, pubKey, err := provider.Connect(ctx)
	if err != nil {
		return s.connectFailed(ctx, apperror.New(apperror.CodeWalletConnectFailed,
			apperror.WithCause(err),
			apperror.WithContext(providerName)))
	}
	if account == "" {
		return s.connectFailed(ctx, apperror.New(apperror.CodeWalletConnectFailed,
			apperror.WithMessage("Wallet returned no accounts"),
			apperror.WithContext(providerName)))
	}

	// Single-key accounts carry their signing key in the name.
	if pubKey == "" {
		pubKey = pubKeyFromAccount(account)
	}

	s.mu.Lock()
	s.provider = providerName
	s.account = account
	s.pubKey = pubKey
	s.mu.Unlock()

	s.persist(ctx, sessionKeyProvider, providerName)
	s.persist(ctx, sessionKeyAccount, account)
	s.persist(ctx, sessionKeyPubKey, pubKey)

	if s.notifier != nil {
		s.notifier.WalletConnected(account)
	}

	s.log.Info(ctx, "wallet connected", "provider", providerName, "account", account)

	return account, nil
}

// connectFailed surfaces a connect error to the user and returns it.
func (s *WalletService) connectFailed(ctx context.Context, err error) (string, error) {
	s.log.Warn(ctx, "wallet connect failed", "error", err)
	if s.notifier != nil {
		s.notifier.WalletConnectFailed(err)
	}
	return "", err
}

// Disconnect releases the provider session and clears the local one.
// Local state survives a provider-side failure so the user can retry.
func (s *WalletService) Disconnect(ctx context.Context) error {
	s.mu.RLock()
	providerName := s.provider
	s.mu.RUnlock()

	if provider, ok := s.providers[providerName]; ok {
		if err := provider.Disconnect(ctx); err != nil {
			return apperror.New(apperror.CodeWalletDisconnectError,
				apperror.WithCause(err),
				apperror.WithContext(providerName))
		}
	}

	s.mu.Lock()
	s.provider = ""
	s.account = ""
	s.pubKey = ""
	s.mu.Unlock()

	var firstErr error
	for _, key := range []string{sessionKeyProvider, sessionKeyAccount, sessionKeyPubKey} {
		if err := s.store.Delete(key); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if s.notifier != nil {
		s.notifier.WalletDisconnected()
	}

	if firstErr != nil {
		return apperror.New(apperror.CodeWalletDisconnectError,
			apperror.WithCause(firstErr))
	}

	s.log.Info(ctx, "wallet disconnected")

	return nil
}

// Connected reports whether a wallet session is active.
func (s *WalletService) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account != ""
}

// Account returns the session account, or the empty string.
func (s *WalletService) Account() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// PubKey returns the session signing key, or the empty string.
func (s *WalletService) PubKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pubKey
}

// Provider returns the name of the connected provider, or the empty string.
func (s *WalletService) Provider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// Sign fills the session identity into req and hands it to the
// connected provider.
func (s *WalletService) Sign(ctx context.Context, req domain.SigningRequest) (domain.Envelope, error) {
	s.mu.RLock()
	providerName := s.provider
	account := s.account
	pubKey := s.pubKey
	s.mu.RUnlock()

	if account == "" {
		return domain.Envelope{}, apperror.New(apperror.CodeNoWalletConnected)
	}

	provider, ok := s.providers[providerName]
	if !ok {
		return domain.Envelope{}, apperror.New(apperror.CodeUnknownProvider,
			apperror.WithContext(providerName))
	}

	req.Sender = account
	req.SigningPubKey = pubKey

	env, err := provider.Sign(ctx, req)
	if err != nil {
		return domain.Envelope{}, apperror.New(apperror.CodeSigningFailed,
			apperror.WithCause(err),
			apperror.WithContext(providerName))
	}
	return env, nil
}

// persist writes a session value, logging instead of failing. Losing a
// session write only costs a reconnect on the next run.
func (s *WalletService) persist(ctx context.Context, key, value string) {
	if err := s.store.Save(key, value); err != nil {
		s.log.Warn(ctx, "session write failed", "key", key, "error", err)
	}
}

// pubKeyFromAccount extracts the signing key of a single-key account.
func pubKeyFromAccount(account string) string {
	if rest, ok := strings.CutPrefix(account, "k:"); ok {
		return rest
	}
	return ""
}
