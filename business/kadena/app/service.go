package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kdx-labs/mintdeck/business/kadena/domain"
	"github.com/kdx-labs/mintdeck/internal/apperror"
	"github.com/kdx-labs/mintdeck/internal/logger"
)

// TxConfig carries the chain parameters shared by all commands.
type TxConfig struct {
	NetworkID    string
	ChainID      string
	TTL          int64
	ReadGasLimit int64
	GasPrice     float64
}

// TxService drives the transaction lifecycle against a Chainweb node.
type TxService struct {
	chain ChainClient
	cfg   TxConfig
	log   logger.LoggerInterface
	now   func() time.Time
}

// NewTxService creates a transaction service.
func NewTxService(chain ChainClient, cfg TxConfig, log logger.LoggerInterface) *TxService {
	return &TxService{
		chain: chain,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

// Config returns the chain parameters the service builds commands with.
func (s *TxService) Config() TxConfig {
	return s.cfg
}

// Query dry-runs read-only Pact code and returns the result data.
func (s *TxService) Query(ctx context.Context, code string, data map[string]any) (json.RawMessage, error) {
	cmd := domain.BuildCommand(domain.CommandSpec{
		Code:      code,
		Data:      data,
		NetworkID: s.cfg.NetworkID,
		ChainID:   s.cfg.ChainID,
		GasLimit:  s.cfg.ReadGasLimit,
		GasPrice:  s.cfg.GasPrice,
		TTL:       s.cfg.TTL,
	}, s.now())

	env, err := domain.Seal(cmd)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeChainwebRequestFailed, "seal query")
	}

	result, err := s.chain.Local(ctx, env)
	if err != nil {
		return nil, err
	}
	if !result.Succeeded() {
		return nil, apperror.New(apperror.CodeChainwebRequestFailed,
			apperror.WithContext(result.ErrorMessage()))
	}

	return result.Result.Data, nil
}

// Simulate dry-runs a signed envelope. Only an explicit success status
// passes; anything else is a simulation failure carrying the chain's
// error message.
func (s *TxService) Simulate(ctx context.Context, env domain.Envelope) error {
	result, err := s.chain.Local(ctx, env)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeSimulationFailed, "")
	}

	if result.Result.Status != domain.StatusSuccess {
		return apperror.New(apperror.CodeSimulationFailed,
			apperror.WithContext(result.ErrorMessage()))
	}

	return nil
}

// Broadcast submits a signed envelope to the mempool and returns its
// request key.
func (s *TxService) Broadcast(ctx context.Context, env domain.Envelope) (string, error) {
	requestKey, err := s.chain.Send(ctx, env)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeBroadcastFailed, "")
	}
	return requestKey, nil
}

// Confirmation is the final outcome of a submitted transaction.
type Confirmation struct {
	RequestKey string
	Result     domain.TxResult
	Err        error
}

// Await resolves the outcome of requestKey on the returned channel.
// The channel receives exactly one value; polling happens on a detached
// goroutine so the caller is free to move on.
func (s *TxService) Await(ctx context.Context, requestKey string) <-chan Confirmation {
	out := make(chan Confirmation, 1)

	go func() {
		defer close(out)

		result, err := s.chain.Listen(ctx, requestKey)
		if err != nil {
			s.log.Warn(ctx, "confirmation poll failed", "requestKey", requestKey, "error", err)
			out <- Confirmation{
				RequestKey: requestKey,
				Err:        apperror.Wrap(err, apperror.CodeConfirmationFailed, requestKey),
			}
			return
		}

		out <- Confirmation{RequestKey: requestKey, Result: result}
	}()

	return out
}
