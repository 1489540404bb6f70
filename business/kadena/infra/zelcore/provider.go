// Package zelcore integrates the Zelcore wallet's local signing API.
package zelcore

import (
	"context"
	"fmt"
	"time"

	"github.com/kdx-labs/mintdeck/business/kadena/domain"
	"github.com/kdx-labs/mintdeck/internal/apperror"
	"github.com/kdx-labs/mintdeck/internal/httpclient"
	"github.com/kdx-labs/mintdeck/internal/logger"
)

// ProviderName identifies this wallet in sessions and the UI.
const ProviderName = "zelcore"

// signTimeout bounds how long we wait for the user to approve in the
// wallet window.
const signTimeout = 5 * time.Minute

// Provider talks to a locally running Zelcore instance.
type Provider struct {
	accounts httpclient.Client
	signing  httpclient.Client
	log      logger.LoggerInterface
}

// NewProvider creates a Zelcore provider against baseURL, normally
// http://127.0.0.1:9467.
func NewProvider(baseURL string, log logger.LoggerInterface) (*Provider, error) {
	accounts, err := httpclient.NewInstrumentedClient(
		httpclient.WithBaseURL(baseURL),
		httpclient.WithProviderName("zelcore"),
		httpclient.WithRequestTimeout(15*time.Second),
	)
	if err != nil {
		return nil, err
	}

	signing, err := httpclient.NewInstrumentedClient(
		httpclient.WithBaseURL(baseURL),
		httpclient.WithProviderName("zelcore-sign"),
		httpclient.WithRequestTimeout(signTimeout),
	)
	if err != nil {
		return nil, err
	}

	return &Provider{
		accounts: accounts,
		signing:  signing,
		log:      log,
	}, nil
}

// Name implements app.WalletProvider.
func (p *Provider) Name() string {
	return ProviderName
}

type accountsRequest struct {
	Asset string `json:"asset"`
}

type accountsResponse struct {
	Status string   `json:"status"`
	Data   []string `json:"data"`
}

// Connect asks the wallet for its Kadena identity. The accounts
// endpoint answers with the account name first and its signing key
// second.
func (p *Provider) Connect(ctx context.Context) (string, string, error) {
	var result accountsResponse

	resp, err := p.accounts.NewRequest().
		SetBody(accountsRequest{Asset: "kadena"}).
		SetResult(&result).
		Post(ctx, "/v1/accounts")
	if err != nil {
		return "", "", err
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("zelcore accounts: status %d", resp.StatusCode)
	}
	if result.Status == "error" {
		return "", "", fmt.Errorf("zelcore accounts: wallet reported an error")
	}
	if len(result.Data) == 0 {
		return "", "", fmt.Errorf("zelcore accounts: wallet returned no accounts")
	}

	account := result.Data[0]
	pubKey := ""
	if len(result.Data) > 1 {
		pubKey = result.Data[1]
	}
	return account, pubKey, nil
}

// Disconnect implements app.WalletProvider. Zelcore holds no
// server-side session, so there is nothing to release.
func (p *Provider) Disconnect(ctx context.Context) error {
	return nil
}

// signRequest is the wallet's signing payload. It matches the common
// Kadena signing API except pactCode and envData travel as code and data.
type signRequest struct {
	Code          string              `json:"code"`
	Data          map[string]any      `json:"data"`
	Sender        string              `json:"sender"`
	NetworkID     string              `json:"networkId"`
	ChainID       string              `json:"chainId"`
	GasLimit      int64               `json:"gasLimit"`
	GasPrice      float64             `json:"gasPrice"`
	SigningPubKey string              `json:"signingPubKey"`
	TTL           int64               `json:"ttl"`
	Caps          []domain.Capability `json:"caps"`
}

type signResponse struct {
	Status string          `json:"status"`
	Body   domain.Envelope `json:"body"`
}

// Sign presents req in the wallet window and returns the signed envelope.
func (p *Provider) Sign(ctx context.Context, req domain.SigningRequest) (domain.Envelope, error) {
	payload := signRequest{
		Code:          req.PactCode,
		Data:          req.EnvData,
		Sender:        req.Sender,
		NetworkID:     req.NetworkID,
		ChainID:       req.ChainID,
		GasLimit:      req.GasLimit,
		GasPrice:      req.GasPrice,
		SigningPubKey: req.SigningPubKey,
		TTL:           req.TTL,
		Caps:          req.Caps,
	}

	var result signResponse

	resp, err := p.signing.NewRequest().
		SetBody(payload).
		SetResult(&result).
		Post(ctx, "/v1/sign")
	if err != nil {
		return domain.Envelope{}, err
	}
	if resp.IsError() {
		return domain.Envelope{}, fmt.Errorf("zelcore sign: status %d", resp.StatusCode)
	}
	if result.Status == "error" || result.Body.Cmd == "" {
		return domain.Envelope{}, apperror.New(apperror.CodeSigningFailed,
			apperror.WithMessage("Wallet declined to sign"))
	}

	return result.Body, nil
}
