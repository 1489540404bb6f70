// Package chainweb implements the Pact API client for Chainweb nodes.
package chainweb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kdx-labs/mintdeck/business/kadena/domain"
	"github.com/kdx-labs/mintdeck/internal/apperror"
	"github.com/kdx-labs/mintdeck/internal/circuitbreaker"
	"github.com/kdx-labs/mintdeck/internal/httpclient"
	"github.com/kdx-labs/mintdeck/internal/logger"
	"github.com/kdx-labs/mintdeck/internal/ratelimit"
)

// Config holds the connection parameters for a Chainweb node.
type Config struct {
	NodeURL        string
	NetworkID      string
	ChainID        string
	RequestTimeout time.Duration
	ListenTimeout  time.Duration
	ListenRPM      int
}

// Client calls the Pact endpoints of a single chain.
type Client struct {
	api           httpclient.Client
	listen        httpclient.Client
	localBreaker  *circuitbreaker.CircuitBreaker[domain.TxResult]
	sendBreaker   *circuitbreaker.CircuitBreaker[string]
	listenLimiter *ratelimit.Limiter
	log           logger.LoggerInterface
}

// NewClient creates a Pact API client. Listen calls use a separate HTTP
// client because the endpoint long-polls until the transaction is mined.
func NewClient(cfg Config, log logger.LoggerInterface) (*Client, error) {
	baseURL := pactBaseURL(cfg)

	api, err := httpclient.NewInstrumentedClient(
		httpclient.WithBaseURL(baseURL),
		httpclient.WithProviderName("chainweb"),
		httpclient.WithRequestTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return nil, err
	}

	listen, err := httpclient.NewInstrumentedClient(
		httpclient.WithBaseURL(baseURL),
		httpclient.WithProviderName("chainweb-listen"),
		httpclient.WithRequestTimeout(cfg.ListenTimeout),
	)
	if err != nil {
		return nil, err
	}

	listenRPM := cfg.ListenRPM
	if listenRPM <= 0 {
		listenRPM = 30
	}

	return &Client{
		api:           api,
		listen:        listen,
		localBreaker:  circuitbreaker.New[domain.TxResult](circuitbreaker.DefaultConfig("chainweb-local")),
		sendBreaker:   circuitbreaker.New[string](circuitbreaker.DefaultConfig("chainweb-send")),
		listenLimiter: ratelimit.New(listenRPM),
		log:           log,
	}, nil
}

// pactBaseURL builds the per-chain Pact API root.
func pactBaseURL(cfg Config) string {
	return fmt.Sprintf("%s/chainweb/0.0/%s/chain/%s/pact/api/v1",
		strings.TrimSuffix(cfg.NodeURL, "/"), cfg.NetworkID, cfg.ChainID)
}

// pactErrorHandler turns non-2xx responses into errors carrying the
// node's message. Pact endpoints report command rejections as plain text.
func pactErrorHandler(statusCode int, body []byte) error {
	if statusCode < 400 {
		return nil
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = fmt.Sprintf("status %d", statusCode)
	}
	return apperror.New(apperror.CodeChainwebRequestFailed, apperror.WithContext(msg))
}

// Local dry-runs a command against the node's local evaluation endpoint.
func (c *Client) Local(ctx context.Context, env domain.Envelope) (domain.TxResult, error) {
	return c.localBreaker.Execute(func() (domain.TxResult, error) {
		var result domain.TxResult

		resp, err := c.api.NewRequestWithOptions(
			httpclient.WithLabels(httpclient.NewLabel("endpoint", "local")),
			httpclient.WithResponseErrorHandler(pactErrorHandler),
		).
			SetBody(env).
			SetResult(&result).
			Post(ctx, "/local")
		if err != nil {
			return domain.TxResult{}, err
		}

		if resp.Result() == nil {
			return domain.TxResult{}, decodeError(resp.Body())
		}
		return result, nil
	})
}

// Send submits a signed command to the mempool.
func (c *Client) Send(ctx context.Context, env domain.Envelope) (string, error) {
	return c.sendBreaker.Execute(func() (string, error) {
		var result domain.SendResponse

		resp, err := c.api.NewRequestWithOptions(
			httpclient.WithLabels(httpclient.NewLabel("endpoint", "send")),
			httpclient.WithResponseErrorHandler(pactErrorHandler),
		).
			SetBody(domain.SendRequest{Cmds: []domain.Envelope{env}}).
			SetResult(&result).
			Post(ctx, "/send")
		if err != nil {
			return "", err
		}

		if resp.Result() == nil {
			return "", decodeError(resp.Body())
		}
		if len(result.RequestKeys) == 0 {
			return "", apperror.New(apperror.CodeEmptyRequestKeys)
		}
		return result.RequestKeys[0], nil
	})
}

// Listen long-polls the node until the transaction behind requestKey is
// mined. Calls are rate limited so confirmation polling cannot flood
// the node.
func (c *Client) Listen(ctx context.Context, requestKey string) (domain.TxResult, error) {
	if err := c.listenLimiter.Wait(ctx); err != nil {
		return domain.TxResult{}, err
	}

	var result domain.TxResult

	resp, err := c.listen.NewRequestWithOptions(
		httpclient.WithLabels(httpclient.NewLabel("endpoint", "listen")),
		httpclient.WithResponseErrorHandler(pactErrorHandler),
	).
		SetBody(domain.ListenRequest{Listen: requestKey}).
		SetResult(&result).
		Post(ctx, "/listen")
	if err != nil {
		return domain.TxResult{}, err
	}

	if resp.Result() == nil {
		return domain.TxResult{}, decodeError(resp.Body())
	}
	return result, nil
}

// decodeError reports a response body that did not parse as a result.
func decodeError(body []byte) error {
	preview := string(body)
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return apperror.New(apperror.CodePactDecodeFailed, apperror.WithContext(preview))
}
