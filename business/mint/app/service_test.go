package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	kadena "github.com/kdx-labs/mintdeck/business/kadena/app"
	kdomain "github.com/kdx-labs/mintdeck/business/kadena/domain"
	"github.com/kdx-labs/mintdeck/business/mint/domain"
	"github.com/kdx-labs/mintdeck/internal/logger"
)

type fakeTx struct {
	mu           sync.Mutex
	queryCodes   []string
	queryResults []string
	queryErr     error

	simulateErr   error
	simulateCalls int
	broadcastKey  string
	broadcastErr  error
	broadcasts    int
	lastEnv       kdomain.Envelope

	confirmation kadena.Confirmation
	cfg          kadena.TxConfig
}

func (f *fakeTx) Query(_ context.Context, code string, _ map[string]any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCodes = append(f.queryCodes, code)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if len(f.queryResults) == 0 {
		return nil, fmt.Errorf("no canned query result")
	}
	next := f.queryResults[0]
	f.queryResults = f.queryResults[1:]
	return json.RawMessage(next), nil
}

func (f *fakeTx) Simulate(_ context.Context, env kdomain.Envelope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.simulateCalls++
	f.lastEnv = env
	return f.simulateErr
}

func (f *fakeTx) Broadcast(_ context.Context, env kdomain.Envelope) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts++
	f.lastEnv = env
	if f.broadcastErr != nil {
		return "", f.broadcastErr
	}
	return f.broadcastKey, nil
}

func (f *fakeTx) Await(_ context.Context, requestKey string) <-chan kadena.Confirmation {
	out := make(chan kadena.Confirmation, 1)
	f.mu.Lock()
	conf := f.confirmation
	f.mu.Unlock()
	conf.RequestKey = requestKey
	out <- conf
	close(out)
	return out
}

func (f *fakeTx) Config() kadena.TxConfig {
	return f.cfg
}

func (f *fakeTx) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queryCodes) + f.simulateCalls + f.broadcasts
}

type saleRecorder struct {
	mu          sync.Mutex
	saleUpdates int
	submissions []string
	resolutions []error
	messages    []string
}

func (r *saleRecorder) SaleUpdated(Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saleUpdates++
}

func (r *saleRecorder) TransactionSubmitted(requestKey string, _ int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, requestKey)
}

func (r *saleRecorder) TransactionResolved(_ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolutions = append(r.resolutions, err)
}

func (r *saleRecorder) Notify(_ MessageKind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, text)
}

func (r *saleRecorder) counts() (submitted, resolved, errs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.submissions), len(r.resolutions), len(r.messages)
}

func testSaleLogger() logger.LoggerInterface {
	return logger.New(io.Discard, logger.LevelError, "test", nil)
}

func testSaleConfig() SaleConfig {
	return SaleConfig{
		Contract:     "free.test-mint",
		Name:         "test-collection",
		URIRoot:      "https://cdn.example/tokens/",
		MintGasLimit: 2000,
	}
}

func collectionJSON(start, end time.Time) string {
	return fmt.Sprintf(`{
		"current-index": {"int": 6},
		"total-supply": {"int": 100},
		"bank-account": "k:bank",
		"tiers": [{
			"tier-id": "wl-1",
			"tier-type": "WL",
			"cost": {"decimal": "2.5"},
			"limit": {"int": 5},
			"start-time": {"time": %q},
			"end-time": {"time": %q}
		}]
	}`, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
}

func accountJSON(used int64) string {
	return fmt.Sprintf(`[
		[{"token-id": {"int": 1}, "revealed": true}, {"token-id": {"int": 2}, "revealed": false}],
		{"wl-1": {"int": %d}}
	]`, used)
}

// newLoadedSale builds a service with a live whitelist tier and the
// account's whitelist count already synced from the chain.
func newLoadedSale(t *testing.T, tx *fakeTx, rec *saleRecorder) *SaleService {
	t.Helper()

	now := time.Now()
	tx.queryResults = append(tx.queryResults,
		collectionJSON(now.Add(-time.Hour), now.Add(time.Hour)),
		accountJSON(1),
	)

	sale := NewSaleService(tx, testSaleConfig(), rec, testSaleLogger())
	t.Cleanup(sale.Stop)

	if err := sale.LoadCollection(context.Background()); err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}
	if err := sale.LoadAccount(context.Background(), "k:minter"); err != nil {
		t.Fatalf("LoadAccount: %v", err)
	}
	return sale
}

func TestLoadCollection(t *testing.T) {
	tx := &fakeTx{}
	rec := &saleRecorder{}
	sale := newLoadedSale(t, tx, rec)

	if got, want := tx.queryCodes[0], `(free.test-mint.get-collection-data "test-collection")`; got != want {
		t.Errorf("collection read = %q, want %q", got, want)
	}

	snap := sale.Snapshot()
	if snap.Collection.MintedCount != 5 {
		t.Errorf("minted = %d, want 5", snap.Collection.MintedCount)
	}
	if snap.Collection.BankAccount != "k:bank" {
		t.Errorf("bank = %q", snap.Collection.BankAccount)
	}
	if snap.Active.Status != domain.SaleDuring {
		t.Errorf("status = %q, want during", snap.Active.Status)
	}
	if snap.PriceText != "2.5 KDA" {
		t.Errorf("price text = %q", snap.PriceText)
	}
	if snap.Complete {
		t.Error("collection reported complete at 5/100")
	}
}

func TestLoadCollectionChainFailure(t *testing.T) {
	tx := &fakeTx{queryErr: fmt.Errorf("node down")}
	sale := NewSaleService(tx, testSaleConfig(), &saleRecorder{}, testSaleLogger())
	defer sale.Stop()

	if err := sale.LoadCollection(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadAccountReadShape(t *testing.T) {
	tx := &fakeTx{}
	rec := &saleRecorder{}
	newLoadedSale(t, tx, rec)

	code := tx.queryCodes[1]
	wantOwned := `(free.test-mint.get-owned-for-collection "k:minter" "test-collection")`
	wantCount := `"wl-1": (free.test-mint.get-whitelist-mint-count "test-collection" "wl-1" "k:minter")`
	if !strings.Contains(code, wantOwned) {
		t.Errorf("account read %q missing %q", code, wantOwned)
	}
	if !strings.Contains(code, wantCount) {
		t.Errorf("account read %q missing %q", code, wantCount)
	}
	if !strings.HasPrefix(code, "[") || !strings.HasSuffix(code, "]") {
		t.Errorf("account read is not a pact list: %q", code)
	}
}

func TestLoadAccountInstallsState(t *testing.T) {
	tx := &fakeTx{}
	rec := &saleRecorder{}
	sale := newLoadedSale(t, tx, rec)

	snap := sale.Snapshot()
	if len(snap.Tokens) != 2 {
		t.Fatalf("tokens = %d, want 2", len(snap.Tokens))
	}
	if snap.Tokens[0].TokenID != 1 || !snap.Tokens[0].Revealed {
		t.Errorf("first token = %+v", snap.Tokens[0])
	}
	if snap.Account != "k:minter" {
		t.Errorf("account = %q", snap.Account)
	}
	// limit 5, used 1
	if snap.Remaining != 4 {
		t.Errorf("remaining = %d, want 4", snap.Remaining)
	}
}

func TestClearAccount(t *testing.T) {
	tx := &fakeTx{}
	sale := newLoadedSale(t, tx, &saleRecorder{})

	sale.ClearAccount()

	snap := sale.Snapshot()
	if snap.Account != "" || len(snap.Tokens) != 0 {
		t.Errorf("account state survived clear: %+v", snap)
	}
	if snap.Remaining != domain.NotWhitelisted {
		t.Errorf("remaining = %d, want %d", snap.Remaining, domain.NotWhitelisted)
	}
}
