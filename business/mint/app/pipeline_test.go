package app

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	kadena "github.com/kdx-labs/mintdeck/business/kadena/app"
	kdomain "github.com/kdx-labs/mintdeck/business/kadena/domain"
	"github.com/kdx-labs/mintdeck/internal/apperror"
)

type fakeWallet struct {
	mu        sync.Mutex
	connected bool
	account   string
	signErr   error
	signCalls int
	lastReq   kdomain.SigningRequest
}

func (w *fakeWallet) Connected() bool { return w.connected }
func (w *fakeWallet) Account() string { return w.account }

func (w *fakeWallet) Sign(_ context.Context, req kdomain.SigningRequest) (kdomain.Envelope, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.signCalls++
	w.lastReq = req
	if w.signErr != nil {
		return kdomain.Envelope{}, w.signErr
	}
	return kdomain.Envelope{Hash: "signed", Cmd: "{}"}, nil
}

type fakeReceipts struct {
	mu       sync.Mutex
	recorded []string
	resolved map[string]string
}

func newFakeReceipts() *fakeReceipts {
	return &fakeReceipts{resolved: map[string]string{}}
}

func (r *fakeReceipts) RecordReceipt(requestKey, _, _ string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, requestKey)
	return nil
}

func (r *fakeReceipts) ResolveReceipt(requestKey, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved[requestKey] = status
	return nil
}

func (r *fakeReceipts) statusOf(requestKey string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved[requestKey]
}

type pipelineFixture struct {
	pipeline *Pipeline
	sale     *SaleService
	tx       *fakeTx
	wallet   *fakeWallet
	receipts *fakeReceipts
	rec      *saleRecorder
	baseline int
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	tx := &fakeTx{
		broadcastKey: "req-key-1",
		confirmation: kadena.Confirmation{
			Result: kdomain.TxResult{Result: kdomain.TxOutcome{Status: kdomain.StatusSuccess}},
		},
		cfg: kadena.TxConfig{
			NetworkID:    "testnet04",
			ChainID:      "1",
			TTL:          600,
			ReadGasLimit: 150000,
			GasPrice:     1e-8,
		},
	}
	rec := &saleRecorder{}
	sale := newLoadedSale(t, tx, rec)
	wallet := &fakeWallet{connected: true, account: "k:minter"}
	receipts := newFakeReceipts()

	pipeline, err := NewPipeline(sale, wallet, tx, receipts, rec, testSaleLogger())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	return &pipelineFixture{
		pipeline: pipeline,
		sale:     sale,
		tx:       tx,
		wallet:   wallet,
		receipts: receipts,
		rec:      rec,
		baseline: tx.networkCalls(),
	}
}

func TestSubmitMintRequiresWallet(t *testing.T) {
	f := newPipelineFixture(t)
	f.wallet.connected = false

	err := f.pipeline.SubmitMint(context.Background(), 1)
	if got := apperror.GetCode(err); got != apperror.CodeNoWalletConnected {
		t.Fatalf("code = %q, want %q", got, apperror.CodeNoWalletConnected)
	}
	if f.tx.networkCalls() != f.baseline {
		t.Error("precheck failure reached the network")
	}
	if _, _, errs := f.rec.counts(); errs != 1 {
		t.Errorf("error notifications = %d, want 1", errs)
	}
}

func TestSubmitMintAmountBounds(t *testing.T) {
	f := newPipelineFixture(t)

	for _, amount := range []int64{0, -1, 11} {
		err := f.pipeline.SubmitMint(context.Background(), amount)
		if got := apperror.GetCode(err); got != apperror.CodeInvalidMintAmount {
			t.Errorf("amount %d: code = %q, want %q", amount, got, apperror.CodeInvalidMintAmount)
		}
	}
	if f.tx.networkCalls() != f.baseline {
		t.Error("rejected amounts reached the network")
	}
}

func TestSubmitMintOutsideSaleWindow(t *testing.T) {
	tx := &fakeTx{cfg: kadena.TxConfig{NetworkID: "testnet04", ChainID: "1", TTL: 600}}
	rec := &saleRecorder{}

	now := time.Now()
	tx.queryResults = append(tx.queryResults,
		collectionJSON(now.Add(time.Hour), now.Add(2*time.Hour)),
		accountJSON(0),
	)
	sale := NewSaleService(tx, testSaleConfig(), rec, testSaleLogger())
	defer sale.Stop()
	if err := sale.LoadCollection(context.Background()); err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}

	pipeline, err := NewPipeline(sale, &fakeWallet{connected: true, account: "k:minter"}, tx, newFakeReceipts(), rec, testSaleLogger())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	err = pipeline.SubmitMint(context.Background(), 1)
	if got := apperror.GetCode(err); got != apperror.CodeTierNotActive {
		t.Fatalf("code = %q, want %q", got, apperror.CodeTierNotActive)
	}
}

func TestSubmitMintRejectsUnlistedAccount(t *testing.T) {
	tx := &fakeTx{cfg: kadena.TxConfig{NetworkID: "testnet04", ChainID: "1", TTL: 600}}
	rec := &saleRecorder{}

	now := time.Now()
	tx.queryResults = append(tx.queryResults,
		collectionJSON(now.Add(-time.Hour), now.Add(time.Hour)),
		accountJSON(-1),
	)
	sale := NewSaleService(tx, testSaleConfig(), rec, testSaleLogger())
	defer sale.Stop()
	if err := sale.LoadCollection(context.Background()); err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}
	if err := sale.LoadAccount(context.Background(), "k:minter"); err != nil {
		t.Fatalf("LoadAccount: %v", err)
	}

	wallet := &fakeWallet{connected: true, account: "k:minter"}
	pipeline, err := NewPipeline(sale, wallet, tx, newFakeReceipts(), rec, testSaleLogger())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	err = pipeline.SubmitMint(context.Background(), 1)
	if got := apperror.GetCode(err); got != apperror.CodeNotWhitelisted {
		t.Fatalf("code = %q, want %q", got, apperror.CodeNotWhitelisted)
	}
	if wallet.signCalls != 0 {
		t.Error("unlisted account reached the wallet")
	}
}

func TestSubmitMintSigningRequest(t *testing.T) {
	f := newPipelineFixture(t)

	if err := f.pipeline.SubmitMint(context.Background(), 3); err != nil {
		t.Fatalf("SubmitMint: %v", err)
	}

	req := f.wallet.lastReq
	if want := `(free.test-mint.mint "test-collection" "k:minter" 3)`; req.PactCode != want {
		t.Errorf("code = %q, want %q", req.PactCode, want)
	}
	if req.GasLimit != 6000 {
		t.Errorf("gasLimit = %d, want 6000", req.GasLimit)
	}
	if req.GasPrice != 1e-8 {
		t.Errorf("gasPrice = %v, want 1e-8", req.GasPrice)
	}
	if len(req.Caps) != 3 {
		t.Fatalf("caps = %d, want 3", len(req.Caps))
	}
	transfer := req.Caps[2]
	if transfer.Cap.Name != "coin.TRANSFER" {
		t.Errorf("third cap = %q, want coin.TRANSFER", transfer.Cap.Name)
	}
	wantArgs := []any{"k:minter", "k:bank", 7.5}
	if fmt.Sprint(transfer.Cap.Args) != fmt.Sprint(wantArgs) {
		t.Errorf("transfer args = %v, want %v", transfer.Cap.Args, wantArgs)
	}
}

func TestSubmitMintSignFailureStopsPipeline(t *testing.T) {
	f := newPipelineFixture(t)
	f.wallet.signErr = apperror.New(apperror.CodeSigningFailed)

	err := f.pipeline.SubmitMint(context.Background(), 1)
	if got := apperror.GetCode(err); got != apperror.CodeSigningFailed {
		t.Fatalf("code = %q, want %q", got, apperror.CodeSigningFailed)
	}
	if f.tx.simulateCalls != 0 || f.tx.broadcasts != 0 {
		t.Error("declined signature reached the chain")
	}
}

func TestSubmitMintSimulationFailureLeavesStateUntouched(t *testing.T) {
	f := newPipelineFixture(t)
	f.tx.simulateErr = apperror.New(apperror.CodeSimulationFailed,
		apperror.WithContext("row not found"))

	before := f.sale.Snapshot()
	err := f.pipeline.SubmitMint(context.Background(), 2)
	if got := apperror.GetCode(err); got != apperror.CodeSimulationFailed {
		t.Fatalf("code = %q, want %q", got, apperror.CodeSimulationFailed)
	}

	if f.tx.broadcasts != 0 {
		t.Error("failed simulation was broadcast")
	}

	after := f.sale.Snapshot()
	if after.Collection.MintedCount != before.Collection.MintedCount {
		t.Error("minted count mutated on failure")
	}
	if after.Remaining != before.Remaining {
		t.Error("whitelist state mutated on failure")
	}
	if len(after.Tokens) != len(before.Tokens) {
		t.Error("token list mutated on failure")
	}

	submitted, resolved, errs := f.rec.counts()
	if submitted != 0 || resolved != 0 {
		t.Errorf("transaction notifications = %d/%d, want none", submitted, resolved)
	}
	if errs != 1 {
		t.Errorf("error notifications = %d, want 1", errs)
	}
}

func TestSubmitMintHappyPath(t *testing.T) {
	f := newPipelineFixture(t)

	// Whitelist tier with limit 5, used 1; minted count starts at 5.
	if err := f.pipeline.SubmitMint(context.Background(), 3); err != nil {
		t.Fatalf("SubmitMint: %v", err)
	}

	waitFor(t, func() bool {
		_, resolved, _ := f.rec.counts()
		return resolved == 1
	})

	submitted, resolved, errs := f.rec.counts()
	if submitted != 1 || resolved != 1 {
		t.Errorf("notifications = %d submitted / %d resolved, want 1/1", submitted, resolved)
	}
	if errs != 0 {
		t.Errorf("error notifications = %d, want 0", errs)
	}
	if f.rec.resolutions[0] != nil {
		t.Errorf("resolution error = %v, want nil", f.rec.resolutions[0])
	}

	snap := f.sale.Snapshot()
	if snap.Collection.MintedCount != 8 {
		t.Errorf("minted = %d, want 8", snap.Collection.MintedCount)
	}
	// used 1 + 3 against limit 5
	if snap.Remaining != 1 {
		t.Errorf("remaining = %d, want 1", snap.Remaining)
	}
	if len(snap.Tokens) != 5 {
		t.Fatalf("tokens = %d, want 5", len(snap.Tokens))
	}
	for i, want := range []int64{6, 7, 8} {
		got := snap.Tokens[2+i]
		if got.TokenID != want || got.Revealed {
			t.Errorf("optimistic token %d = %+v, want unrevealed id %d", i, got, want)
		}
	}

	if len(f.receipts.recorded) != 1 || f.receipts.recorded[0] != "req-key-1" {
		t.Errorf("recorded receipts = %v", f.receipts.recorded)
	}
	waitFor(t, func() bool {
		return f.receipts.statusOf("req-key-1") != ""
	})
	if got := f.receipts.statusOf("req-key-1"); got != "success" {
		t.Errorf("receipt status = %q, want success", got)
	}
}

func TestSubmitMintConfirmationFailure(t *testing.T) {
	f := newPipelineFixture(t)
	f.tx.confirmation = kadena.Confirmation{
		Result: kdomain.TxResult{Result: kdomain.TxOutcome{
			Status: kdomain.StatusFailure,
			Error:  &kdomain.TxError{Message: "insufficient funds"},
		}},
	}

	if err := f.pipeline.SubmitMint(context.Background(), 1); err != nil {
		t.Fatalf("SubmitMint: %v", err)
	}

	waitFor(t, func() bool {
		_, resolved, _ := f.rec.counts()
		return resolved == 1
	})

	if f.rec.resolutions[0] == nil {
		t.Fatal("rejected mint resolved without error")
	}
	if got := apperror.GetCode(f.rec.resolutions[0]); got != apperror.CodeConfirmationFailed {
		t.Errorf("code = %q, want %q", got, apperror.CodeConfirmationFailed)
	}
	waitFor(t, func() bool {
		return f.receipts.statusOf("req-key-1") == "failure"
	})
}
