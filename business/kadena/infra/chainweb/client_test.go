package chainweb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kdx-labs/mintdeck/business/kadena/domain"
	"github.com/kdx-labs/mintdeck/internal/apperror"
	"github.com/kdx-labs/mintdeck/internal/logger"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		NodeURL:        server.URL,
		NetworkID:      "testnet04",
		ChainID:        "1",
		RequestTimeout: 5 * time.Second,
		ListenTimeout:  5 * time.Second,
		ListenRPM:      600,
	}, logger.New(io.Discard, logger.LevelError, "test", nil))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestPactBaseURL(t *testing.T) {
	got := pactBaseURL(Config{
		NodeURL:   "https://api.chainweb.com/",
		NetworkID: "mainnet01",
		ChainID:   "8",
	})
	want := "https://api.chainweb.com/chainweb/0.0/mainnet01/chain/8/pact/api/v1"
	if got != want {
		t.Errorf("pactBaseURL() = %q, want %q", got, want)
	}
}

func TestLocal(t *testing.T) {
	var gotPath string
	var gotBody domain.Envelope

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(domain.TxResult{
			ReqKey: "rk",
			Result: domain.TxOutcome{Status: domain.StatusSuccess},
		})
	}))

	env := domain.Envelope{Hash: "h", Sigs: []domain.Signature{}, Cmd: "{}"}
	result, err := client.Local(context.Background(), env)
	if err != nil {
		t.Fatalf("Local() error = %v", err)
	}

	if gotPath != "/chainweb/0.0/testnet04/chain/1/pact/api/v1/local" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotBody.Hash != "h" {
		t.Errorf("request hash = %q, want h", gotBody.Hash)
	}
	if !result.Succeeded() {
		t.Error("Local() result did not succeed")
	}
}

func TestLocalNodeRejection(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "Validation failed: Invalid command")
	}))

	_, err := client.Local(context.Background(), domain.Envelope{})
	if apperror.GetCode(err) != apperror.CodeChainwebRequestFailed {
		t.Fatalf("Local() code = %v, want %v", apperror.GetCode(err), apperror.CodeChainwebRequestFailed)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatal("Local() error is not an AppError")
	}
	if appErr.Context != "Validation failed: Invalid command" {
		t.Errorf("error context = %q, want node message", appErr.Context)
	}
}

func TestSend(t *testing.T) {
	var gotReq domain.SendRequest

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chainweb/0.0/testnet04/chain/1/pact/api/v1/send" {
			t.Errorf("request path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(domain.SendResponse{RequestKeys: []string{"rk-1"}})
	}))

	key, err := client.Send(context.Background(), domain.Envelope{Hash: "abc"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if key != "rk-1" {
		t.Errorf("Send() = %q, want rk-1", key)
	}
	if len(gotReq.Cmds) != 1 || gotReq.Cmds[0].Hash != "abc" {
		t.Errorf("send body cmds = %+v", gotReq.Cmds)
	}
}

func TestSendEmptyRequestKeys(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.SendResponse{RequestKeys: []string{}})
	}))

	_, err := client.Send(context.Background(), domain.Envelope{})
	if apperror.GetCode(err) != apperror.CodeEmptyRequestKeys {
		t.Errorf("Send() code = %v, want %v", apperror.GetCode(err), apperror.CodeEmptyRequestKeys)
	}
}

func TestListen(t *testing.T) {
	var gotReq domain.ListenRequest

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(domain.TxResult{
			ReqKey: gotReq.Listen,
			Result: domain.TxOutcome{Status: domain.StatusSuccess},
		})
	}))

	result, err := client.Listen(context.Background(), "rk-listen")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if gotReq.Listen != "rk-listen" {
		t.Errorf("listen body = %q, want rk-listen", gotReq.Listen)
	}
	if result.ReqKey != "rk-listen" {
		t.Errorf("result ReqKey = %q, want rk-listen", result.ReqKey)
	}
}

func TestLocalGarbageBody(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>gateway error</html>")
	}))

	_, err := client.Local(context.Background(), domain.Envelope{})
	if apperror.GetCode(err) != apperror.CodePactDecodeFailed {
		t.Errorf("Local() code = %v, want %v", apperror.GetCode(err), apperror.CodePactDecodeFailed)
	}
}
