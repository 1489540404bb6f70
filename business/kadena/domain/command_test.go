package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestBuildCommand(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	spec := CommandSpec{
		Code:      `(free.my-nft.mint "drop" "k:abc" 2)`,
		Data:      map[string]any{"account": "k:abc"},
		Sender:    "k:abc",
		NetworkID: "mainnet01",
		ChainID:   "8",
		GasLimit:  4000,
		GasPrice:  0.00000001,
		TTL:       600,
	}

	cmd := BuildCommand(spec, now)

	if cmd.NetworkID != "mainnet01" {
		t.Errorf("NetworkID = %q, want mainnet01", cmd.NetworkID)
	}
	if cmd.Payload.Exec.Code != spec.Code {
		t.Errorf("Code = %q, want %q", cmd.Payload.Exec.Code, spec.Code)
	}
	if cmd.Meta.CreationTime != now.Unix()-10 {
		t.Errorf("CreationTime = %d, want %d", cmd.Meta.CreationTime, now.Unix()-10)
	}
	if cmd.Meta.TTL != 600 {
		t.Errorf("TTL = %d, want 600", cmd.Meta.TTL)
	}
	if cmd.Signers == nil || len(cmd.Signers) != 0 {
		t.Errorf("Signers = %v, want empty non-nil slice", cmd.Signers)
	}
	if cmd.Nonce == "" {
		t.Error("Nonce is empty")
	}

	cmd2 := BuildCommand(spec, now)
	if cmd2.Nonce == cmd.Nonce {
		t.Error("consecutive commands share a nonce")
	}
}

func TestBuildCommandNilData(t *testing.T) {
	cmd := BuildCommand(CommandSpec{Code: "(+ 1 2)"}, time.Now())

	if cmd.Payload.Exec.Data == nil {
		t.Fatal("Data is nil, want empty map")
	}

	encoded, err := json.Marshal(cmd)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(encoded), `"data":{}`) {
		t.Errorf("encoded command missing empty data object: %s", encoded)
	}
}

func TestSealHashCoversExactEncoding(t *testing.T) {
	cmd := BuildCommand(CommandSpec{
		Code:      "(coin.details \"k:abc\")",
		NetworkID: "testnet04",
		ChainID:   "1",
		GasLimit:  150000,
		GasPrice:  0.00000001,
		TTL:       600,
	}, time.Now())

	env, err := Seal(cmd)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	if env.Hash != HashCommand(env.Cmd) {
		t.Error("envelope hash does not match digest of encoded command")
	}
	if len(env.Sigs) != 0 {
		t.Errorf("Sigs = %v, want empty", env.Sigs)
	}

	// The embedded command must round-trip to the original.
	var decoded Command
	if err := json.Unmarshal([]byte(env.Cmd), &decoded); err != nil {
		t.Fatalf("Unmarshal(env.Cmd) error = %v", err)
	}
	if decoded.Nonce != cmd.Nonce {
		t.Errorf("decoded nonce = %q, want %q", decoded.Nonce, cmd.Nonce)
	}
}

func TestHashCommandIsBase64URL(t *testing.T) {
	hash := HashCommand(`{"networkId":"mainnet01"}`)

	// blake2b-256 digests encode to 43 unpadded base64 characters.
	if len(hash) != 43 {
		t.Errorf("hash length = %d, want 43", len(hash))
	}
	if strings.ContainsAny(hash, "+/=") {
		t.Errorf("hash %q contains non-url-safe characters", hash)
	}
}

func TestNewCapability(t *testing.T) {
	gas := NewCapability("Gas", "Pay transaction gas", "coin.GAS")

	if gas.Cap.Name != "coin.GAS" {
		t.Errorf("Cap.Name = %q, want coin.GAS", gas.Cap.Name)
	}
	if gas.Cap.Args == nil || len(gas.Cap.Args) != 0 {
		t.Errorf("Cap.Args = %v, want empty non-nil slice", gas.Cap.Args)
	}

	transfer := NewCapability("Transfer", "Pay mint cost", "coin.TRANSFER", "k:abc", "k:bank", 1.5)
	if len(transfer.Cap.Args) != 3 {
		t.Errorf("Cap.Args length = %d, want 3", len(transfer.Cap.Args))
	}

	encoded, err := json.Marshal(transfer)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"role":"Transfer","description":"Pay mint cost","cap":{"name":"coin.TRANSFER","args":["k:abc","k:bank",1.5]}}`
	if string(encoded) != want {
		t.Errorf("encoded capability = %s, want %s", encoded, want)
	}
}
