package domain

import (
	"testing"
	"time"
)

const collectionJSON = `{
	"current-index": {"int": 13},
	"total-supply": {"int": 100},
	"bank-account": "k:bank",
	"tiers": [
		{
			"tier-id": "og-wl",
			"tier-type": "WL",
			"cost": 0.0,
			"limit": {"int": 5},
			"start-time": {"time": "2024-07-01T12:00:00Z"},
			"end-time": {"time": "2024-07-01T13:00:00Z"}
		},
		{
			"tier-id": "public",
			"tier-type": "PUBLIC",
			"cost": 2.5,
			"limit": {"int": -1},
			"start-time": {"time": "2024-07-01T13:00:00Z"},
			"end-time": {"time": "2024-07-01T13:00:00Z"}
		}
	]
}`

func TestDecodeCollection(t *testing.T) {
	summary, err := DecodeCollection("my-drop", []byte(collectionJSON))
	if err != nil {
		t.Fatalf("DecodeCollection() error = %v", err)
	}

	if summary.Name != "my-drop" {
		t.Errorf("Name = %q, want my-drop", summary.Name)
	}
	// current-index points at the next token to mint.
	if summary.MintedCount != 12 {
		t.Errorf("MintedCount = %d, want 12", summary.MintedCount)
	}
	if summary.TotalSupply != 100 {
		t.Errorf("TotalSupply = %d, want 100", summary.TotalSupply)
	}
	if summary.BankAccount != "k:bank" {
		t.Errorf("BankAccount = %q, want k:bank", summary.BankAccount)
	}
	if len(summary.Tiers) != 2 {
		t.Fatalf("Tiers length = %d, want 2", len(summary.Tiers))
	}

	wl := summary.Tiers[0]
	if wl.ID != "og-wl" || wl.Type != TierTypeWhitelist || wl.Limit != 5 {
		t.Errorf("whitelist tier = %+v", wl)
	}
	wantStart := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	if !wl.StartTime.Equal(wantStart) {
		t.Errorf("StartTime = %v, want %v", wl.StartTime, wantStart)
	}

	public := summary.Tiers[1]
	if public.Cost != 2.5 || public.Type != TierTypePublic {
		t.Errorf("public tier = %+v", public)
	}
	if !public.Snapshot() {
		t.Error("public tier should be zero-duration")
	}
}

func TestDecodeCollectionInvalid(t *testing.T) {
	if _, err := DecodeCollection("x", []byte(`"not a collection"`)); err == nil {
		t.Error("DecodeCollection() succeeded on garbage")
	}
}

func TestCollectionComplete(t *testing.T) {
	tests := []struct {
		name    string
		summary CollectionSummary
		want    bool
	}{
		{"sold out", CollectionSummary{TotalSupply: 10, MintedCount: 10}, true},
		{"in progress", CollectionSummary{TotalSupply: 10, MintedCount: 9}, false},
		{"empty summary", CollectionSummary{}, false},
	}

	for _, tt := range tests {
		if got := tt.summary.Complete(); got != tt.want {
			t.Errorf("%s: Complete() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDecodeAccountData(t *testing.T) {
	data := `[
		[
			{"token-id": {"int": 3}, "revealed": true},
			{"token-id": {"int": 9}, "revealed": false}
		],
		{"og-wl": {"int": 2}, "fcfs": {"int": -1}}
	]`

	tokens, counts, err := DecodeAccountData([]byte(data))
	if err != nil {
		t.Fatalf("DecodeAccountData() error = %v", err)
	}

	if len(tokens) != 2 {
		t.Fatalf("tokens length = %d, want 2", len(tokens))
	}
	if tokens[0].TokenID != 3 || !tokens[0].Revealed {
		t.Errorf("tokens[0] = %+v", tokens[0])
	}
	if tokens[1].TokenID != 9 || tokens[1].Revealed {
		t.Errorf("tokens[1] = %+v", tokens[1])
	}

	if counts["og-wl"] != 2 {
		t.Errorf("counts[og-wl] = %d, want 2", counts["og-wl"])
	}
	if counts["fcfs"] != NotWhitelisted {
		t.Errorf("counts[fcfs] = %d, want -1", counts["fcfs"])
	}
}

func TestDecodeAccountDataWrongShape(t *testing.T) {
	for _, bad := range []string{`[]`, `[[]]`, `{"a":1}`, `[[], {}, {}]`} {
		if _, _, err := DecodeAccountData([]byte(bad)); err == nil {
			t.Errorf("DecodeAccountData(%s) succeeded, want error", bad)
		}
	}
}

func TestOwnedTokenURIs(t *testing.T) {
	token := OwnedToken{TokenID: 42}

	if got := token.ImageURI("https://cdn.example/nft/"); got != "https://cdn.example/nft/42.gif" {
		t.Errorf("ImageURI() = %q", got)
	}
	if got := token.MetadataURI("https://cdn.example/nft/"); got != "https://cdn.example/nft/42.json" {
		t.Errorf("MetadataURI() = %q", got)
	}
}
