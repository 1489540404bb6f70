package domain

import (
	"testing"
	"time"
)

func TestWhitelistRemaining(t *testing.T) {
	tier := Tier{ID: "og", Type: TierTypeWhitelist, Limit: 5}

	tests := []struct {
		name   string
		counts map[string]int64
		tier   Tier
		want   int64
	}{
		{"entry with usage", map[string]int64{"og": 1}, tier, 4},
		{"unused entry", map[string]int64{"og": 0}, tier, 5},
		{"no entry", map[string]int64{}, tier, NotWhitelisted},
		{"sentinel entry", map[string]int64{"og": NotWhitelisted}, tier, NotWhitelisted},
		{"public tier", map[string]int64{"open": 2}, Tier{ID: "open", Type: TierTypePublic, Limit: 5}, NotWhitelisted},
		{"overshoot goes negative", map[string]int64{"og": 7}, tier, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewWhitelistLedger()
			ledger.SetCounts(tt.counts)
			if got := ledger.Remaining(tt.tier); got != tt.want {
				t.Errorf("Remaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWhitelistRecordMint(t *testing.T) {
	ledger := NewWhitelistLedger()
	ledger.SetCounts(map[string]int64{"og": 1})

	ledger.RecordMint("og", 3)

	used, ok := ledger.Used("og")
	if !ok || used != 4 {
		t.Errorf("Used(og) = %d, %v, want 4, true", used, ok)
	}
}

func TestWhitelistRecordMintNoEntry(t *testing.T) {
	ledger := NewWhitelistLedger()
	ledger.SetCounts(map[string]int64{"og": 1})

	ledger.RecordMint("public", 3)

	if _, ok := ledger.Used("public"); ok {
		t.Error("RecordMint created an entry for an untracked tier")
	}
	if used, _ := ledger.Used("og"); used != 1 {
		t.Errorf("unrelated entry changed to %d", used)
	}
}

func TestWhitelistSetCountsSupersedesOptimistic(t *testing.T) {
	ledger := NewWhitelistLedger()
	ledger.SetCounts(map[string]int64{"og": 1})
	ledger.RecordMint("og", 2)

	// A fresh authoritative read replaces local hints wholesale.
	ledger.SetCounts(map[string]int64{"og": 2})

	tier := Tier{ID: "og", Type: TierTypeWhitelist, Limit: 5, StartTime: time.Now(), EndTime: time.Now()}
	if got := ledger.Remaining(tier); got != 3 {
		t.Errorf("Remaining() after refresh = %d, want 3", got)
	}
}

func TestWhitelistSetCountsCopiesInput(t *testing.T) {
	counts := map[string]int64{"og": 1}
	ledger := NewWhitelistLedger()
	ledger.SetCounts(counts)

	counts["og"] = 99

	if used, _ := ledger.Used("og"); used != 1 {
		t.Errorf("ledger aliased caller's map, Used = %d", used)
	}
}
