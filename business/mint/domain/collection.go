package domain

import (
	"encoding/json"
	"fmt"

	kadena "github.com/kdx-labs/mintdeck/business/kadena/domain"
)

// CollectionSummary is the on-chain state of a collection as returned
// by get-collection-data.
type CollectionSummary struct {
	Name        string
	TotalSupply int64
	MintedCount int64
	BankAccount string
	Tiers       []Tier
}

// Complete reports whether every token has been minted.
func (c CollectionSummary) Complete() bool {
	return c.TotalSupply > 0 && c.MintedCount >= c.TotalSupply
}

type rawTier struct {
	ID        string             `json:"tier-id"`
	Type      string             `json:"tier-type"`
	Cost      kadena.PactDecimal `json:"cost"`
	Limit     kadena.PactInt     `json:"limit"`
	StartTime kadena.PactTime    `json:"start-time"`
	EndTime   kadena.PactTime    `json:"end-time"`
}

type rawCollection struct {
	CurrentIndex kadena.PactInt `json:"current-index"`
	TotalSupply  kadena.PactInt `json:"total-supply"`
	BankAccount  string         `json:"bank-account"`
	Tiers        []rawTier      `json:"tiers"`
}

// DecodeCollection parses the get-collection-data result. The contract
// stores the next token index, so the minted count is one less.
func DecodeCollection(name string, data []byte) (CollectionSummary, error) {
	var raw rawCollection
	if err := json.Unmarshal(data, &raw); err != nil {
		return CollectionSummary{}, fmt.Errorf("decode collection data: %w", err)
	}

	tiers := make([]Tier, 0, len(raw.Tiers))
	for _, t := range raw.Tiers {
		tiers = append(tiers, Tier{
			ID:        t.ID,
			Type:      TierType(t.Type),
			Cost:      t.Cost.Float64(),
			Limit:     t.Limit.Int64(),
			StartTime: t.StartTime.Time,
			EndTime:   t.EndTime.Time,
		})
	}

	return CollectionSummary{
		Name:        name,
		TotalSupply: raw.TotalSupply.Int64(),
		MintedCount: raw.CurrentIndex.Int64() - 1,
		BankAccount: raw.BankAccount,
		Tiers:       tiers,
	}, nil
}

// DecodeAccountData parses the combined account read: a two-element
// Pact list of [owned tokens, whitelist counts by tier id].
func DecodeAccountData(data []byte) ([]OwnedToken, map[string]int64, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, nil, fmt.Errorf("decode account data: %w", err)
	}
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("decode account data: expected 2 elements, got %d", len(parts))
	}

	var rawTokens []rawToken
	if err := json.Unmarshal(parts[0], &rawTokens); err != nil {
		return nil, nil, fmt.Errorf("decode owned tokens: %w", err)
	}
	tokens := make([]OwnedToken, 0, len(rawTokens))
	for _, t := range rawTokens {
		tokens = append(tokens, OwnedToken{
			TokenID:  t.TokenID.Int64(),
			Revealed: t.Revealed,
		})
	}

	var rawCounts map[string]kadena.PactInt
	if err := json.Unmarshal(parts[1], &rawCounts); err != nil {
		return nil, nil, fmt.Errorf("decode whitelist counts: %w", err)
	}
	counts := make(map[string]int64, len(rawCounts))
	for id, used := range rawCounts {
		counts[id] = used.Int64()
	}

	return tokens, counts, nil
}
