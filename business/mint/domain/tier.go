// Package domain contains the sale timing and collection model of the
// mint context.
package domain

import (
	"strconv"
	"time"
)

// TierType distinguishes open tiers from whitelist-gated ones. Values
// match what the contract stores.
type TierType string

const (
	TierTypePublic    TierType = "PUBLIC"
	TierTypeWhitelist TierType = "WL"
)

// Tier is one sale phase of a collection.
type Tier struct {
	ID        string
	Type      TierType
	Cost      float64
	Limit     int64
	StartTime time.Time
	EndTime   time.Time
}

// Snapshot reports whether the tier is zero-duration. Such a tier,
// once reached, is the terminal phase of the sale.
func (t Tier) Snapshot() bool {
	return t.StartTime.Equal(t.EndTime)
}

// SaleStatus is the phase of the sale relative to a point in time.
type SaleStatus string

const (
	SaleBefore   SaleStatus = "before"
	SaleDuring   SaleStatus = "during"
	SaleFinal    SaleStatus = "final"
	SaleInactive SaleStatus = "inactive"
)

// CostNone is the placeholder cost when no tier applies.
const CostNone float64 = -1

// ActiveTier is the resolved sale phase. Tier is nil for the synthetic
// before/inactive/final placeholders.
type ActiveTier struct {
	Status SaleStatus
	Tier   *Tier
	Cost   float64
	Start  time.Time
	End    time.Time
}

// TierID returns the active tier's id, or the empty string for
// placeholder views.
func (a ActiveTier) TierID() string {
	if a.Tier == nil {
		return ""
	}
	return a.Tier.ID
}

// ResolveTier finds the sale phase applying at now.
//
// Tiers are scanned in list order. A zero-duration tier that has been
// reached wins immediately and ends the sale. Otherwise the first tier
// whose window contains now is the active one. When nothing matches,
// the result is a placeholder: before the earliest start the sale has
// not begun, after it we are in a gap between windows.
//
// An empty tier list means no sale is configured at all, which reads
// as a permanently closed sale rather than one that has not started.
func ResolveTier(tiers []Tier, now time.Time) ActiveTier {
	if len(tiers) == 0 {
		return ActiveTier{Status: SaleFinal, Cost: CostNone, Start: now, End: now}
	}

	earliest := now
	for i := range tiers {
		tier := tiers[i]
		if i == 0 || tier.StartTime.Before(earliest) {
			earliest = tier.StartTime
		}

		if tier.Snapshot() && !now.Before(tier.StartTime) {
			return ActiveTier{
				Status: SaleFinal,
				Tier:   &tier,
				Cost:   tier.Cost,
				Start:  tier.StartTime,
				End:    tier.EndTime,
			}
		}
		if !now.Before(tier.StartTime) && !now.After(tier.EndTime) {
			return ActiveTier{
				Status: SaleDuring,
				Tier:   &tier,
				Cost:   tier.Cost,
				Start:  tier.StartTime,
				End:    tier.EndTime,
			}
		}
	}

	status := SaleBefore
	if now.After(earliest) {
		status = SaleInactive
	}
	return ActiveTier{Status: status, Cost: CostNone, Start: now, End: earliest}
}

// PriceLabel renders a tier cost for display.
func PriceLabel(cost float64) string {
	switch {
	case cost < 0:
		return "-"
	case cost == 0:
		return "Free"
	default:
		return strconv.FormatFloat(cost, 'f', -1, 64) + " KDA"
	}
}
