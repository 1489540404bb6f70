package domain

// NotWhitelisted is the sentinel count for accounts without an entry
// in a whitelist tier.
const NotWhitelisted int64 = -1

// WhitelistLedger tracks per-tier whitelist usage for one account.
// Counts are a local mirror of the chain's bookkeeping: optimistic
// increments after a mint are hints, superseded wholesale by the next
// authoritative load.
type WhitelistLedger struct {
	counts map[string]int64
}

// NewWhitelistLedger creates an empty ledger.
func NewWhitelistLedger() *WhitelistLedger {
	return &WhitelistLedger{counts: make(map[string]int64)}
}

// SetCounts replaces all counts with an authoritative read.
func (l *WhitelistLedger) SetCounts(counts map[string]int64) {
	l.counts = make(map[string]int64, len(counts))
	for id, used := range counts {
		l.counts[id] = used
	}
}

// Used returns the recorded count for a tier and whether an entry exists.
func (l *WhitelistLedger) Used(tierID string) (int64, bool) {
	used, ok := l.counts[tierID]
	return used, ok
}

// Remaining returns how many mints the account has left in tier, or
// NotWhitelisted when the tier is not whitelist-gated or the account
// has no usable entry. The result is not clamped; an optimistic
// overshoot shows as negative until the next refresh corrects it.
func (l *WhitelistLedger) Remaining(tier Tier) int64 {
	if tier.Type != TierTypeWhitelist {
		return NotWhitelisted
	}
	used, ok := l.counts[tier.ID]
	if !ok || used < 0 {
		return NotWhitelisted
	}
	return tier.Limit - used
}

// RecordMint optimistically adds amount to a tier's count. Tiers
// without an entry are not tracked, so the call is a no-op for them.
func (l *WhitelistLedger) RecordMint(tierID string, amount int64) {
	if _, ok := l.counts[tierID]; !ok {
		return
	}
	l.counts[tierID] += amount
}
