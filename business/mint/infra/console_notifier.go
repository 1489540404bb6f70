// Package infra contains infrastructure adapters for the mint context.
package infra

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/kdx-labs/mintdeck/business/mint/app"
	"github.com/kdx-labs/mintdeck/business/mint/domain"
)

// ConsoleNotifier implements the sale and wallet notifier interfaces
// for CLI output. Countdown ticks arrive once a second, so sale updates
// are only printed when the tier or phase actually changes.
type ConsoleNotifier struct {
	out io.Writer

	mu         sync.Mutex
	lastStatus domain.SaleStatus
	lastTierID string
	seeded     bool
}

// NewConsoleNotifier creates a notifier writing to stdout.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{out: os.Stdout}
}

// SaleUpdated prints tier transitions and the collection state.
func (n *ConsoleNotifier) SaleUpdated(snapshot app.Snapshot) {
	n.mu.Lock()
	changed := !n.seeded ||
		snapshot.Active.Status != n.lastStatus ||
		snapshot.Active.TierID() != n.lastTierID
	n.seeded = true
	n.lastStatus = snapshot.Active.Status
	n.lastTierID = snapshot.Active.TierID()
	n.mu.Unlock()

	if !changed {
		return
	}

	fmt.Fprintln(n.out, "")
	fmt.Fprintln(n.out, "================================================================================")
	fmt.Fprintf(n.out, "SALE: %s\n", snapshot.Collection.Name)
	fmt.Fprintln(n.out, "================================================================================")
	fmt.Fprintf(n.out, "Phase:          %s\n", snapshot.Active.Status)
	if tier := snapshot.Active.Tier; tier != nil {
		fmt.Fprintf(n.out, "Tier:           %s (%s)\n", tier.ID, tier.Type)
	}
	fmt.Fprintf(n.out, "Price:          %s\n", snapshot.PriceText)
	fmt.Fprintf(n.out, "Minted:         %d / %d\n", snapshot.Collection.MintedCount, snapshot.Collection.TotalSupply)
	if snapshot.Remaining >= 0 {
		fmt.Fprintf(n.out, "Your mints:     %d remaining\n", snapshot.Remaining)
	}
	if snapshot.Complete {
		fmt.Fprintln(n.out, "Collection is fully minted.")
	}
	fmt.Fprintln(n.out, "================================================================================")
}

// TransactionSubmitted prints the request key of an accepted mint.
func (n *ConsoleNotifier) TransactionSubmitted(requestKey string, amount int64) {
	fmt.Fprintf(n.out, "[%s] mint of %d submitted, request key %s\n",
		time.Now().Format("15:04:05"), amount, requestKey)
}

// TransactionResolved prints the confirmation outcome.
func (n *ConsoleNotifier) TransactionResolved(requestKey string, err error) {
	stamp := time.Now().Format("15:04:05")
	if err != nil {
		fmt.Fprintf(n.out, "[%s] mint %s rejected: %v\n", stamp, requestKey, err)
		return
	}
	fmt.Fprintf(n.out, "[%s] mint %s confirmed\n", stamp, requestKey)
}

// Notify prints a plain user-facing message.
func (n *ConsoleNotifier) Notify(kind app.MessageKind, text string) {
	fmt.Fprintf(n.out, "[%s] %s: %s\n", time.Now().Format("15:04:05"), kind, text)
}

// WalletConnected prints the connected account.
func (n *ConsoleNotifier) WalletConnected(account string) {
	fmt.Fprintf(n.out, "[%s] wallet connected: %s\n", time.Now().Format("15:04:05"), account)
}

// WalletConnectFailed prints the connect error.
func (n *ConsoleNotifier) WalletConnectFailed(err error) {
	fmt.Fprintf(n.out, "[%s] wallet connect failed: %v\n", time.Now().Format("15:04:05"), err)
}

// WalletDisconnected prints the disconnect.
func (n *ConsoleNotifier) WalletDisconnected() {
	fmt.Fprintf(n.out, "[%s] wallet disconnected\n", time.Now().Format("15:04:05"))
}
