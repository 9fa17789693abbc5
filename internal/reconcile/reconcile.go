// Package reconcile keeps account profit/loss and status consistent with
// the trade ledger.
package reconcile

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"proptrack/internal/models"
	"proptrack/internal/store"
)

// Reconcile recomputes each account's realized profit/loss from its linked
// trades and applies automatic status transitions, stamping today's date on
// any terminal transition. It is a pure function of its inputs: safe to
// re-run on the full collections at any time, producing the same result.
func Reconcile(accounts []models.Account, trades []models.Trade) []models.Account {
	return ReconcileAt(accounts, trades, time.Now().Format("2006-01-02"))
}

// ReconcileAt is Reconcile with an explicit date for terminal transitions.
//
// Accounts with no direct trades and no split eligibility are returned
// unchanged: a manually maintained account must never be silently zeroed.
// Split trades are shared equally among accounts active at the time of the
// run; inactive accounts never receive a share, even retroactively.
func ReconcileAt(accounts []models.Account, trades []models.Trade, today string) []models.Account {
	activeCount := 0
	for _, a := range accounts {
		if a.IsActive() {
			activeCount++
		}
	}

	directPnL := make(map[string]float64, len(accounts))
	directSeen := make(map[string]bool, len(accounts))
	splitTotal := 0.0
	hasSplit := false
	for _, t := range trades {
		if t.Account.IsSplit() {
			splitTotal += t.PnL
			hasSplit = true
			continue
		}
		directPnL[t.Account.AccountID] += t.PnL
		directSeen[t.Account.AccountID] = true
	}

	splitShare := 0.0
	if hasSplit && activeCount > 0 {
		splitShare = splitTotal / float64(activeCount)
	}

	out := make([]models.Account, len(accounts))
	for i, a := range accounts {
		splitEligible := a.IsActive() && hasSplit
		if !directSeen[a.ID] && !splitEligible {
			out[i] = a
			continue
		}

		pnl := directPnL[a.ID]
		if splitEligible {
			pnl += splitShare
		}
		a.ProfitLoss = round2(pnl)
		applyTransition(&a, today)
		out[i] = a
	}
	return out
}

// applyTransition moves an account to a terminal status when its newly
// computed profit/loss crosses a configured threshold. Only the current
// status is consulted; terminal accounts are never reopened. The drawdown
// check runs before the profit-target check, so when a single pass crosses
// both thresholds the account fails.
func applyTransition(a *models.Account, today string) {
	switch {
	case a.Type == models.AccountEvaluation && a.Status == models.StatusInProgress:
		if a.MaxDrawdown != nil && a.ProfitLoss <= -*a.MaxDrawdown {
			a.Status = models.StatusFailed
			a.EndDate = today
			return
		}
		if a.ProfitTarget != nil && a.ProfitLoss >= *a.ProfitTarget {
			a.Status = models.StatusPassed
			a.EndDate = today
		}
	case a.Type == models.AccountFunded && a.Status == models.StatusActive:
		if a.MaxDrawdown != nil && a.ProfitLoss <= -*a.MaxDrawdown {
			a.Status = models.StatusBreached
			a.EndDate = today
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Reconciler runs reconciliation against the entity store. It is invoked
// synchronously after every trade mutation.
type Reconciler struct {
	store  store.DataStore
	logger zerolog.Logger
}

// New creates a Reconciler bound to the given store.
func New(s store.DataStore, logger zerolog.Logger) *Reconciler {
	return &Reconciler{store: s, logger: logger}
}

// Run reads accounts and trades, reconciles, and writes accounts back.
func (r *Reconciler) Run(ctx context.Context) error {
	accounts, err := r.store.Accounts(ctx)
	if err != nil {
		return err
	}
	trades, err := r.store.Trades(ctx)
	if err != nil {
		return err
	}

	updated := Reconcile(accounts, trades)

	transitions := 0
	for i := range accounts {
		if accounts[i].Status != updated[i].Status {
			transitions++
			r.logger.Info().
				Str("account", updated[i].ID).
				Str("from", string(accounts[i].Status)).
				Str("to", string(updated[i].Status)).
				Float64("pnl", updated[i].ProfitLoss).
				Msg("Account status transition")
		}
	}
	r.logger.Debug().
		Int("accounts", len(accounts)).
		Int("trades", len(trades)).
		Int("transitions", transitions).
		Msg("Reconciliation complete")

	return r.store.SetAccounts(ctx, updated)
}
