// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"proptrack/internal/models"
)

// Collection names used as persistence keys. Each collection is stored and
// replaced as a whole; there is no row-level transactionality.
const (
	CollectionAccounts      = "accounts"
	CollectionTrades        = "trades"
	CollectionDailyEntries  = "dailyEntries"
	CollectionPayouts       = "payouts"
	CollectionExpenses      = "expenses"
	CollectionPropFirms     = "propFirms"
	CollectionTradingSetups = "tradingSetups"
)

// DataStore is the entity store: raw collections in, raw collections out.
// All derived state is recomputed from these collections on demand.
type DataStore interface {
	Accounts(ctx context.Context) ([]models.Account, error)
	SetAccounts(ctx context.Context, accounts []models.Account) error

	Trades(ctx context.Context) ([]models.Trade, error)
	SetTrades(ctx context.Context, trades []models.Trade) error

	DailyEntries(ctx context.Context) ([]models.DailyEntry, error)
	SetDailyEntries(ctx context.Context, entries []models.DailyEntry) error

	Payouts(ctx context.Context) ([]models.Payout, error)
	SetPayouts(ctx context.Context, payouts []models.Payout) error

	Expenses(ctx context.Context) ([]models.Expense, error)
	SetExpenses(ctx context.Context, expenses []models.Expense) error

	PropFirms(ctx context.Context) ([]models.PropFirm, error)
	SetPropFirms(ctx context.Context, firms []models.PropFirm) error

	TradingSetups(ctx context.Context) ([]models.TradingSetup, error)
	SetTradingSetups(ctx context.Context, setups []models.TradingSetup) error

	// Bundle snapshots every collection; RestoreBundle replaces every
	// collection. Used by sync and backup (last write wins).
	Bundle(ctx context.Context) (models.Bundle, error)
	RestoreBundle(ctx context.Context, b models.Bundle) error

	// Sync bookkeeping
	LastSync(ctx context.Context) (time.Time, error)
	SetLastSync(ctx context.Context, t time.Time) error

	Close() error
}
