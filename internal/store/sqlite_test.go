package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proptrack/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEmptyCollections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trades, err := s.Trades(ctx)
	require.NoError(t, err)
	assert.Empty(t, trades)

	accounts, err := s.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestTradesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rr := 2.5
	rating := 4
	trades := []models.Trade{
		{
			ID:         "t1",
			Date:       "2026-03-02",
			Time:       "09:45",
			Instrument: "NQ",
			Account:    models.DirectRef("acc-1"),
			Direction:  models.DirectionLong,
			Entry:      18100.25,
			Contracts:  2,
			PnL:        312.5,
			Result:     models.ResultWin,
			RiskReward: &rr,
			Rating:     &rating,
		},
		{
			ID:        "t2",
			Date:      "2026-03-02",
			Account:   models.SplitRef(),
			Direction: models.DirectionShort,
			Entry:     18150,
			Contracts: 1,
			PnL:       -150,
			Result:    models.ResultLoss,
		},
	}
	require.NoError(t, s.SetTrades(ctx, trades))

	got, err := s.Trades(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "acc-1", got[0].Account.AccountID)
	assert.False(t, got[0].Account.IsSplit())
	assert.True(t, got[1].Account.IsSplit())
	require.NotNil(t, got[0].RiskReward)
	assert.Equal(t, 2.5, *got[0].RiskReward)
}

func TestSetCollectionOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetPropFirms(ctx, []models.PropFirm{{ID: "f1", Name: "Apex"}}))
	require.NoError(t, s.SetPropFirms(ctx, []models.PropFirm{{ID: "f2", Name: "Topstep"}}))

	firms, err := s.PropFirms(ctx)
	require.NoError(t, err)
	require.Len(t, firms, 1)
	assert.Equal(t, "f2", firms[0].ID)
}

func TestBundleRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	target := 3000.0
	require.NoError(t, s.SetAccounts(ctx, []models.Account{{
		ID:           "acc-1",
		Type:         models.AccountEvaluation,
		Status:       models.StatusInProgress,
		AccountSize:  50000,
		StartDate:    "2026-01-01",
		ProfitTarget: &target,
	}}))
	pnl := 120.0
	require.NoError(t, s.SetDailyEntries(ctx, []models.DailyEntry{{Date: "2026-03-02", PnL: &pnl}}))
	require.NoError(t, s.SetPayouts(ctx, []models.Payout{{ID: "p1", Date: "2026-03-15", Amount: 1200}}))
	require.NoError(t, s.SetExpenses(ctx, []models.Expense{{ID: "e1", Date: "2026-03-01", Amount: 165}}))

	bundle, err := s.Bundle(ctx)
	require.NoError(t, err)
	assert.Len(t, bundle.Accounts, 1)
	assert.Len(t, bundle.DailyEntries, 1)
	assert.Len(t, bundle.Payouts, 1)
	assert.Len(t, bundle.Expenses, 1)

	// Restoring into a fresh store reproduces every collection.
	other := newTestStore(t)
	require.NoError(t, other.RestoreBundle(ctx, bundle))

	accounts, err := other.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acc-1", accounts[0].ID)
	require.NotNil(t, accounts[0].ProfitTarget)
	assert.Equal(t, 3000.0, *accounts[0].ProfitTarget)
}

func TestLastSync(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ts, err := s.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, ts.IsZero())

	now := time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)
	require.NoError(t, s.SetLastSync(ctx, now))

	ts, err = s.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, ts.Equal(now))
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reopen.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetTradingSetups(ctx, []models.TradingSetup{{ID: "s1", Name: "ORB"}}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	setups, err := s.TradingSetups(ctx)
	require.NoError(t, err)
	require.Len(t, setups, 1)
	assert.Equal(t, "ORB", setups[0].Name)
}
