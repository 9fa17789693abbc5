// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"proptrack/internal/models"
)

// SQLiteStore implements DataStore on a local SQLite file. Each collection
// is persisted as a single JSON document keyed by collection name, so a
// write is always a whole-collection overwrite, matching the store's
// key-value contract.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates or opens a store at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// readCollection loads one collection's JSON document into target.
// A collection that was never written decodes to the zero slice.
func (s *SQLiteStore) readCollection(ctx context.Context, name string, target interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading collection %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(data), target); err != nil {
		return fmt.Errorf("decoding collection %s: %w", name, err)
	}
	return nil
}

// writeCollection replaces one collection's JSON document.
func (s *SQLiteStore) writeCollection(ctx context.Context, name string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (name, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		name, string(data))
	if err != nil {
		return fmt.Errorf("writing collection %s: %w", name, err)
	}
	return nil
}

// Accounts returns the account collection.
func (s *SQLiteStore) Accounts(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	err := s.readCollection(ctx, CollectionAccounts, &out)
	return out, err
}

// SetAccounts replaces the account collection.
func (s *SQLiteStore) SetAccounts(ctx context.Context, accounts []models.Account) error {
	return s.writeCollection(ctx, CollectionAccounts, accounts)
}

// Trades returns the trade collection.
func (s *SQLiteStore) Trades(ctx context.Context) ([]models.Trade, error) {
	var out []models.Trade
	err := s.readCollection(ctx, CollectionTrades, &out)
	return out, err
}

// SetTrades replaces the trade collection.
func (s *SQLiteStore) SetTrades(ctx context.Context, trades []models.Trade) error {
	return s.writeCollection(ctx, CollectionTrades, trades)
}

// DailyEntries returns the daily entry collection.
func (s *SQLiteStore) DailyEntries(ctx context.Context) ([]models.DailyEntry, error) {
	var out []models.DailyEntry
	err := s.readCollection(ctx, CollectionDailyEntries, &out)
	return out, err
}

// SetDailyEntries replaces the daily entry collection.
func (s *SQLiteStore) SetDailyEntries(ctx context.Context, entries []models.DailyEntry) error {
	return s.writeCollection(ctx, CollectionDailyEntries, entries)
}

// Payouts returns the payout collection.
func (s *SQLiteStore) Payouts(ctx context.Context) ([]models.Payout, error) {
	var out []models.Payout
	err := s.readCollection(ctx, CollectionPayouts, &out)
	return out, err
}

// SetPayouts replaces the payout collection.
func (s *SQLiteStore) SetPayouts(ctx context.Context, payouts []models.Payout) error {
	return s.writeCollection(ctx, CollectionPayouts, payouts)
}

// Expenses returns the expense collection.
func (s *SQLiteStore) Expenses(ctx context.Context) ([]models.Expense, error) {
	var out []models.Expense
	err := s.readCollection(ctx, CollectionExpenses, &out)
	return out, err
}

// SetExpenses replaces the expense collection.
func (s *SQLiteStore) SetExpenses(ctx context.Context, expenses []models.Expense) error {
	return s.writeCollection(ctx, CollectionExpenses, expenses)
}

// PropFirms returns the prop firm collection.
func (s *SQLiteStore) PropFirms(ctx context.Context) ([]models.PropFirm, error) {
	var out []models.PropFirm
	err := s.readCollection(ctx, CollectionPropFirms, &out)
	return out, err
}

// SetPropFirms replaces the prop firm collection.
func (s *SQLiteStore) SetPropFirms(ctx context.Context, firms []models.PropFirm) error {
	return s.writeCollection(ctx, CollectionPropFirms, firms)
}

// TradingSetups returns the trading setup collection.
func (s *SQLiteStore) TradingSetups(ctx context.Context) ([]models.TradingSetup, error) {
	var out []models.TradingSetup
	err := s.readCollection(ctx, CollectionTradingSetups, &out)
	return out, err
}

// SetTradingSetups replaces the trading setup collection.
func (s *SQLiteStore) SetTradingSetups(ctx context.Context, setups []models.TradingSetup) error {
	return s.writeCollection(ctx, CollectionTradingSetups, setups)
}

// Bundle snapshots every collection into a single serializable value.
func (s *SQLiteStore) Bundle(ctx context.Context) (models.Bundle, error) {
	var b models.Bundle
	var err error

	if b.Accounts, err = s.Accounts(ctx); err != nil {
		return b, err
	}
	if b.Trades, err = s.Trades(ctx); err != nil {
		return b, err
	}
	if b.DailyEntries, err = s.DailyEntries(ctx); err != nil {
		return b, err
	}
	if b.Payouts, err = s.Payouts(ctx); err != nil {
		return b, err
	}
	if b.Expenses, err = s.Expenses(ctx); err != nil {
		return b, err
	}
	if b.PropFirms, err = s.PropFirms(ctx); err != nil {
		return b, err
	}
	if b.TradingSetups, err = s.TradingSetups(ctx); err != nil {
		return b, err
	}
	return b, nil
}

// RestoreBundle replaces every collection with the bundle's contents.
func (s *SQLiteStore) RestoreBundle(ctx context.Context, b models.Bundle) error {
	if err := s.SetAccounts(ctx, b.Accounts); err != nil {
		return err
	}
	if err := s.SetTrades(ctx, b.Trades); err != nil {
		return err
	}
	if err := s.SetDailyEntries(ctx, b.DailyEntries); err != nil {
		return err
	}
	if err := s.SetPayouts(ctx, b.Payouts); err != nil {
		return err
	}
	if err := s.SetExpenses(ctx, b.Expenses); err != nil {
		return err
	}
	if err := s.SetPropFirms(ctx, b.PropFirms); err != nil {
		return err
	}
	return s.SetTradingSetups(ctx, b.TradingSetups)
}

// LastSync returns the time of the last successful sync, or the zero time.
func (s *SQLiteStore) LastSync(ctx context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = 'last_sync'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}

// SetLastSync records the time of a successful sync.
func (s *SQLiteStore) SetLastSync(ctx context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES ('last_sync', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		t.Format(time.RFC3339))
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
