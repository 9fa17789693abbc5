// Package models provides domain models for the performance tracker.
package models

// DailyEntry is a manual per-day annotation. Its PnL is used only for days
// with no trade rows; trades always take precedence.
type DailyEntry struct {
	Date  string   `json:"date"` // upsert key, YYYY-MM-DD
	PnL   *float64 `json:"pnl,omitempty"`
	Notes string   `json:"notes,omitempty"`
}

// PropFirm is a proprietary trading firm an account belongs to.
type PropFirm struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// TradingSetup is a named trade pattern the trader tags trades with.
type TradingSetup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Payout is a withdrawal received from a funded account.
type Payout struct {
	ID        string  `json:"id"`
	AccountID string  `json:"accountId,omitempty"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// Expense is a trading-related cost (evaluation fees, data, tooling).
type Expense struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Bundle is the whole-state snapshot exchanged with the sync proxy and
// used for backup/restore. All fields are plain JSON-compatible values.
type Bundle struct {
	Accounts      []Account      `json:"accounts"`
	Trades        []Trade        `json:"trades"`
	DailyEntries  []DailyEntry   `json:"dailyEntries"`
	Payouts       []Payout       `json:"payouts"`
	Expenses      []Expense      `json:"expenses"`
	PropFirms     []PropFirm     `json:"propFirms"`
	TradingSetups []TradingSetup `json:"tradingSetups"`
}
