package models

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// Direction represents the side of a trade.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// TradeResult represents the trader's classification of a trade outcome.
// It is stored as entered, not derived from the sign of PnL.
type TradeResult string

const (
	ResultWin       TradeResult = "win"
	ResultLoss      TradeResult = "loss"
	ResultBreakeven TradeResult = "breakeven"
)

// RefKind discriminates the two forms of a trade's account reference.
type RefKind string

const (
	RefDirect RefKind = "direct"
	RefSplit  RefKind = "split"
)

// splitSentinel is the wire value for a split account reference.
const splitSentinel = "split"

// AccountRef points a trade at a single account, or marks it as split
// across all accounts that are active at reconciliation time.
type AccountRef struct {
	Kind      RefKind
	AccountID string
}

// DirectRef returns a reference to a single account.
func DirectRef(accountID string) AccountRef {
	return AccountRef{Kind: RefDirect, AccountID: accountID}
}

// SplitRef returns a reference distributing across active accounts.
func SplitRef() AccountRef {
	return AccountRef{Kind: RefSplit}
}

// IsSplit returns true for a split reference.
func (r AccountRef) IsSplit() bool {
	return r.Kind == RefSplit
}

// String returns the wire form of the reference.
func (r AccountRef) String() string {
	if r.Kind == RefSplit {
		return splitSentinel
	}
	return r.AccountID
}

// MarshalJSON encodes the reference as a plain string: the account id for a
// direct reference, the split sentinel otherwise.
func (r AccountRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the string wire form.
func (r *AccountRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseAccountRef(s)
	return nil
}

// ParseAccountRef converts the string wire form into a tagged reference.
func ParseAccountRef(s string) AccountRef {
	if s == splitSentinel {
		return SplitRef()
	}
	return DirectRef(s)
}

// Trade is a single logged execution. PnL is the authoritative realized
// profit/loss; it is not recomputed from entry and exit prices.
type Trade struct {
	ID         string      `json:"id"`
	Date       string      `json:"date"`           // calendar day, YYYY-MM-DD
	Time       string      `json:"time,omitempty"` // clock time HH:MM, empty when not recorded
	Instrument string      `json:"instrument"`
	SetupID    string      `json:"setupId,omitempty"`
	Account    AccountRef  `json:"accountId"`
	Direction  Direction   `json:"direction"`
	Entry      float64     `json:"entry"`
	Exit       *float64    `json:"exit,omitempty"`
	StopLoss   *float64    `json:"stopLoss,omitempty"`
	Contracts  int         `json:"contracts"`
	PnL        float64     `json:"pnl"`
	Result     TradeResult `json:"result"`
	RiskReward *float64    `json:"riskReward,omitempty"`
	Rating     *int        `json:"rating,omitempty"`
	Notes      string      `json:"notes,omitempty"`
}

// Day parses the trade's calendar date.
func (t Trade) Day() (time.Time, error) {
	return time.Parse("2006-01-02", t.Date)
}

// Hour returns the hour component of the trade's clock time.
// ok is false when no time was recorded or it is unparseable.
func (t Trade) Hour() (int, bool) {
	if len(t.Time) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(t.Time[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// ChronologicalLess is the single ordering used by every computation that
// depends on trade order: date ascending, then clock time ascending with a
// missing time sorting before any recorded time. ISO dates and HH:MM times
// compare correctly as strings.
func ChronologicalLess(a, b Trade) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	if (a.Time == "") != (b.Time == "") {
		return a.Time == ""
	}
	return a.Time < b.Time
}

// SortChronological returns a chronologically sorted copy of trades.
// The input slice is left untouched.
func SortChronological(trades []Trade) []Trade {
	sorted := make([]Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ChronologicalLess(sorted[i], sorted[j])
	})
	return sorted
}
