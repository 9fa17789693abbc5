// Package dashboard derives day- and month-granularity rollups for the
// calendar and dashboard views.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"proptrack/internal/models"
)

// DayPnL resolves one day's P&L. Trades strictly override a manual daily
// entry: the entry's P&L is consulted only when the day has zero trade
// rows. ok is false when the day has neither trades nor a manual P&L.
func DayPnL(date string, trades []models.Trade, entries []models.DailyEntry) (pnl float64, ok bool) {
	hasTrades := false
	for _, t := range trades {
		if t.Date == date {
			pnl += t.PnL
			hasTrades = true
		}
	}
	if hasTrades {
		return pnl, true
	}
	for _, e := range entries {
		if e.Date == date && e.PnL != nil {
			return *e.PnL, true
		}
	}
	return 0, false
}

// DayCell is one calendar day in a month view.
type DayCell struct {
	Date       string  `json:"date"`
	PnL        float64 `json:"pnl"`
	HasData    bool    `json:"hasData"`
	TradeCount int     `json:"tradeCount"`
	Manual     bool    `json:"manual"` // P&L came from a daily entry, not trades
	Notes      string  `json:"notes,omitempty"`
}

// MonthSummary is the month-level rollup of resolved daily P&L.
type MonthSummary struct {
	Month       string  `json:"month"` // YYYY-MM
	TotalPnL    float64 `json:"totalPnl"`
	TradingDays int     `json:"tradingDays"` // days with some data
	WinDays     int     `json:"winDays"`
	LossDays    int     `json:"lossDays"`
	WinRate     float64 `json:"winRate"` // flat days count toward neither side
	TradeCount  int     `json:"tradeCount"`
}

// CalendarMonth builds the per-day cells and summary for one month.
func CalendarMonth(year int, month time.Month, trades []models.Trade, entries []models.DailyEntry) ([]DayCell, MonthSummary) {
	tradesByDate := make(map[string][]models.Trade)
	for _, t := range trades {
		tradesByDate[t.Date] = append(tradesByDate[t.Date], t)
	}
	entriesByDate := make(map[string]models.DailyEntry)
	for _, e := range entries {
		entriesByDate[e.Date] = e
	}

	summary := MonthSummary{Month: fmt.Sprintf("%04d-%02d", year, int(month))}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]DayCell, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		cell := DayCell{Date: date}

		dayTrades := tradesByDate[date]
		entry, hasEntry := entriesByDate[date]
		if hasEntry {
			cell.Notes = entry.Notes
		}

		if len(dayTrades) > 0 {
			for _, t := range dayTrades {
				cell.PnL += t.PnL
			}
			cell.TradeCount = len(dayTrades)
			cell.HasData = true
		} else if hasEntry && entry.PnL != nil {
			cell.PnL = *entry.PnL
			cell.Manual = true
			cell.HasData = true
		}

		if cell.HasData {
			summary.TradingDays++
			summary.TotalPnL += cell.PnL
			summary.TradeCount += cell.TradeCount
			if cell.PnL > 0 {
				summary.WinDays++
			} else if cell.PnL < 0 {
				summary.LossDays++
			}
		}
		cells = append(cells, cell)
	}

	if decisive := summary.WinDays + summary.LossDays; decisive > 0 {
		summary.WinRate = float64(summary.WinDays) / float64(decisive) * 100
	}
	return cells, summary
}

// StreakType classifies a run of daily results.
type StreakType string

const (
	StreakGreen StreakType = "green"
	StreakRed   StreakType = "red"
	StreakNone  StreakType = "none"
)

// Streak is the trader's current run of same-sign days.
type Streak struct {
	Count int        `json:"count"`
	Type  StreakType `json:"type"`
}

// CurrentStreak scans daily entries with a defined nonzero P&L from most
// recent backward, classifying the run by the most recent day's sign and
// counting until the first mismatch.
func CurrentStreak(entries []models.DailyEntry) Streak {
	scored := make([]models.DailyEntry, 0, len(entries))
	for _, e := range entries {
		if e.PnL != nil && *e.PnL != 0 {
			scored = append(scored, e)
		}
	}
	if len(scored) == 0 {
		return Streak{Type: StreakNone}
	}
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Date > scored[j].Date
	})

	streak := Streak{Type: StreakGreen}
	if *scored[0].PnL < 0 {
		streak.Type = StreakRed
	}
	for _, e := range scored {
		green := *e.PnL > 0
		if (streak.Type == StreakGreen) != green {
			break
		}
		streak.Count++
	}
	return streak
}
