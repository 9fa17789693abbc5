package analytics

import (
	"time"

	"proptrack/internal/models"
)

// EquityPoint is one point on an equity curve.
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// DrawdownPoint is one point on a drawdown curve, as a percent decline
// from the running peak.
type DrawdownPoint struct {
	Date     string  `json:"date"`
	Drawdown float64 `json:"drawdown"`
}

// EquityCurve produces a running cumulative P&L over the chronologically
// sorted trades, one point per trade.
func EquityCurve(trades []models.Trade) []EquityPoint {
	sorted := models.SortChronological(trades)

	points := make([]EquityPoint, 0, len(sorted))
	cumulative := 0.0
	for _, t := range sorted {
		cumulative += t.PnL
		points = append(points, EquityPoint{Date: t.Date, Equity: cumulative})
	}
	return points
}

// DailyEquityCurve produces the dashboard equity view: one point per
// distinct trade date at startingCapital plus the cumulative P&L as of that
// date, with a synthetic anchor one day before the first trade at the
// starting capital. Multiple same-day trades collapse to the day's closing
// value.
func DailyEquityCurve(trades []models.Trade, startingCapital float64) []EquityPoint {
	sorted := models.SortChronological(trades)
	if len(sorted) == 0 {
		return nil
	}

	points := []EquityPoint{{
		Date:   dayBefore(sorted[0].Date),
		Equity: startingCapital,
	}}

	cumulative := 0.0
	for i, t := range sorted {
		cumulative += t.PnL
		if i+1 < len(sorted) && sorted[i+1].Date == t.Date {
			continue
		}
		points = append(points, EquityPoint{
			Date:   t.Date,
			Equity: startingCapital + cumulative,
		})
	}
	return points
}

// dayBefore shifts an ISO date back one calendar day. An unparseable date
// is returned as-is.
func dayBefore(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, -1).Format("2006-01-02")
}

// Drawdown walks an equity curve tracking the running peak and returns the
// percent decline at each point together with the maximum decline seen.
// A zero peak yields a zero drawdown.
func Drawdown(curve []EquityPoint) ([]DrawdownPoint, float64) {
	points := make([]DrawdownPoint, 0, len(curve))
	peak := 0.0
	maxDD := 0.0
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		dd := 0.0
		if peak != 0 {
			dd = (peak - p.Equity) / peak * 100
		}
		if dd > maxDD {
			maxDD = dd
		}
		points = append(points, DrawdownPoint{Date: p.Date, Drawdown: dd})
	}
	return points, maxDD
}
