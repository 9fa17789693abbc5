package analytics

import (
	"fmt"
	"sort"

	"proptrack/internal/models"
)

// BreakdownRow aggregates the trades sharing one dimension value.
type BreakdownRow struct {
	Key      string  `json:"key"`
	Trades   int     `json:"trades"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	TotalPnL float64 `json:"totalPnl"`
	WinRate  float64 `json:"winRate"`
	AvgPnL   float64 `json:"avgPnl"`
}

// rrBucket is a fixed risk:reward bin; Max < 0 means unbounded above.
type rrBucket struct {
	Label string
	Min   float64
	Max   float64
}

// Risk:reward bins: min inclusive, max exclusive, last bin open-ended.
var rrBuckets = []rrBucket{
	{Label: "<1", Min: 0, Max: 1},
	{Label: "1-1.5", Min: 1, Max: 1.5},
	{Label: "1.5-2", Min: 1.5, Max: 2},
	{Label: "2-2.5", Min: 2, Max: 2.5},
	{Label: "2.5-3", Min: 2.5, Max: 3},
	{Label: ">3", Min: 3, Max: -1},
}

// breakdown groups trades by the key function and aggregates each group.
// keyFn returns ok=false for trades that do not belong to any group (for
// example a missing optional field); order controls row ordering in the
// result.
func breakdown(trades []models.Trade, keyFn func(models.Trade) (key string, order int, ok bool)) []BreakdownRow {
	type group struct {
		row   BreakdownRow
		order int
	}
	groups := make(map[string]*group)

	for _, t := range trades {
		key, order, ok := keyFn(t)
		if !ok {
			continue
		}
		g, exists := groups[key]
		if !exists {
			g = &group{row: BreakdownRow{Key: key}, order: order}
			groups[key] = g
		}
		g.row.Trades++
		g.row.TotalPnL += t.PnL
		switch t.Result {
		case models.ResultWin:
			g.row.Wins++
		case models.ResultLoss:
			g.row.Losses++
		}
	}

	rows := make([]group, 0, len(groups))
	for _, g := range groups {
		if decisive := g.row.Wins + g.row.Losses; decisive > 0 {
			g.row.WinRate = float64(g.row.Wins) / float64(decisive) * 100
		}
		g.row.AvgPnL = g.row.TotalPnL / float64(g.row.Trades)
		rows = append(rows, *g)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].order != rows[j].order {
			return rows[i].order < rows[j].order
		}
		return rows[i].row.Key < rows[j].row.Key
	})

	out := make([]BreakdownRow, len(rows))
	for i, g := range rows {
		out[i] = g.row
	}
	return out
}

// ByInstrument groups trades by instrument symbol.
func ByInstrument(trades []models.Trade) []BreakdownRow {
	return breakdown(trades, func(t models.Trade) (string, int, bool) {
		if t.Instrument == "" {
			return "", 0, false
		}
		return t.Instrument, 0, true
	})
}

// BySetup groups trades by setup id. setupNames maps ids to display names;
// unknown ids keep the raw id as the key.
func BySetup(trades []models.Trade, setupNames map[string]string) []BreakdownRow {
	return breakdown(trades, func(t models.Trade) (string, int, bool) {
		if t.SetupID == "" {
			return "", 0, false
		}
		if name, ok := setupNames[t.SetupID]; ok {
			return name, 0, true
		}
		return t.SetupID, 0, true
	})
}

// ByDirection groups trades by long/short.
func ByDirection(trades []models.Trade) []BreakdownRow {
	return breakdown(trades, func(t models.Trade) (string, int, bool) {
		switch t.Direction {
		case models.DirectionLong:
			return "long", 0, true
		case models.DirectionShort:
			return "short", 1, true
		}
		return "", 0, false
	})
}

// ByDayOfWeek groups trades by weekday, ordered Sunday through Saturday.
func ByDayOfWeek(trades []models.Trade) []BreakdownRow {
	return breakdown(trades, func(t models.Trade) (string, int, bool) {
		d, err := t.Day()
		if err != nil {
			return "", 0, false
		}
		return d.Weekday().String(), int(d.Weekday()), true
	})
}

// ByHourOfDay groups trades by the hour of their clock time; trades without
// a recorded time are excluded.
func ByHourOfDay(trades []models.Trade) []BreakdownRow {
	return breakdown(trades, func(t models.Trade) (string, int, bool) {
		h, ok := t.Hour()
		if !ok {
			return "", 0, false
		}
		return fmt.Sprintf("%02d:00", h), h, true
	})
}

// ByMonth groups trades by calendar month (YYYY-MM), chronologically.
func ByMonth(trades []models.Trade) []BreakdownRow {
	return breakdown(trades, func(t models.Trade) (string, int, bool) {
		if len(t.Date) < 7 {
			return "", 0, false
		}
		return t.Date[:7], 0, true
	})
}

// ByContracts groups trades by position size.
func ByContracts(trades []models.Trade) []BreakdownRow {
	return breakdown(trades, func(t models.Trade) (string, int, bool) {
		return fmt.Sprintf("%d", t.Contracts), t.Contracts, true
	})
}

// ByRating groups trades by execution-quality rating; unrated trades are
// excluded.
func ByRating(trades []models.Trade) []BreakdownRow {
	return breakdown(trades, func(t models.Trade) (string, int, bool) {
		if t.Rating == nil {
			return "", 0, false
		}
		return fmt.Sprintf("%d", *t.Rating), *t.Rating, true
	})
}

// ByRiskReward groups trades into the fixed risk:reward bins; trades
// without a recorded ratio are excluded.
func ByRiskReward(trades []models.Trade) []BreakdownRow {
	return breakdown(trades, func(t models.Trade) (string, int, bool) {
		if t.RiskReward == nil {
			return "", 0, false
		}
		rr := *t.RiskReward
		for i, b := range rrBuckets {
			if rr >= b.Min && (b.Max < 0 || rr < b.Max) {
				return b.Label, i, true
			}
		}
		return "", 0, false
	})
}

// SequenceStats compares performance after a winning trade with performance
// after a losing trade.
type SequenceStats struct {
	AfterWin  SequenceBucket `json:"afterWin"`
	AfterLoss SequenceBucket `json:"afterLoss"`
}

// SequenceBucket aggregates the trades that followed one kind of outcome.
type SequenceBucket struct {
	Trades   int     `json:"trades"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	TotalPnL float64 `json:"totalPnl"`
	WinRate  float64 `json:"winRate"`
	AvgPnL   float64 `json:"avgPnl"`
}

// AfterWinLoss classifies every trade after the first by the result of the
// immediately preceding trade. A breakeven predecessor classifies neither
// bucket.
func AfterWinLoss(trades []models.Trade) SequenceStats {
	sorted := models.SortChronological(trades)

	var stats SequenceStats
	for i := 1; i < len(sorted); i++ {
		var bucket *SequenceBucket
		switch sorted[i-1].Result {
		case models.ResultWin:
			bucket = &stats.AfterWin
		case models.ResultLoss:
			bucket = &stats.AfterLoss
		default:
			continue
		}
		bucket.Trades++
		bucket.TotalPnL += sorted[i].PnL
		switch sorted[i].Result {
		case models.ResultWin:
			bucket.Wins++
		case models.ResultLoss:
			bucket.Losses++
		}
	}
	finishBucket(&stats.AfterWin)
	finishBucket(&stats.AfterLoss)
	return stats
}

func finishBucket(b *SequenceBucket) {
	if b.Trades == 0 {
		return
	}
	if decisive := b.Wins + b.Losses; decisive > 0 {
		b.WinRate = float64(b.Wins) / float64(decisive) * 100
	}
	b.AvgPnL = b.TotalPnL / float64(b.Trades)
}

// FrequencyBucket aggregates the days sharing a trades-per-day range.
type FrequencyBucket struct {
	Label     string  `json:"label"`
	Days      int     `json:"days"`
	Trades    int     `json:"trades"`
	TotalPnL  float64 `json:"totalPnl"`
	AvgDayPnL float64 `json:"avgDayPnl"`
}

// FrequencyImpact groups trading days by how many trades were taken and
// reports total and average daily P&L per bucket: overtrading analysis.
func FrequencyImpact(trades []models.Trade) []FrequencyBucket {
	type day struct {
		count int
		pnl   float64
	}
	days := make(map[string]*day)
	for _, t := range trades {
		d, ok := days[t.Date]
		if !ok {
			d = &day{}
			days[t.Date] = d
		}
		d.count++
		d.pnl += t.PnL
	}

	buckets := []FrequencyBucket{
		{Label: "1 trade"},
		{Label: "2-3 trades"},
		{Label: "4-5 trades"},
		{Label: "6+ trades"},
	}
	for _, d := range days {
		var idx int
		switch {
		case d.count <= 1:
			idx = 0
		case d.count <= 3:
			idx = 1
		case d.count <= 5:
			idx = 2
		default:
			idx = 3
		}
		buckets[idx].Days++
		buckets[idx].Trades += d.count
		buckets[idx].TotalPnL += d.pnl
	}
	for i := range buckets {
		if buckets[i].Days > 0 {
			buckets[i].AvgDayPnL = buckets[i].TotalPnL / float64(buckets[i].Days)
		}
	}
	return buckets
}
