package analytics

import (
	"testing"

	"proptrack/internal/models"
)

func TestByInstrument(t *testing.T) {
	nq := trade("2026-03-02", "09:00", 300, models.ResultWin)
	nq.Instrument = "NQ"
	nq2 := trade("2026-03-02", "10:00", -100, models.ResultLoss)
	nq2.Instrument = "NQ"
	es := trade("2026-03-03", "09:00", 50, models.ResultWin)
	es.Instrument = "ES"
	blank := trade("2026-03-03", "10:00", 10, models.ResultWin)

	rows := ByInstrument([]models.Trade{nq, nq2, es, blank})
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2 (blank instrument excluded)", len(rows))
	}
	// Same order key, so alphabetical.
	if rows[0].Key != "ES" || rows[1].Key != "NQ" {
		t.Fatalf("keys = %q, %q", rows[0].Key, rows[1].Key)
	}
	if rows[1].Trades != 2 || rows[1].TotalPnL != 200 || rows[1].WinRate != 50 {
		t.Errorf("NQ row = %+v", rows[1])
	}
	if rows[1].AvgPnL != 100 {
		t.Errorf("NQ AvgPnL = %v, want 100", rows[1].AvgPnL)
	}
}

func TestBySetupResolvesNames(t *testing.T) {
	a := trade("2026-03-02", "09:00", 100, models.ResultWin)
	a.SetupID = "setup-1"
	b := trade("2026-03-02", "10:00", 100, models.ResultWin)
	b.SetupID = "setup-unknown"

	rows := BySetup([]models.Trade{a, b}, map[string]string{"setup-1": "Opening Range"})
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	keys := map[string]bool{rows[0].Key: true, rows[1].Key: true}
	if !keys["Opening Range"] || !keys["setup-unknown"] {
		t.Errorf("keys = %v", keys)
	}
}

func TestByDayOfWeekOrdered(t *testing.T) {
	mon := trade("2026-03-02", "09:00", 100, models.ResultWin) // a Monday
	fri := trade("2026-03-06", "09:00", -50, models.ResultLoss)
	sun := trade("2026-03-01", "09:00", 25, models.ResultWin)

	rows := ByDayOfWeek([]models.Trade{fri, mon, sun})
	want := []string{"Sunday", "Monday", "Friday"}
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	for i, w := range want {
		if rows[i].Key != w {
			t.Errorf("row %d key = %q, want %q", i, rows[i].Key, w)
		}
	}
}

func TestByHourOfDayExcludesTimeless(t *testing.T) {
	timed := trade("2026-03-02", "09:45", 100, models.ResultWin)
	timeless := trade("2026-03-02", "", 100, models.ResultWin)

	rows := ByHourOfDay([]models.Trade{timed, timeless})
	if len(rows) != 1 || rows[0].Key != "09:00" || rows[0].Trades != 1 {
		t.Errorf("rows = %+v, want single 09:00 row with one trade", rows)
	}
}

func TestByRiskRewardBuckets(t *testing.T) {
	mk := func(rr float64) models.Trade {
		tr := trade("2026-03-02", "", 100, models.ResultWin)
		tr.RiskReward = &rr
		return tr
	}
	rows := ByRiskReward([]models.Trade{
		mk(0.5),  // <1
		mk(1),    // 1-1.5 (min inclusive)
		mk(1.49), // 1-1.5 (max exclusive)
		mk(1.5),  // 1.5-2
		mk(3),    // >3 boundary belongs to the open bucket
		mk(7),    // >3
		trade("2026-03-02", "", 100, models.ResultWin), // no ratio, excluded
	})

	got := map[string]int{}
	for _, r := range rows {
		got[r.Key] = r.Trades
	}
	want := map[string]int{"<1": 1, "1-1.5": 2, "1.5-2": 1, ">3": 2}
	for k, n := range want {
		if got[k] != n {
			t.Errorf("bucket %q = %d trades, want %d", k, got[k], n)
		}
	}
	if len(rows) != len(want) {
		t.Errorf("rows = %+v, want only populated buckets", rows)
	}
}

func TestAfterWinLoss(t *testing.T) {
	trades := []models.Trade{
		trade("2026-03-02", "09:00", 100, models.ResultWin),
		trade("2026-03-02", "10:00", 200, models.ResultWin),       // after win
		trade("2026-03-02", "11:00", 0, models.ResultBreakeven),   // after win
		trade("2026-03-02", "12:00", -50, models.ResultLoss),      // after breakeven: neither
		trade("2026-03-03", "09:00", 75, models.ResultWin),        // after loss
	}
	seq := AfterWinLoss(trades)

	if seq.AfterWin.Trades != 2 || seq.AfterWin.TotalPnL != 200 {
		t.Errorf("AfterWin = %+v, want 2 trades totalling 200", seq.AfterWin)
	}
	if seq.AfterWin.WinRate != 100 {
		t.Errorf("AfterWin.WinRate = %v, want 100 (breakeven not decisive)", seq.AfterWin.WinRate)
	}
	if seq.AfterLoss.Trades != 1 || seq.AfterLoss.TotalPnL != 75 {
		t.Errorf("AfterLoss = %+v, want 1 trade totalling 75", seq.AfterLoss)
	}
}

func TestFrequencyImpact(t *testing.T) {
	var trades []models.Trade
	add := func(date string, pnls ...float64) {
		for i, p := range pnls {
			res := models.ResultWin
			if p < 0 {
				res = models.ResultLoss
			}
			tr := trade(date, "", p, res)
			tr.ID = tr.ID + string(rune('a'+i))
			trades = append(trades, tr)
		}
	}
	add("2026-03-02", 100)                            // 1 trade
	add("2026-03-03", 50, -25)                        // 2-3
	add("2026-03-04", 10, 10, 10, 10)                 // 4-5
	add("2026-03-05", -5, -5, -5, -5, -5, -5, -5)     // 6+

	buckets := FrequencyImpact(trades)
	if len(buckets) != 4 {
		t.Fatalf("len = %d, want 4 fixed buckets", len(buckets))
	}
	if buckets[0].Days != 1 || buckets[0].TotalPnL != 100 {
		t.Errorf("bucket 0 = %+v", buckets[0])
	}
	if buckets[1].Days != 1 || buckets[1].Trades != 2 || buckets[1].TotalPnL != 25 {
		t.Errorf("bucket 1 = %+v", buckets[1])
	}
	if buckets[2].Days != 1 || buckets[2].Trades != 4 || buckets[2].TotalPnL != 40 {
		t.Errorf("bucket 2 = %+v", buckets[2])
	}
	if buckets[3].Days != 1 || buckets[3].Trades != 7 || buckets[3].TotalPnL != -35 {
		t.Errorf("bucket 3 = %+v", buckets[3])
	}
	if buckets[3].AvgDayPnL != -35 {
		t.Errorf("bucket 3 AvgDayPnL = %v, want -35", buckets[3].AvgDayPnL)
	}
}
