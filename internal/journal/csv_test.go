package journal

import (
	"bytes"
	"strings"
	"testing"

	"proptrack/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	exit := 18150.5
	rr := 2.0
	rating := 4
	trades := []models.Trade{
		{
			ID:         "t1",
			Date:       "2026-03-02",
			Time:       "09:45",
			Instrument: "NQ",
			SetupID:    "setup-1",
			Account:    models.DirectRef("acc-1"),
			Direction:  models.DirectionLong,
			Entry:      18100.25,
			Exit:       &exit,
			Contracts:  2,
			PnL:        312.5,
			Result:     models.ResultWin,
			RiskReward: &rr,
			Rating:     &rating,
			Notes:      "clean breakout",
		},
		{
			ID:        "t2",
			Date:      "2026-03-03",
			Account:   models.SplitRef(),
			Direction: models.DirectionShort,
			Entry:     18200,
			Contracts: 1,
			PnL:       -150,
			Result:    models.ResultLoss,
		},
	}

	var buf bytes.Buffer
	if err := ExportTrades(&buf, trades); err != nil {
		t.Fatalf("ExportTrades: %v", err)
	}

	got, err := ImportTrades(&buf)
	if err != nil {
		t.Fatalf("ImportTrades: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	first := got[0]
	if first.ID != "t1" || first.Date != "2026-03-02" || first.Time != "09:45" {
		t.Errorf("identity fields = %+v", first)
	}
	if first.Account.IsSplit() || first.Account.AccountID != "acc-1" {
		t.Errorf("account = %+v", first.Account)
	}
	if first.Exit == nil || *first.Exit != 18150.5 {
		t.Errorf("exit = %v", first.Exit)
	}
	if first.Rating == nil || *first.Rating != 4 {
		t.Errorf("rating = %v", first.Rating)
	}

	second := got[1]
	if !second.Account.IsSplit() {
		t.Errorf("split account lost: %+v", second.Account)
	}
	if second.Exit != nil || second.RiskReward != nil || second.Rating != nil {
		t.Errorf("empty optionals should stay nil: %+v", second)
	}
}

func TestImportDefaults(t *testing.T) {
	csv := strings.Join([]string{
		"id,date,time,instrument,setup_id,account,direction,entry,exit,stop_loss,contracts,pnl,result,risk_reward,rating,notes",
		",2026-03-02,,NQ,,acc-1,long,18100,,,0,250,,,,",
		",2026-03-02,,NQ,,acc-1,short,18150,,,1,-100,,,,",
		"t1,2026-03-02,,NQ,,acc-1,long,18120,,,1,0,,,,",
	}, "\n")

	got, err := ImportTrades(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportTrades: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}

	if got[0].ID == "" {
		t.Error("missing id not generated")
	}
	// Supplied ids are kept verbatim, however short.
	if got[2].ID != "t1" {
		t.Errorf("id = %q, want t1", got[2].ID)
	}
	if got[0].Contracts != 1 {
		t.Errorf("contracts = %d, want floor of 1", got[0].Contracts)
	}
	// Result falls back to the P&L sign only when the column is empty.
	if got[0].Result != models.ResultWin || got[1].Result != models.ResultLoss || got[2].Result != models.ResultBreakeven {
		t.Errorf("results = %v, %v, %v", got[0].Result, got[1].Result, got[2].Result)
	}
}

func TestImportExplicitResultKept(t *testing.T) {
	csv := strings.Join([]string{
		"id,date,time,instrument,setup_id,account,direction,entry,exit,stop_loss,contracts,pnl,result,risk_reward,rating,notes",
		"t1,2026-03-02,,NQ,,acc-1,long,18100,,,1,250,breakeven,,,",
	}, "\n")

	got, err := ImportTrades(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportTrades: %v", err)
	}
	if got[0].Result != models.ResultBreakeven {
		t.Errorf("result = %v, want the explicit value even against the sign", got[0].Result)
	}
}

func TestImportErrors(t *testing.T) {
	missingDate := strings.Join([]string{
		"id,date,time,instrument,setup_id,account,direction,entry,exit,stop_loss,contracts,pnl,result,risk_reward,rating,notes",
		"t1,,,NQ,,acc-1,long,18100,,,1,250,win,,,",
	}, "\n")
	if _, err := ImportTrades(strings.NewReader(missingDate)); err == nil {
		t.Error("expected error for missing date")
	}

	badRating := strings.Join([]string{
		"id,date,time,instrument,setup_id,account,direction,entry,exit,stop_loss,contracts,pnl,result,risk_reward,rating,notes",
		"t1,2026-03-02,,NQ,,acc-1,long,18100,,,1,250,win,,excellent,",
	}, "\n")
	_, err := ImportTrades(strings.NewReader(badRating))
	if err == nil {
		t.Fatal("expected error for non-numeric rating")
	}
	if !strings.Contains(err.Error(), "row 1") {
		t.Errorf("error %q should name the failing row", err)
	}
}
