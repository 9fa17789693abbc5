package models

import (
	"encoding/json"
	"testing"
)

func TestAccountRefWireForm(t *testing.T) {
	direct, err := json.Marshal(DirectRef("acc-1"))
	if err != nil {
		t.Fatal(err)
	}
	if string(direct) != `"acc-1"` {
		t.Errorf("direct ref = %s, want bare account id", direct)
	}

	split, err := json.Marshal(SplitRef())
	if err != nil {
		t.Fatal(err)
	}
	if string(split) != `"split"` {
		t.Errorf("split ref = %s", split)
	}

	var ref AccountRef
	if err := json.Unmarshal([]byte(`"split"`), &ref); err != nil {
		t.Fatal(err)
	}
	if !ref.IsSplit() {
		t.Error("decoded sentinel is not split")
	}
	if err := json.Unmarshal([]byte(`"acc-9"`), &ref); err != nil {
		t.Fatal(err)
	}
	if ref.IsSplit() || ref.AccountID != "acc-9" {
		t.Errorf("decoded ref = %+v", ref)
	}
}

func TestTradeJSONUsesAccountIdKey(t *testing.T) {
	trade := Trade{
		ID:        "t1",
		Date:      "2026-03-02",
		Account:   DirectRef("acc-1"),
		Direction: DirectionLong,
		Entry:     100,
		Contracts: 1,
		PnL:       50,
		Result:    ResultWin,
	}
	data, err := json.Marshal(trade)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["accountId"] != "acc-1" {
		t.Errorf("accountId field = %v", raw["accountId"])
	}

	var back Trade
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Account != DirectRef("acc-1") {
		t.Errorf("round-tripped account = %+v", back.Account)
	}
}

func TestChronologicalLess(t *testing.T) {
	at := func(date, clock string) Trade {
		return Trade{Date: date, Time: clock}
	}

	cases := []struct {
		name string
		a, b Trade
		want bool
	}{
		{"earlier date", at("2026-03-01", "15:00"), at("2026-03-02", "09:00"), true},
		{"later date", at("2026-03-03", ""), at("2026-03-02", "09:00"), false},
		{"same date by time", at("2026-03-02", "09:00"), at("2026-03-02", "10:00"), true},
		{"missing time first", at("2026-03-02", ""), at("2026-03-02", "00:01"), true},
		{"timed after timeless", at("2026-03-02", "23:59"), at("2026-03-02", ""), false},
		{"both timeless tie", at("2026-03-02", ""), at("2026-03-02", ""), false},
	}
	for _, tc := range cases {
		if got := ChronologicalLess(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: ChronologicalLess = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSortChronologicalStableAndNonMutating(t *testing.T) {
	trades := []Trade{
		{ID: "b", Date: "2026-03-02"},
		{ID: "a", Date: "2026-03-01"},
		{ID: "c", Date: "2026-03-02"},
	}
	sorted := SortChronological(trades)

	if trades[0].ID != "b" {
		t.Error("input slice was mutated")
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if sorted[i].ID != w {
			t.Errorf("sorted[%d] = %s, want %s (stable for ties)", i, sorted[i].ID, w)
		}
	}
}

func TestHour(t *testing.T) {
	if h, ok := (Trade{Time: "09:45"}).Hour(); !ok || h != 9 {
		t.Errorf("Hour = %d, %v", h, ok)
	}
	if _, ok := (Trade{}).Hour(); ok {
		t.Error("timeless trade reported an hour")
	}
	if _, ok := (Trade{Time: "xx:10"}).Hour(); ok {
		t.Error("garbage time reported an hour")
	}
}

func TestAccountLifecycle(t *testing.T) {
	eval := Account{Type: AccountEvaluation, Status: StatusInProgress}
	if !eval.IsActive() || eval.IsTerminal() {
		t.Errorf("in-progress evaluation: active=%v terminal=%v", eval.IsActive(), eval.IsTerminal())
	}

	passed := Account{Type: AccountEvaluation, Status: StatusPassed}
	if passed.IsActive() || !passed.IsTerminal() {
		t.Errorf("passed evaluation: active=%v terminal=%v", passed.IsActive(), passed.IsTerminal())
	}

	funded := Account{Type: AccountFunded, Status: StatusActive}
	if !funded.IsActive() {
		t.Error("active funded account not active")
	}

	breached := Account{Type: AccountFunded, Status: StatusBreached}
	if breached.IsActive() || !breached.IsTerminal() {
		t.Errorf("breached funded: active=%v terminal=%v", breached.IsActive(), breached.IsTerminal())
	}
}
