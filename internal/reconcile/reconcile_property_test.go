package reconcile

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"proptrack/internal/models"
)

func reconcileGenParams() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	return parameters
}

// genAccounts produces six accounts with a random mix of lifecycle states.
func genAccounts() gopter.Gen {
	return gen.SliceOfN(6, gen.IntRange(0, 3)).Map(func(kinds []int) []models.Account {
		accounts := make([]models.Account, 0, len(kinds))
		for i, kind := range kinds {
			a := models.Account{
				ID:          fmt.Sprintf("acc-%d", i),
				AccountSize: 50000,
				StartDate:   "2026-01-01",
			}
			switch kind {
			case 0:
				a.Type = models.AccountEvaluation
				a.Status = models.StatusInProgress
				target, drawdown := 3000.0, 2500.0
				a.ProfitTarget = &target
				a.MaxDrawdown = &drawdown
			case 1:
				a.Type = models.AccountFunded
				a.Status = models.StatusActive
				drawdown := 2000.0
				a.MaxDrawdown = &drawdown
			case 2:
				a.Type = models.AccountEvaluation
				a.Status = models.StatusFailed
				a.ProfitLoss = -2500
			case 3:
				a.Type = models.AccountFunded
				a.Status = models.StatusWithdrawn
				a.ProfitLoss = 800
			}
			accounts = append(accounts, a)
		}
		return accounts
	})
}

// genTrades produces trades referencing the generated account ids, with
// roughly a third of them split trades.
func genTrades() gopter.Gen {
	return gen.SliceOf(gopter.CombineGens(
		gen.IntRange(0, 8), // 6-8 reference nothing real, exercising orphan ids
		gen.Float64Range(-1000, 1000),
		gen.IntRange(0, 2),
	).Map(func(values []interface{}) models.Trade {
		idx := values[0].(int)
		pnl := values[1].(float64)
		split := values[2].(int) == 0

		t := models.Trade{
			ID:        fmt.Sprintf("trade-%d-%f", idx, pnl),
			Date:      "2026-02-01",
			Direction: models.DirectionLong,
			Entry:     100,
			Contracts: 1,
			PnL:       math.Round(pnl*100) / 100,
		}
		if split {
			t.Account = models.SplitRef()
		} else {
			t.Account = models.DirectRef(fmt.Sprintf("acc-%d", idx))
		}
		return t
	}))
}

// Property: reconciliation is a pure function of its inputs; two runs on
// the same collections agree exactly.
func TestProperty_ReconcileDeterministic(t *testing.T) {
	properties := gopter.NewProperties(reconcileGenParams())

	properties.Property("same input, same output", prop.ForAll(
		func(accounts []models.Account, trades []models.Trade) bool {
			once := ReconcileAt(accounts, trades, "2026-02-02")
			twice := ReconcileAt(accounts, trades, "2026-02-02")
			for i := range once {
				if once[i] != twice[i] {
					return false
				}
			}
			return true
		},
		genAccounts(),
		genTrades(),
	))

	properties.TestingRun(t)
}

// Property: accounts with no direct trades and no split eligibility are
// byte-for-byte unchanged.
func TestProperty_ReconcileUntouchedAccounts(t *testing.T) {
	properties := gopter.NewProperties(reconcileGenParams())

	properties.Property("untouched accounts survive verbatim", prop.ForAll(
		func(accounts []models.Account, trades []models.Trade) bool {
			touched := make(map[string]bool)
			hasSplit := false
			for _, tr := range trades {
				if tr.Account.IsSplit() {
					hasSplit = true
				} else {
					touched[tr.Account.AccountID] = true
				}
			}

			out := ReconcileAt(accounts, trades, "2026-02-02")
			for i, a := range accounts {
				if touched[a.ID] || (a.IsActive() && hasSplit) {
					continue
				}
				if out[i] != a {
					return false
				}
			}
			return true
		},
		genAccounts(),
		genTrades(),
	))

	properties.TestingRun(t)
}

// Property: split shares distributed across N active accounts sum back to
// the split total within N cents of rounding slack.
func TestProperty_ReconcileSplitConservation(t *testing.T) {
	properties := gopter.NewProperties(reconcileGenParams())

	properties.Property("split total conserved within rounding", prop.ForAll(
		func(accounts []models.Account, trades []models.Trade) bool {
			activeCount := 0
			for _, a := range accounts {
				if a.IsActive() {
					activeCount++
				}
			}
			splitTotal := 0.0
			hasSplit := false
			directTotal := make(map[string]float64)
			for _, tr := range trades {
				if tr.Account.IsSplit() {
					splitTotal += tr.PnL
					hasSplit = true
				} else {
					directTotal[tr.Account.AccountID] += tr.PnL
				}
			}
			if !hasSplit || activeCount == 0 {
				return true
			}

			out := ReconcileAt(accounts, trades, "2026-02-02")
			distributed := 0.0
			for i, a := range accounts {
				if a.IsActive() {
					distributed += out[i].ProfitLoss - directTotal[a.ID]
				}
			}
			slack := 0.01 * float64(activeCount)
			return math.Abs(distributed-splitTotal) <= slack+1e-6
		},
		genAccounts(),
		genTrades(),
	))

	properties.TestingRun(t)
}
