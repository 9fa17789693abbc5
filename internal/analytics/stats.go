// Package analytics computes read-only statistics over trade sets. Every
// function takes a trade list and returns a result record; nothing here
// mutates stored state, and every aggregate has a defined zero result for
// empty or degenerate input.
package analytics

import (
	"fmt"
	"math"

	"proptrack/internal/models"
)

// Stats holds the core statistics for a set of trades.
type Stats struct {
	TotalTrades int     `json:"totalTrades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Breakevens  int     `json:"breakevens"`
	WinRate     float64 `json:"winRate"` // percent, breakevens excluded from the denominator
	TotalPnL    float64 `json:"totalPnl"`

	GrossProfit  float64 `json:"grossProfit"`
	GrossLoss    float64 `json:"grossLoss"` // absolute value
	ProfitFactor float64 `json:"profitFactor"`
	Expectancy   float64 `json:"expectancy"`

	AvgWin      float64 `json:"avgWin"`
	AvgLoss     float64 `json:"avgLoss"` // absolute value
	LargestWin  float64 `json:"largestWin"`
	LargestLoss float64 `json:"largestLoss"` // signed, most negative loser

	MaxConsecutiveWins   int `json:"maxConsecutiveWins"`
	MaxConsecutiveLosses int `json:"maxConsecutiveLosses"`

	AvgRiskReward    float64 `json:"avgRiskReward"` // over trades with the field present
	RiskRewardSample int     `json:"riskRewardSample"`
	AvgRating        float64 `json:"avgRating"` // over trades with the field present
	RatingSample     int     `json:"ratingSample"`
}

// Compute calculates the core statistics for a trade list. Chronological
// order only matters for the streak counters; the input may arrive in any
// order.
func Compute(trades []models.Trade) Stats {
	var s Stats
	s.TotalTrades = len(trades)
	if len(trades) == 0 {
		return s
	}

	var rrSum, ratingSum float64
	for _, t := range trades {
		s.TotalPnL += t.PnL
		switch t.Result {
		case models.ResultWin:
			s.Wins++
			s.GrossProfit += t.PnL
			if t.PnL > s.LargestWin {
				s.LargestWin = t.PnL
			}
		case models.ResultLoss:
			s.Losses++
			s.GrossLoss += t.PnL
			if t.PnL < s.LargestLoss {
				s.LargestLoss = t.PnL
			}
		case models.ResultBreakeven:
			s.Breakevens++
		}
		if t.RiskReward != nil {
			rrSum += *t.RiskReward
			s.RiskRewardSample++
		}
		if t.Rating != nil {
			ratingSum += float64(*t.Rating)
			s.RatingSample++
		}
	}
	s.GrossLoss = math.Abs(s.GrossLoss)

	if decisive := s.Wins + s.Losses; decisive > 0 {
		s.WinRate = float64(s.Wins) / float64(decisive) * 100
	}
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	s.ProfitFactor = profitFactor(s.GrossProfit, s.GrossLoss)

	lossRate := float64(s.Losses) / float64(s.TotalTrades)
	s.Expectancy = (s.WinRate/100)*s.AvgWin - lossRate*s.AvgLoss

	s.MaxConsecutiveWins, s.MaxConsecutiveLosses = streaks(trades)

	if s.RiskRewardSample > 0 {
		s.AvgRiskReward = rrSum / float64(s.RiskRewardSample)
	}
	if s.RatingSample > 0 {
		s.AvgRating = ratingSum / float64(s.RatingSample)
	}
	return s
}

// profitFactor applies the division-by-zero policy: no losses with some
// profit is infinite edge, no losses and no profit is zero.
func profitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return grossProfit / grossLoss
}

// FormatProfitFactor renders a profit factor, using the infinity sign for
// the all-winners sentinel.
func FormatProfitFactor(pf float64) string {
	if math.IsInf(pf, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", pf)
}

// streaks walks the trades chronologically and returns the longest runs of
// consecutive wins and losses. A breakeven trade resets both counters: it
// continues neither kind of streak.
func streaks(trades []models.Trade) (maxWins, maxLosses int) {
	sorted := models.SortChronological(trades)

	curWins, curLosses := 0, 0
	for _, t := range sorted {
		switch t.Result {
		case models.ResultWin:
			curWins++
			curLosses = 0
		case models.ResultLoss:
			curLosses++
			curWins = 0
		default:
			curWins, curLosses = 0, 0
		}
		if curWins > maxWins {
			maxWins = curWins
		}
		if curLosses > maxLosses {
			maxLosses = curLosses
		}
	}
	return maxWins, maxLosses
}
