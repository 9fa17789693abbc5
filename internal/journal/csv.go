// Package journal imports and exports trade records as CSV. Imported rows
// are converted into the same trade shape the CLI forms produce and fed
// through the identical mutation path, so reconciliation applies to them
// exactly as it does to manually entered trades.
package journal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"proptrack/internal/models"
)

// csvTrade is the CSV wire row. Optional columns stay strings so empty
// cells survive the round trip.
type csvTrade struct {
	ID         string  `csv:"id"`
	Date       string  `csv:"date"`
	Time       string  `csv:"time"`
	Instrument string  `csv:"instrument"`
	SetupID    string  `csv:"setup_id"`
	Account    string  `csv:"account"`
	Direction  string  `csv:"direction"`
	Entry      float64 `csv:"entry"`
	Exit       string  `csv:"exit"`
	StopLoss   string  `csv:"stop_loss"`
	Contracts  int     `csv:"contracts"`
	PnL        float64 `csv:"pnl"`
	Result     string  `csv:"result"`
	RiskReward string  `csv:"risk_reward"`
	Rating     string  `csv:"rating"`
	Notes      string  `csv:"notes"`
}

// ExportTrades writes trades to w as CSV.
func ExportTrades(w io.Writer, trades []models.Trade) error {
	rows := make([]csvTrade, 0, len(trades))
	for _, t := range trades {
		row := csvTrade{
			ID:         t.ID,
			Date:       t.Date,
			Time:       t.Time,
			Instrument: t.Instrument,
			SetupID:    t.SetupID,
			Account:    t.Account.String(),
			Direction:  string(t.Direction),
			Entry:      t.Entry,
			Contracts:  t.Contracts,
			PnL:        t.PnL,
			Result:     string(t.Result),
			Notes:      t.Notes,
		}
		if t.Exit != nil {
			row.Exit = formatFloat(*t.Exit)
		}
		if t.StopLoss != nil {
			row.StopLoss = formatFloat(*t.StopLoss)
		}
		if t.RiskReward != nil {
			row.RiskReward = formatFloat(*t.RiskReward)
		}
		if t.Rating != nil {
			row.Rating = strconv.Itoa(*t.Rating)
		}
		rows = append(rows, row)
	}
	return gocsv.Marshal(rows, w)
}

// ImportTrades reads CSV rows from r into trade records. Rows without an
// id get a fresh one; a missing result column falls back to the sign of
// the row's P&L; contracts default to one.
func ImportTrades(r io.Reader) ([]models.Trade, error) {
	var rows []csvTrade
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}

	trades := make([]models.Trade, 0, len(rows))
	for i, row := range rows {
		t, err := rowToTrade(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func rowToTrade(row csvTrade) (models.Trade, error) {
	if row.Date == "" {
		return models.Trade{}, fmt.Errorf("date is required")
	}
	if row.Account == "" {
		return models.Trade{}, fmt.Errorf("account is required")
	}

	t := models.Trade{
		ID:         row.ID,
		Date:       row.Date,
		Time:       row.Time,
		Instrument: row.Instrument,
		SetupID:    row.SetupID,
		Account:    models.ParseAccountRef(row.Account),
		Direction:  models.Direction(strings.ToLower(row.Direction)),
		Entry:      row.Entry,
		Contracts:  row.Contracts,
		PnL:        row.PnL,
		Result:     models.TradeResult(strings.ToLower(row.Result)),
		Notes:      row.Notes,
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Contracts < 1 {
		t.Contracts = 1
	}
	if t.Result == "" {
		switch {
		case t.PnL > 0:
			t.Result = models.ResultWin
		case t.PnL < 0:
			t.Result = models.ResultLoss
		default:
			t.Result = models.ResultBreakeven
		}
	}

	var err error
	if t.Exit, err = parseOptionalFloat(row.Exit); err != nil {
		return models.Trade{}, fmt.Errorf("exit: %w", err)
	}
	if t.StopLoss, err = parseOptionalFloat(row.StopLoss); err != nil {
		return models.Trade{}, fmt.Errorf("stop_loss: %w", err)
	}
	if t.RiskReward, err = parseOptionalFloat(row.RiskReward); err != nil {
		return models.Trade{}, fmt.Errorf("risk_reward: %w", err)
	}
	if row.Rating != "" {
		rating, err := strconv.Atoi(strings.TrimSpace(row.Rating))
		if err != nil {
			return models.Trade{}, fmt.Errorf("rating: %w", err)
		}
		t.Rating = &rating
	}
	return t, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
