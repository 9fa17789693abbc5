package models

// AccountType distinguishes evaluation accounts from funded ones.
type AccountType string

const (
	AccountEvaluation AccountType = "evaluation"
	AccountFunded     AccountType = "funded"
)

// AccountStatus is the lifecycle state of an account. Evaluation accounts
// move in_progress -> passed|failed; funded accounts move
// active -> breached|withdrawn. Terminal states are never reopened by the
// reconciler.
type AccountStatus string

const (
	StatusInProgress AccountStatus = "in_progress"
	StatusPassed     AccountStatus = "passed"
	StatusFailed     AccountStatus = "failed"
	StatusActive     AccountStatus = "active"
	StatusBreached   AccountStatus = "breached"
	StatusWithdrawn  AccountStatus = "withdrawn"
)

// Account is a trading account at a prop firm. ProfitLoss is the realized
// total: for accounts with linked trades it is overwritten by the
// reconciler, otherwise it holds whatever the user entered manually.
type Account struct {
	ID           string        `json:"id"`
	Type         AccountType   `json:"type"`
	PropFirmID   string        `json:"propFirm,omitempty"`
	AccountSize  float64       `json:"accountSize"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate,omitempty"`
	Status       AccountStatus `json:"status"`
	ProfitLoss   float64       `json:"profitLoss"`
	MaxDrawdown  *float64      `json:"maxDrawdown,omitempty"`
	ProfitTarget *float64      `json:"profitTarget,omitempty"`
	Notes        string        `json:"notes,omitempty"`
}

// IsActive reports whether the account currently participates in trading:
// an evaluation still in progress, or a funded account that is active.
// Only active accounts receive a share of split trades.
func (a Account) IsActive() bool {
	switch a.Type {
	case AccountEvaluation:
		return a.Status == StatusInProgress
	case AccountFunded:
		return a.Status == StatusActive
	}
	return false
}

// IsTerminal reports whether the account reached a final status.
func (a Account) IsTerminal() bool {
	switch a.Status {
	case StatusPassed, StatusFailed, StatusBreached, StatusWithdrawn:
		return true
	}
	return false
}
