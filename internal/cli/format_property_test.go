package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: currency formatting preserves sign and magnitude structure for
// any amount.
func TestProperty_FormatCurrency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())
	properties := gopter.NewProperties(parameters)

	properties.Property("negative amounts carry a leading minus", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatCurrency(amount)
			if amount < 0 {
				return strings.HasPrefix(formatted, "-$")
			}
			return strings.HasPrefix(formatted, "$")
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("always two decimal places", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatCurrency(amount)
			dot := strings.LastIndex(formatted, ".")
			return dot >= 0 && len(formatted)-dot-1 == 2
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("grouping splits digits in threes", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatCurrency(amount)
			intPart := strings.TrimPrefix(strings.TrimPrefix(formatted, "-"), "$")
			intPart = intPart[:strings.Index(intPart, ".")]
			for i, grp := range strings.Split(intPart, ",") {
				if len(grp) == 0 || len(grp) > 3 {
					return false
				}
				if i > 0 && len(grp) != 3 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}

// Property: P&L formatting marks every strictly positive amount and never
// marks the rest.
func TestProperty_FormatPnLSign(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())
	properties := gopter.NewProperties(parameters)

	properties.Property("plus prefix iff positive", prop.ForAll(
		func(amount float64) bool {
			return strings.HasPrefix(FormatPnL(amount), "+") == (amount > 0)
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}
