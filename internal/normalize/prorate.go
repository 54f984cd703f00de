package normalize

import (
	"github.com/shopspring/decimal"

	"github.com/salsaesp/shiftsat/internal/config"
)

// prorationFactor implements §4.1 step 9. The source only pro-rates by
// last_registered_day, never by a worker's own first_registered_day, so
// the numerator is always anchored at day 1: (last - 1) / 364.
func prorationFactor(lastRegisteredDay int) decimal.Decimal {
	num := decimal.NewFromInt(int64(lastRegisteredDay - 1))
	den := decimal.NewFromInt(364)
	if den.IsZero() {
		return decimal.NewFromInt(1)
	}
	f := num.Div(den)
	one := decimal.NewFromInt(1)
	if f.GreaterThan(one) {
		return one
	}
	if f.IsNegative() {
		return decimal.Zero
	}
	return f
}

// prorateQuota applies the proration factor to one quota, rounding per
// the mode given: "floor" or "ceil" (prorateWorker passes the configured
// admissao_proporcional for c2d/c3d), ordinary half-up rounding for an
// empty mode, which every other quota uses (§4.1 step 9, §6.3).
func prorateQuota(quota int, factor decimal.Decimal, mode config.Rounding) int {
	scaled := decimal.NewFromInt(int64(quota)).Mul(factor)
	switch mode {
	case config.RoundCeil:
		return int(scaled.Ceil().IntPart())
	case config.RoundFloor:
		return int(scaled.Floor().IntPart())
	default:
		return int(scaled.Round(0).IntPart())
	}
}
