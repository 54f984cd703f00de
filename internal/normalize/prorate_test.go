package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/salsaesp/shiftsat/internal/config"
)

func TestProrationFactor(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(prorationFactor(1)), "day 1 gives a zero factor")
	assert.True(t, decimal.NewFromInt(1).Equal(prorationFactor(365)), "the full year caps at 1")
	assert.True(t, decimal.NewFromInt(1).Equal(prorationFactor(500)), "a day beyond the year still clamps to 1")
	assert.True(t, decimal.Zero.Equal(prorationFactor(0)), "a non-positive day clamps to 0, never negative")

	half := prorationFactor(183)
	assert.True(t, half.GreaterThan(decimal.NewFromFloat(0.49)))
	assert.True(t, half.LessThan(decimal.NewFromFloat(0.51)))
}

func TestProrateQuota_Floor(t *testing.T) {
	factor := decimal.NewFromFloat(0.5)
	assert.Equal(t, 5, prorateQuota(11, factor, config.RoundFloor))
}

func TestProrateQuota_Ceil(t *testing.T) {
	factor := decimal.NewFromFloat(0.5)
	assert.Equal(t, 6, prorateQuota(11, factor, config.RoundCeil))
}

func TestProrateQuota_OrdinaryRounding(t *testing.T) {
	factor := decimal.NewFromFloat(0.5)
	assert.Equal(t, 6, prorateQuota(11, factor, ""), "half rounds up under ordinary rounding")
	assert.Equal(t, 5, prorateQuota(9, factor, ""))
}

func TestProrateQuota_ZeroFactorZeroesEveryQuota(t *testing.T) {
	assert.Equal(t, 0, prorateQuota(20, decimal.Zero, config.RoundFloor))
}
