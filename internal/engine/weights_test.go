package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaledWeight_ZeroImportanceIsZero(t *testing.T) {
	assert.Equal(t, int64(0), scaledWeight(10000, 0, 100))
}

func TestScaledWeight_ZeroWorstIsZero(t *testing.T) {
	assert.Equal(t, int64(0), scaledWeight(10000, 40, 0))
}

func TestScaledWeight_NeverZeroWhenImportancePositive(t *testing.T) {
	// worst much larger than scale*importance would floor to 0 without the clamp.
	assert.Equal(t, int64(1), scaledWeight(10000, 1, 1_000_000_000))
}

func TestScaledWeight_OrdinaryCase(t *testing.T) {
	assert.Equal(t, int64(2000), scaledWeight(10000, 40, 200))
}

func TestWorstCase_ClampsToAtLeastOne(t *testing.T) {
	assert.Equal(t, 1, worstCase(0))
	assert.Equal(t, 1, worstCase(-5))
	assert.Equal(t, 7, worstCase(7))
}
