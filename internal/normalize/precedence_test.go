package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salsaesp/shiftsat/internal/model"
)

func TestResolvePrecedence_ClosedAlwaysWinsAndIsNotReturned(t *testing.T) {
	closed := map[int]bool{1: true}
	a := map[int]bool{1: true, 2: true}
	b := map[int]bool{2: true, 3: true}

	resolved := resolvePrecedence(closed, a, b)
	require.Len(t, resolved, 2)
	assert.False(t, resolved[0][1], "day claimed by closed is dropped from every bucket")
	assert.True(t, resolved[0][2])
	assert.False(t, resolved[1][2], "day already claimed by an earlier bucket is dropped from a later one")
	assert.True(t, resolved[1][3])
}

func TestResolvePrecedence_BucketsArePairwiseDisjoint(t *testing.T) {
	a := map[int]bool{1: true}
	b := map[int]bool{1: true}
	c := map[int]bool{1: true}

	resolved := resolvePrecedence(nil, a, b, c)
	total := 0
	for _, bucket := range resolved {
		total += len(bucket)
	}
	assert.Equal(t, 1, total, "only the highest-precedence bucket keeps a contested day")
	assert.True(t, resolved[0][1])
}

func weekHorizon(closed map[int]bool) *model.Horizon {
	days := []int{1, 2, 3, 4, 5, 6, 7}
	return model.NewHorizon(2026, days, 4, map[int][]int{1: days}, map[int]bool{7: true}, nil, closed)
}

func TestApplyShortWeekMigration_AllDaysHoliday(t *testing.T) {
	h := weekHorizon(nil)
	holiday := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	fixedOff, fixedLQ := map[int]bool{}, map[int]bool{}

	applyShortWeekMigration(h, holiday, fixedOff, fixedLQ)

	assert.False(t, holiday[6], "Saturday migrated out of worker_holiday")
	assert.False(t, holiday[7], "Sunday migrated out of worker_holiday")
	assert.True(t, fixedOff[6], "Saturday becomes a fixed L")
	assert.True(t, fixedLQ[7], "Sunday becomes a fixed LQ")
}

func TestApplyShortWeekMigration_OneRemainingDayIsTheSaturday(t *testing.T) {
	h := weekHorizon(nil)
	holiday := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 7: true} // every day but Saturday
	fixedOff, fixedLQ := map[int]bool{}, map[int]bool{}

	applyShortWeekMigration(h, holiday, fixedOff, fixedLQ)

	assert.False(t, holiday[6], "Saturday stays the sole remaining worked day")
	assert.False(t, holiday[7], "Sunday is migrated regardless")
	assert.True(t, fixedOff[6])
	assert.True(t, fixedLQ[7])
}

func TestApplyShortWeekMigration_TwoRemainingDaysAreTheWeekend(t *testing.T) {
	h := weekHorizon(nil)
	holiday := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true} // Sat+Sun both remain
	fixedOff, fixedLQ := map[int]bool{}, map[int]bool{}

	applyShortWeekMigration(h, holiday, fixedOff, fixedLQ)

	assert.False(t, holiday[6], "still migrated into the quality-weekend pattern")
	assert.False(t, holiday[7])
	assert.True(t, fixedOff[6])
	assert.True(t, fixedLQ[7])
}

func TestApplyShortWeekMigration_MoreThanTwoRemainingDaysSkipsTheWeek(t *testing.T) {
	h := weekHorizon(nil)
	holiday := map[int]bool{1: true} // only Monday is a holiday, 6 days remain
	fixedOff, fixedLQ := map[int]bool{}, map[int]bool{}

	applyShortWeekMigration(h, holiday, fixedOff, fixedLQ)

	assert.True(t, holiday[1], "untouched")
	assert.False(t, fixedOff[6])
	assert.False(t, fixedLQ[7])
}

func TestApplyShortWeekMigration_SkipsClosedWeekend(t *testing.T) {
	h := weekHorizon(map[int]bool{6: true})
	holiday := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	fixedOff, fixedLQ := map[int]bool{}, map[int]bool{}

	applyShortWeekMigration(h, holiday, fixedOff, fixedLQ)

	assert.True(t, holiday[6], "a closed Saturday is left alone")
	assert.True(t, holiday[7])
	assert.False(t, fixedOff[6])
	assert.False(t, fixedLQ[7])
}
