package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salsaesp/shiftsat/internal/model"
)

func newTestHorizon() *model.Horizon {
	weekToDays := map[int][]int{
		1: {1, 2, 3, 4, 5, 6, 7},
		2: {8, 9, 10, 11, 12, 13, 14},
		3: {15, 16, 17, 18, 19, 20, 21},
	}
	sundays := map[int]bool{7: true, 14: true, 21: true}
	holidays := map[int]bool{1: true}
	closed := map[int]bool{}
	return model.NewHorizon(2026, []int{7, 3, 1, 2, 4, 5, 6, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}, 4, weekToDays, sundays, holidays, closed)
}

func TestNewHorizon_SortsDaysAndDerivesBounds(t *testing.T) {
	h := newTestHorizon()
	require.Len(t, h.Days, 21)
	assert.Equal(t, 1, h.Days[0])
	assert.Equal(t, 1, h.First)
	assert.Equal(t, 21, h.Last)
}

func TestNewHorizon_DayWeekIsInverseOfWeekToDays(t *testing.T) {
	h := newTestHorizon()
	assert.Equal(t, 1, h.DayWeek[5])
	assert.Equal(t, 2, h.DayWeek[10])
	assert.Equal(t, 3, h.DayWeek[21])
}

func TestHorizon_SpecialDays(t *testing.T) {
	h := newTestHorizon()
	special := h.SpecialDays()
	assert.True(t, special[1], "holiday")
	assert.True(t, special[7], "sunday")
	assert.False(t, special[2])
}

func TestHorizon_NextWeeks(t *testing.T) {
	h := newTestHorizon()
	assert.Equal(t, []int{2, 3}, h.NextWeeks(1, 5), "clamped to the weeks actually present")
	assert.Equal(t, []int{2}, h.NextWeeks(1, 1))
	assert.Empty(t, h.NextWeeks(3, 2), "no weeks left after the last one")
}
