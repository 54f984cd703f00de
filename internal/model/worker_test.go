package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salsaesp/shiftsat/internal/model"
)

func newTestWorker() *model.Worker {
	return &model.Worker{
		ID:           1,
		ContractType: 5,
		Cycle:        model.CycleOrdinary,
		FixedDaysOff: map[int]bool{10: true},
		FixedLQs:     map[int]bool{11: true},
		MissingDays:  map[int]bool{12: true},
		EmptyDays:    map[int]bool{13: true},
		Holiday:      map[int]bool{14: true},
	}
}

func TestWorker_ForcedStatus(t *testing.T) {
	w := newTestWorker()

	s, ok := w.ForcedStatus(10)
	assert.True(t, ok)
	assert.Equal(t, model.StatusOff, s)

	s, ok = w.ForcedStatus(11)
	assert.True(t, ok)
	assert.Equal(t, model.StatusQualityOff, s)

	s, ok = w.ForcedStatus(12)
	assert.True(t, ok)
	assert.Equal(t, model.StatusVacation, s)

	s, ok = w.ForcedStatus(13)
	assert.True(t, ok)
	assert.Equal(t, model.StatusOutOfRange, s)

	s, ok = w.ForcedStatus(14)
	assert.True(t, ok)
	assert.Equal(t, model.StatusAbsence, s)

	_, ok = w.ForcedStatus(20)
	assert.False(t, ok, "an unblocked day has no forced status")
}

func TestWorker_BlockedDays(t *testing.T) {
	w := newTestWorker()
	blocked := w.BlockedDays()
	assert.Len(t, blocked, 5)
	for _, d := range []int{10, 11, 12, 13, 14} {
		assert.True(t, blocked[d])
	}
}

func TestWorker_IsComplete(t *testing.T) {
	ordinary := newTestWorker()
	assert.False(t, ordinary.IsComplete())

	complete := newTestWorker()
	complete.Cycle = model.CycleComplete
	assert.True(t, complete.IsComplete())
}
