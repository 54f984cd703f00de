package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salsaesp/shiftsat/internal/diagnostics"
	"github.com/salsaesp/shiftsat/internal/model"
)

func TestExplain_RanksMostConstrainedWorkerFirst(t *testing.T) {
	h := model.NewHorizon(2026, []int{1, 2, 3, 4}, 4,
		map[int][]int{1: {1, 2, 3, 4}}, nil, nil, nil)

	heavy := &model.Worker{
		ID:                 1,
		FirstRegisteredDay: 1,
		LastRegisteredDay:  4,
		FixedDaysOff:       map[int]bool{1: true, 2: true, 3: true},
	}
	light := &model.Worker{
		ID:                 2,
		FirstRegisteredDay: 1,
		LastRegisteredDay:  4,
		FixedDaysOff:       map[int]bool{1: true},
	}

	out := diagnostics.Explain([]*model.Worker{light, heavy}, h)
	assert.Contains(t, out, "worker 1 (3/4 fixed days)")
	assert.Contains(t, out, "most-constrained workers:")
	assert.Contains(t, out, "most-constrained weeks:")
}

func TestExplain_HandlesNoFixedDays(t *testing.T) {
	h := model.NewHorizon(2026, []int{1, 2}, 4, map[int][]int{1: {1, 2}}, nil, nil, nil)
	w := &model.Worker{ID: 1, FirstRegisteredDay: 1, LastRegisteredDay: 2}

	out := diagnostics.Explain([]*model.Worker{w}, h)
	assert.Contains(t, out, "worker 1 (0/2 fixed days)")
}
