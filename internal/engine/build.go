package engine

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/salsaesp/shiftsat/internal/config"
	"github.com/salsaesp/shiftsat/internal/model"
)

// decisionAlphabet is the free-choice alphabet on an unblocked working
// day for an ordinary worker (§4.2: decision alphabet minus A, V, F, -).
var decisionAlphabet = model.Alphabet{model.StatusMorning, model.StatusAfternoon, model.StatusOff, model.StatusQualityOff, model.StatusCompOff}

// completeAlphabet additionally allows F, per C3.5, for Complete-cycle
// workers on days the upstream schedule still leaves open.
var completeAlphabet = model.Alphabet{model.StatusMorning, model.StatusAfternoon, model.StatusOff, model.StatusQualityOff, model.StatusCompOff, model.StatusClosed}

// buildVariables runs C2: it materializes exactly one boolean per
// feasible (worker, day, status) triple, fixing forced assignments to
// 1 and creating free choices everywhere else.
func buildVariables(b *cpmodel.CpModelBuilder, horizon *model.Horizon, workers []*model.Worker, params config.Params) *VarTable {
	vt := newVarTable()

	for _, w := range workers {
		for d := w.FirstRegisteredDay; d <= w.LastRegisteredDay; d++ {
			if !contains(horizon.Days, d) {
				continue
			}

			if horizon.ClosedHolidays[d] {
				forceVar(b, vt, w.ID, d, model.StatusClosed)
				continue
			}

			if forced, ok := w.ForcedStatus(d); ok {
				if forced == model.StatusOff && isSaturdayWithOpenSunday(horizon, d) {
					forceVar(b, vt, w.ID, d, model.StatusQualityOff)
				} else {
					forceVar(b, vt, w.ID, d, forced)
				}
				continue
			}

			alphabet := decisionAlphabet
			if w.IsComplete() {
				alphabet = completeAlphabet
			}
			for _, s := range alphabet {
				name := fmt.Sprintf("shift_w%d_d%d_%s", w.ID, d, s)
				vt.set(w.ID, d, s, b.NewBoolVar().WithName(name))
			}
		}
	}

	return vt
}

func forceVar(b *cpmodel.CpModelBuilder, vt *VarTable, w, d int, s model.Status) {
	name := fmt.Sprintf("forced_w%d_d%d_%s", w, d, s)
	v := b.NewBoolVar().WithName(name)
	b.AddEquality(v, cpmodel.NewConstant(1))
	vt.set(w, d, s, v)
}

// isSaturdayWithOpenSunday reports whether d is a Saturday and d+1
// exists in the horizon (§4.2's LQ-over-L special rule).
func isSaturdayWithOpenSunday(h *model.Horizon, d int) bool {
	return h.Sundays[d+1] && contains(h.Days, d+1)
}

func contains(days []int, d int) bool {
	lo, hi := 0, len(days)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if days[mid] == d {
			return true
		}
		if days[mid] < d {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return false
}
