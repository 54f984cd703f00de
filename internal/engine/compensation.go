package engine

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/salsaesp/shiftsat/internal/config"
	"github.com/salsaesp/shiftsat/internal/model"
)

// addHolidayCompensation implements C3.10: working a holiday or a
// non-holiday Sunday earns an LD day off within the following
// week_compensation_limit weeks. It runs twice per worker, once for
// holidays and once for Sundays, each with its own earned amount.
func addHolidayCompensation(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker, params config.Params) {
	for _, w := range workers {
		runCompensation(b, vt, horizon, w, horizon.Holidays, params.HolidayCompensationAmount, params, "hol")
		runCompensation(b, vt, horizon, w, sundaysMinusHolidays(horizon), params.SundayCompensationAmount, params, "sun")
	}
}

func sundaysMinusHolidays(h *model.Horizon) map[int]bool {
	out := make(map[int]bool, len(h.Sundays))
	for d := range h.Sundays {
		if !h.Holidays[d] {
			out[d] = true
		}
	}
	return out
}

// runCompensation adds the assignment/used machinery for one special
// day class (holidays or non-holiday Sundays) for one worker.
func runCompensation(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, w *model.Worker, special map[int]bool, amount int, params config.Params, tag string) {
	limit := params.CompensationLimit(w.ID)

	usedVars := make(map[int]cpmodel.BoolVar)    // day c -> U[w,c]
	assignByC := make(map[int][]cpmodel.BoolVar) // day c -> every A[w,*,c] claiming it

	for d := range special {
		if d < w.FirstRegisteredDay || d >= w.LastRegisteredDay {
			continue
		}
		if !w.WorkingDays[d] || w.FixedDaysOff[d] || w.FixedLQs[d] {
			continue
		}

		worked := workedSpecialDay(b, vt, w.ID, d, tag)
		if worked == nil {
			continue
		}

		candidates := compensationCandidates(horizon, w, d, limit)
		if len(candidates) == 0 {
			continue
		}

		var assignVars []cpmodel.BoolVar
		for _, c := range candidates {
			u, ok := usedVars[c]
			if !ok {
				u = b.NewBoolVar().WithName(fmt.Sprintf("ld_used_w%d_c%d_%s", w.ID, c, tag))
				usedVars[c] = u
				if ld, ok := vt.Get(w.ID, c, model.StatusCompOff); ok {
					b.AddEquality(ld, u)
				}
			}
			a := b.NewBoolVar().WithName(fmt.Sprintf("ld_assign_w%d_d%d_c%d_%s", w.ID, d, c, tag))
			assignCondition := cpmodel.NewLinearExpr()
			assignCondition.Add(*worked)
			b.AddGreaterOrEqual(assignCondition, a)
			b.AddLessOrEqual(a, u)
			assignVars = append(assignVars, a)
			assignByC[c] = append(assignByC[c], a)
		}

		// Σ_c A[w,d,c] == amount when the day was worked, 0 otherwise.
		sumExpr := cpmodel.NewLinearExpr()
		for _, a := range assignVars {
			sumExpr.Add(a)
		}
		target := cpmodel.NewLinearExpr()
		target.AddTerm(*worked, int64(amount))
		b.AddEquality(sumExpr, target)
	}

	for _, vars := range assignByC {
		capExpr := cpmodel.NewLinearExpr()
		for _, a := range vars {
			capExpr.Add(a)
		}
		b.AddLessOrEqual(capExpr, cpmodel.NewConstant(1))
	}

	addAtMostOnePerCompensationDay(b, vt, w, usedVars)
}

// workedSpecialDay returns the OR of shift[w,d,{M,T}], materialized as a
// fresh boolean equal to that disjunction, or nil if neither variable
// exists for d.
func workedSpecialDay(b *cpmodel.CpModelBuilder, vt *VarTable, w, d int, tag string) *cpmodel.BoolVar {
	m, okM := vt.Get(w, d, model.StatusMorning)
	t, okT := vt.Get(w, d, model.StatusAfternoon)
	if !okM && !okT {
		return nil
	}
	v := b.NewBoolVar().WithName(fmt.Sprintf("worked_special_w%d_d%d_%s", w, d, tag))
	var terms []cpmodel.BoolVar
	if okM {
		terms = append(terms, m)
	}
	if okT {
		terms = append(terms, t)
	}

	sum := cpmodel.NewLinearExpr()
	for _, term := range terms {
		sum.Add(term)
		// v is an upper bound on each term: v must be 1 if any term is.
		termExpr := cpmodel.NewLinearExpr()
		termExpr.Add(term)
		b.AddLessOrEqual(termExpr, v)
	}
	// v cannot exceed the sum: v is 0 when every term is 0.
	vExpr := cpmodel.NewLinearExpr()
	vExpr.Add(v)
	b.AddLessOrEqual(vExpr, sum)

	return &v
}

// compensationCandidates returns the worker's working days in the
// weeks following d's week, up to limit weeks, excluding fixed-off days
// and days beyond last_registered_day.
func compensationCandidates(h *model.Horizon, w *model.Worker, d, limit int) []int {
	week := h.DayWeek[d]
	weeks := h.NextWeeks(week, limit)

	var out []int
	for _, wk := range weeks {
		for _, c := range h.WeekToDays[wk] {
			if c > w.LastRegisteredDay {
				continue
			}
			if !w.WorkingDays[c] || w.FixedDaysOff[c] || w.FixedLQs[c] {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// addAtMostOnePerCompensationDay ties each claimed candidate day c to
// the worker's LD on c: used[c] can only be 1 when c is an LD. The
// at-most-one-claim-per-day cap itself is added in runCompensation.
func addAtMostOnePerCompensationDay(b *cpmodel.CpModelBuilder, vt *VarTable, w *model.Worker, used map[int]cpmodel.BoolVar) {
	for c, u := range used {
		if ld, ok := vt.Get(w.ID, c, model.StatusCompOff); ok {
			b.AddLessOrEqual(u, ld)
		}
	}
}
