package engine

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/salsaesp/shiftsat/internal/config"
	"github.com/salsaesp/shiftsat/internal/model"
)

// objectiveBuilder accumulates every enabled §4.4 term into one total
// linear expression, scaled per the weight formula, and hands it to the
// model's Minimize call.
type objectiveBuilder struct {
	b       *cpmodel.CpModelBuilder
	vt      *VarTable
	horizon *model.Horizon
	workers []*model.Worker // solvable only: fairness, spread and consistency terms
	all     []*model.Worker // every worker: staffing and coverage terms
	demand  *model.Demand
	params  config.Params
	total   *cpmodel.LinearExpr
	n       int
}

// addObjective runs the whole of C4. Terms 1-3 score staffing and
// coverage against the full worker list, Complete-cycle included,
// since their pre-fixed L/F days still count towards the floor the way
// salsa_esp_optimization is wired with workers_complete. Every other
// term only makes sense for workers the solver actually schedules, so
// it stays scoped to the solvable subset.
func addObjective(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workersComplete []*model.Worker, demand *model.Demand, params config.Params) {
	ob := &objectiveBuilder{b: b, vt: vt, horizon: horizon, workers: solvableOf(workersComplete), all: workersComplete, demand: demand, params: params, total: cpmodel.NewLinearExpr()}

	ob.staffingDeviation()
	ob.zeroCoverage()
	ob.minimumShortfall()
	ob.sundayOffSpread()
	ob.qualityOffSpread()
	ob.nonConsecutiveFreeDays()
	ob.tooManyOffSameDay()
	ob.weekSegmentBalance(model.StatusOff, horizon.Sundays, params.Weights.SundaySegmentBalance, "sun_seg")
	ob.weekSegmentBalance(model.StatusQualityOff, saturdaysOf(horizon), params.Weights.QualitySegmentBalance, "lq_seg")
	ob.inconsistentWeekShift()
	ob.noManagerOrKeyholder()
	ob.managerKeyholderConflicts()
	ob.pairwiseFairness(model.StatusOff, horizon.Sundays, params.Weights.SundayFairness, "sun_fair")
	ob.pairwiseFairness(model.StatusQualityOff, saturdaysOf(horizon), params.Weights.QualityFairness, "lq_fair")

	b.Minimize(ob.total)
}

func (o *objectiveBuilder) add(weight int64, v cpmodel.IntVar) {
	if weight <= 0 {
		return
	}
	o.total.AddTerm(v, weight)
}

func (o *objectiveBuilder) addBool(weight int64, v cpmodel.BoolVar) {
	if weight <= 0 {
		return
	}
	o.total.AddTerm(v, weight)
}

func (o *objectiveBuilder) name(prefix string) string {
	o.n++
	return fmt.Sprintf("%s_%d", prefix, o.n)
}

// Term 1: staffing excess/deficit, plus the mixed-deviation and
// any-deficit penalties.
func (o *objectiveBuilder) staffingDeviation() {
	w := o.params.Weights
	demandSum := 0
	for _, d := range o.horizon.Days {
		for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon} {
			demandSum += o.targetHours(d, s)
		}
	}
	worst := worstCase(demandSum * 3 / 5)
	excessWeight := scaledWeight(o.params.Scale, w.StaffingExcess, worst)
	deficitWeight := scaledWeight(o.params.Scale, w.StaffingDeficit, worst)
	mixWeight := scaledWeight(o.params.Scale, w.StaffingMixPenalty, worstCase(len(o.horizon.Days)))
	anyDeficitWeight := scaledWeight(o.params.Scale, w.AnyDeficitPenalty, worstCase(len(o.horizon.Days)))

	for _, d := range o.horizon.Days {
		for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon} {
			target := o.targetHours(d, s)
			vars := o.vt.ByDayStatus(o.all, d, s)
			if target == 0 && len(vars) == 0 {
				continue
			}
			assigned := cpmodel.NewLinearExpr()
			for _, v := range vars {
				assigned.Add(v)
			}

			excess := o.b.NewIntVar(0, int64(worstCase(len(vars)))).WithName(o.name("excess"))
			deficit := o.b.NewIntVar(0, int64(worstCase(target))).WithName(o.name("deficit"))

			diff := cpmodel.NewLinearExpr()
			diff.Add(assigned)
			diff.AddTerm(deficit, 1)
			rhs := cpmodel.NewLinearExpr()
			rhs.AddTerm(excess, 1)
			rhs.Add(cpmodel.NewConstant(int64(target)))
			o.b.AddEquality(diff, rhs)

			o.add(excessWeight, excess)
			o.add(deficitWeight, deficit)

			if mixWeight > 0 {
				bothOff := o.b.NewBoolVar().WithName(o.name("staff_mix"))
				eExpr := cpmodel.NewLinearExpr()
				eExpr.AddTerm(excess, 1)
				o.b.AddLessOrEqual(boolExpr(bothOff), addConst(eExpr, 0))
				o.addBool(mixWeight, bothOff)
			}
			if anyDeficitWeight > 0 {
				anyDef := o.b.NewBoolVar().WithName(o.name("any_deficit"))
				dExpr := cpmodel.NewLinearExpr()
				dExpr.AddTerm(deficit, 1)
				o.b.AddLessOrEqual(boolExpr(anyDef), dExpr)
				// deficit > 0 forces anyDef to 1.
				defUpper := cpmodel.NewLinearExpr()
				defUpper.AddTerm(anyDef, int64(worstCase(target)))
				o.b.AddLessOrEqual(dExpr, defUpper)
				o.addBool(anyDeficitWeight, anyDef)
			}
		}
	}
}

func boolExpr(v cpmodel.BoolVar) *cpmodel.LinearExpr {
	e := cpmodel.NewLinearExpr()
	e.Add(v)
	return e
}

func addConst(e *cpmodel.LinearExpr, c int64) *cpmodel.LinearExpr {
	e.Add(cpmodel.NewConstant(c))
	return e
}

func (o *objectiveBuilder) targetHours(d int, s model.Status) int {
	// The target is the demand table's pess_obj for (d, s), a count of
	// workers; with no demand table every target is 0.
	if o.demand == nil {
		return 0
	}
	return o.demand.Target(d, s)
}

// Term 2: zero-coverage.
func (o *objectiveBuilder) zeroCoverage() {
	weight := scaledWeight(o.params.Scale, o.params.Weights.ZeroCoverage, worstCase(len(o.horizon.Days)*2))
	if weight <= 0 {
		return
	}
	for _, d := range o.horizon.Days {
		for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon} {
			if o.targetHours(d, s) <= 0 {
				continue
			}
			vars := o.vt.ByDayStatus(o.all, d, s)
			if len(vars) == 0 {
				continue
			}
			zero := o.b.NewBoolVar().WithName(o.name("zero_cov"))
			sum := cpmodel.NewLinearExpr()
			for _, v := range vars {
				sum.Add(v)
			}
			// zero == 1 forces the sum to 0; zero == 0 forces it to at
			// least 1, so zero is 1 exactly when nobody is assigned.
			upper := cpmodel.NewLinearExpr()
			upper.Add(cpmodel.NewConstant(int64(len(vars))))
			upper.AddTerm(zero, int64(-len(vars)))
			o.b.AddLessOrEqual(sum, upper)
			lower := cpmodel.NewLinearExpr()
			lower.Add(sum)
			lower.Add(zero)
			o.b.AddGreaterOrEqual(lower, cpmodel.NewConstant(1))
			o.addBool(weight, zero)
		}
	}
}

// Term 3: minimum-requirement shortfall.
func (o *objectiveBuilder) minimumShortfall() {
	weight := scaledWeight(o.params.Scale, o.params.Weights.MinimumShortfall, worstCase(len(o.horizon.Days)*2))
	if weight <= 0 || o.demand == nil {
		return
	}
	for _, d := range o.horizon.Days {
		for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon} {
			min := o.demand.Min(d, s)
			if min <= 0 {
				continue
			}
			vars := o.vt.ByDayStatus(o.all, d, s)
			assigned := cpmodel.NewLinearExpr()
			for _, v := range vars {
				assigned.Add(v)
			}
			shortfall := o.b.NewIntVar(0, int64(min)).WithName(o.name("shortfall"))
			lhs := cpmodel.NewLinearExpr()
			lhs.Add(assigned)
			lhs.AddTerm(shortfall, 1)
			o.b.AddGreaterOrEqual(lhs, cpmodel.NewConstant(int64(min)))
			o.add(weight, shortfall)
		}
	}
}

// Term 6: non-consecutive free days (reward consecutive pairs).
func (o *objectiveBuilder) nonConsecutiveFreeDays() {
	weight := scaledWeight(o.params.Scale, o.params.Weights.NonConsecutiveFree, worstCase(len(o.horizon.Days)))
	if weight <= 0 {
		return
	}
	for _, w := range o.workers {
		for d := w.FirstRegisteredDay; d < w.LastRegisteredDay; d++ {
			freeToday := o.freeVarsSum(w.ID, d)
			freeTomorrow := o.freeVarsSum(w.ID, d+1)
			if freeToday == nil || freeTomorrow == nil {
				continue
			}
			pair := o.b.NewBoolVar().WithName(o.name("free_pair"))
			// pair <= min(freeToday, freeTomorrow): both must hold.
			o.b.AddLessOrEqual(boolExpr(pair), freeToday)
			o.b.AddLessOrEqual(boolExpr(pair), freeTomorrow)
			notPaired := cpmodel.NewLinearExpr()
			notPaired.Add(cpmodel.NewConstant(1))
			notPaired.AddTerm(pair, -1)
			o.add(weight, o.intFromExpr(notPaired, 0, 1, "non_consec"))
		}
	}
}

// Term 7: too-many-people-off-same-day.
func (o *objectiveBuilder) tooManyOffSameDay() {
	weight := scaledWeight(o.params.Scale, o.params.Weights.TooManyOffSameDay, worstCase(len(o.horizon.Days)))
	if weight <= 0 {
		return
	}
	threshold := o.params.TooManyOffThreshold
	for _, d := range o.horizon.Days {
		var freeVars []cpmodel.BoolVar
		for _, w := range o.workers {
			for _, s := range []model.Status{model.StatusOff, model.StatusQualityOff, model.StatusCompOff} {
				if v, ok := o.vt.Get(w.ID, d, s); ok {
					freeVars = append(freeVars, v)
				}
			}
		}
		if len(freeVars) == 0 {
			continue
		}
		sum := cpmodel.NewLinearExpr()
		for _, v := range freeVars {
			sum.Add(v)
		}
		flag := o.b.NewBoolVar().WithName(o.name("too_many_off"))
		upper := cpmodel.NewLinearExpr()
		upper.Add(cpmodel.NewConstant(int64(threshold)))
		upper.AddTerm(flag, int64(len(freeVars)))
		o.b.AddLessOrEqual(sum, upper)
		o.addBool(weight, flag)
	}
}

// Term 10: inconsistent week shift (both M and T within the same week).
func (o *objectiveBuilder) inconsistentWeekShift() {
	weight := scaledWeight(o.params.Scale, o.params.Weights.InconsistentWeekShift, worstCase(len(o.horizon.WeekToDays)*len(o.workers)))
	if weight <= 0 {
		return
	}
	for _, w := range o.workers {
		for week, days := range o.horizon.WeekToDays {
			mSum := cpmodel.NewLinearExpr()
			tSum := cpmodel.NewLinearExpr()
			nM, nT := 0, 0
			for _, d := range days {
				if v, ok := o.vt.Get(w.ID, d, model.StatusMorning); ok {
					mSum.Add(v)
					nM++
				}
				if v, ok := o.vt.Get(w.ID, d, model.StatusAfternoon); ok {
					tSum.Add(v)
					nT++
				}
			}
			if nM == 0 || nT == 0 {
				continue
			}
			hasM := o.b.NewBoolVar().WithName(o.name("has_m"))
			hasT := o.b.NewBoolVar().WithName(o.name("has_t"))
			o.b.AddLessOrEqual(boolExpr(hasM), mSum)
			o.b.AddLessOrEqual(boolExpr(hasT), tSum)
			upperM := cpmodel.NewLinearExpr()
			upperM.AddTerm(hasM, int64(nM))
			o.b.AddLessOrEqual(mSum, upperM)
			upperT := cpmodel.NewLinearExpr()
			upperT.AddTerm(hasT, int64(nT))
			o.b.AddLessOrEqual(tSum, upperT)

			both := o.b.NewBoolVar().WithName(fmt.Sprintf("inconsistent_w%d_wk%d", w.ID, week))
			o.b.AddLessOrEqual(boolExpr(both), boolExpr(hasM))
			o.b.AddLessOrEqual(boolExpr(both), boolExpr(hasT))
			lower := cpmodel.NewLinearExpr()
			lower.Add(hasM)
			lower.Add(hasT)
			lower.Add(cpmodel.NewConstant(-1))
			o.b.AddGreaterOrEqual(boolExpr(both), lower)
			o.addBool(weight, both)
		}
	}
}

// Term 11: no manager/keyholder on shift.
func (o *objectiveBuilder) noManagerOrKeyholder() {
	weight := scaledWeight(o.params.Scale, o.params.Weights.NoManagerOrKeyholder, worstCase(len(o.horizon.Days)*2))
	if weight <= 0 {
		return
	}
	for _, d := range o.horizon.Days {
		for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon} {
			if o.targetHours(d, s) <= 0 {
				continue
			}
			var present []cpmodel.BoolVar
			for _, w := range o.workers {
				if w.Role != model.RoleManager && w.Role != model.RoleKeyholder {
					continue
				}
				if v, ok := o.vt.Get(w.ID, d, s); ok {
					present = append(present, v)
				}
			}
			if len(present) == 0 {
				continue
			}
			sum := cpmodel.NewLinearExpr()
			for _, v := range present {
				sum.Add(v)
			}
			none := o.b.NewBoolVar().WithName(o.name("no_mgr_kh"))
			upper := cpmodel.NewLinearExpr()
			upper.Add(cpmodel.NewConstant(int64(len(present))))
			upper.AddTerm(none, int64(-len(present)))
			o.b.AddLessOrEqual(sum, upper)
			// none == 0 forces at least one manager/keyholder on shift.
			lower := cpmodel.NewLinearExpr()
			lower.Add(sum)
			lower.Add(none)
			o.b.AddGreaterOrEqual(lower, cpmodel.NewConstant(1))
			o.addBool(weight, none)
		}
	}
}

// Term 12: manager/keyholder same-day-off conflicts.
func (o *objectiveBuilder) managerKeyholderConflicts() {
	w := o.params.Weights
	bothWeight := scaledWeight(o.params.Scale, w.ManagerKeyholderBothOff, worstCase(len(o.horizon.Days)))
	khWeight := scaledWeight(o.params.Scale, w.KeyholderOverlap, worstCase(len(o.horizon.Days)))
	mgrWeight := scaledWeight(o.params.Scale, w.ManagerOverlap, worstCase(len(o.horizon.Days)))

	for _, d := range o.horizon.Days {
		mgrOff := o.roleOffVars(d, model.RoleManager)
		khOff := o.roleOffVars(d, model.RoleKeyholder)

		if bothWeight > 0 && len(mgrOff) > 0 && len(khOff) > 0 {
			anyMgr := o.presenceBool(mgrOff, "mgr_off")
			anyKh := o.presenceBool(khOff, "kh_off")
			both := o.b.NewBoolVar().WithName(o.name("mgr_kh_both_off"))
			o.b.AddLessOrEqual(boolExpr(both), boolExpr(anyMgr))
			o.b.AddLessOrEqual(boolExpr(both), boolExpr(anyKh))
			lower := cpmodel.NewLinearExpr()
			lower.Add(anyMgr)
			lower.Add(anyKh)
			lower.Add(cpmodel.NewConstant(-1))
			o.b.AddGreaterOrEqual(boolExpr(both), lower)
			o.addBool(bothWeight, both)
		}
		if khWeight > 0 && len(khOff) >= 2 {
			o.addBool(khWeight, o.overlapBool(khOff, "kh_overlap"))
		}
		if mgrWeight > 0 && len(mgrOff) >= 2 {
			o.addBool(mgrWeight, o.overlapBool(mgrOff, "mgr_overlap"))
		}
	}
}

func (o *objectiveBuilder) roleOffVars(d int, role model.Role) []cpmodel.BoolVar {
	var out []cpmodel.BoolVar
	for _, w := range o.workers {
		if w.Role != role {
			continue
		}
		if v, ok := o.vt.Get(w.ID, d, model.StatusOff); ok {
			out = append(out, v)
		}
	}
	return out
}

func (o *objectiveBuilder) presenceBool(vars []cpmodel.BoolVar, tag string) cpmodel.BoolVar {
	any := o.b.NewBoolVar().WithName(o.name(tag))
	sum := cpmodel.NewLinearExpr()
	for _, v := range vars {
		sum.Add(v)
	}
	// any is 1 iff at least one of vars is 1.
	o.b.AddLessOrEqual(boolExpr(any), sum)
	upper := cpmodel.NewLinearExpr()
	upper.AddTerm(any, int64(len(vars)))
	o.b.AddLessOrEqual(sum, upper)
	return any
}

// overlapBool is 1 iff at least two of vars are 1.
func (o *objectiveBuilder) overlapBool(vars []cpmodel.BoolVar, tag string) cpmodel.BoolVar {
	overlap := o.b.NewBoolVar().WithName(o.name(tag))
	sum := cpmodel.NewLinearExpr()
	for _, v := range vars {
		sum.Add(v)
	}
	lower := cpmodel.NewLinearExpr()
	lower.AddTerm(overlap, 2)
	o.b.AddGreaterOrEqual(sum, lower)
	upper := cpmodel.NewLinearExpr()
	upper.Add(cpmodel.NewConstant(1))
	upper.AddTerm(overlap, int64(len(vars)-1))
	o.b.AddLessOrEqual(sum, upper)
	return overlap
}

func (o *objectiveBuilder) freeVarsSum(w, d int) *cpmodel.LinearExpr {
	var vars []cpmodel.BoolVar
	for _, s := range []model.Status{model.StatusOff, model.StatusClosed, model.StatusQualityOff, model.StatusCompOff} {
		if v, ok := o.vt.Get(w, d, s); ok {
			vars = append(vars, v)
		}
	}
	if len(vars) == 0 {
		return nil
	}
	sum := cpmodel.NewLinearExpr()
	for _, v := range vars {
		sum.Add(v)
	}
	return sum
}

func (o *objectiveBuilder) intFromExpr(e *cpmodel.LinearExpr, lb, ub int64, tag string) cpmodel.IntVar {
	v := o.b.NewIntVar(lb, ub).WithName(o.name(tag))
	o.b.AddEquality(e, v)
	return v
}

func saturdaysOf(h *model.Horizon) map[int]bool {
	out := make(map[int]bool)
	for d := range h.Sundays {
		out[d-1] = true
	}
	return out
}
