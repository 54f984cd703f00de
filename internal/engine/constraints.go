package engine

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/salsaesp/shiftsat/internal/config"
	"github.com/salsaesp/shiftsat/internal/model"
)

// addConstraints runs the whole of C3: every hard requirement of §4.3,
// added before the objective (§5 ordering rule). The exactly-one
// constraint binds every worker in workersComplete, Complete-cycle
// included, the way shift_day_constraint does in the original solver;
// everything else that follows only makes sense for the solvable
// subset, since Complete-cycle workers never have their own decisions
// constrained beyond "exactly one of the complete alphabet".
func addConstraints(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workersComplete []*model.Worker, params config.Params) {
	workers := solvableOf(workersComplete)

	addExactlyOneStatus(b, vt, horizon, workersComplete)
	addWeekShiftConsistency(b, vt, horizon, workers)
	addWeeklyWorkingDaysCap(b, vt, horizon, workers)
	addConsecutiveWorkingDaysCap(b, vt, horizon, workers, params)
	addQuotaFloors(b, vt, horizon, workers)
	addQualityWeekendStructure(b, vt, horizon, workers, params)
	addSaturdayLRestriction(b, vt, horizon, workers)
	addFreeDaysPerWeekQuota(b, vt, horizon, workers, params)
	addHolidayCompensation(b, vt, horizon, workers, params)
	addPostHireFirstDay(b, vt, horizon, workersComplete)
	addAtLeastOneCoverage(b, vt, horizon, workers)
}

// C3.1 Exactly-one-status. Runs over every worker including
// Complete-cycle ones: their pre-fixed days still need exactly one of
// the complete alphabet picked, or the solver is free to leave them
// entirely unassigned.
func addExactlyOneStatus(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker) {
	for _, w := range workers {
		for d := w.FirstRegisteredDay; d <= w.LastRegisteredDay; d++ {
			var vars []cpmodel.BoolVar
			for _, s := range model.DefaultShifts {
				if v, ok := vt.Get(w.ID, d, s); ok {
					vars = append(vars, v)
				}
			}
			if len(vars) > 0 {
				b.AddExactlyOne(vars...)
			}
		}
	}
}

// C3.1b Week-shift consistency: a working day can only carry a given
// shift letter if the calendar showed evidence of that shift somewhere
// in the same ISO week (§4.1 step 10). Absence from WeekShiftKnown is
// the same as an explicit false entry, since the map is read with its
// zero value.
func addWeekShiftConsistency(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker) {
	for _, w := range workers {
		for week, days := range horizon.WeekToDays {
			for _, d := range days {
				if !w.WorkingDays[d] {
					continue
				}
				for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon} {
					if w.WeekShiftKnown[week][s] {
						continue
					}
					if v, ok := vt.Get(w.ID, d, s); ok {
						b.AddLessOrEqual(v, cpmodel.NewConstant(0))
					}
				}
			}
		}
	}
}

// C3.2 Weekly working-days cap.
func addWeeklyWorkingDaysCap(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker) {
	for _, w := range workers {
		for week, days := range horizon.WeekToDays {
			maxDays := w.ContractType
			if w.ContractType == 8 {
				maxDays = w.WorkDaysPerWeek[week]
			}
			expr := cpmodel.NewLinearExpr()
			n := 0
			for _, d := range days {
				for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon} {
					if v, ok := vt.Get(w.ID, d, s); ok {
						expr.Add(v)
						n++
					}
				}
			}
			if n > 0 {
				b.AddLessOrEqual(expr, cpmodel.NewConstant(int64(maxDays)))
			}
		}
	}
}

// C3.3 Consecutive working-days cap, a sliding window of max_continuous+1.
func addConsecutiveWorkingDaysCap(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker, params config.Params) {
	window := params.MaxContinuousWorkingDays + 1
	for _, w := range workers {
		for start := w.FirstRegisteredDay; start+window-1 <= w.LastRegisteredDay; start++ {
			expr := cpmodel.NewLinearExpr()
			n := 0
			for d := start; d < start+window; d++ {
				for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon} {
					if v, ok := vt.Get(w.ID, d, s); ok {
						expr.Add(v)
						n++
					}
				}
			}
			if n > 0 {
				b.AddLessOrEqual(expr, cpmodel.NewConstant(int64(params.MaxContinuousWorkingDays)))
			}
		}
	}
}

// C3.4 Quota floors: enough LQ over working days, enough L over Sundays.
func addQuotaFloors(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker) {
	for _, w := range workers {
		lqExpr := cpmodel.NewLinearExpr()
		for d := range w.WorkingDays {
			if v, ok := vt.Get(w.ID, d, model.StatusQualityOff); ok {
				lqExpr.Add(v)
			}
		}
		b.AddGreaterOrEqual(lqExpr, cpmodel.NewConstant(int64(w.C2D)))

		lDomExpr := cpmodel.NewLinearExpr()
		for d := w.FirstRegisteredDay; d <= w.LastRegisteredDay; d++ {
			if !horizon.Sundays[d] {
				continue
			}
			if v, ok := vt.Get(w.ID, d, model.StatusOff); ok {
				lDomExpr.Add(v)
			}
		}
		b.AddGreaterOrEqual(lDomExpr, cpmodel.NewConstant(int64(w.TotalLDom)))
	}
}

// C3.6 Bounded consecutive free days.
func addBoundedConsecutiveFreeDays(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker) {
	for _, w := range workers {
		window := 7 - w.ContractType
		if w.ContractType == 8 {
			window = 2
		}
		if window <= 0 {
			continue
		}
		freeStatuses := []model.Status{model.StatusOff, model.StatusClosed, model.StatusQualityOff, model.StatusCompOff}
		for start := w.FirstRegisteredDay; start+window-1 <= w.LastRegisteredDay; start++ {
			// At least one of the window's days must be non-free: sum of
			// "is free" indicators over the window <= window-1.
			expr := cpmodel.NewLinearExpr()
			n := 0
			for d := start; d < start+window; d++ {
				for _, s := range freeStatuses {
					if v, ok := vt.Get(w.ID, d, s); ok {
						expr.Add(v)
						n++
					}
				}
			}
			if n > 0 {
				b.AddLessOrEqual(expr, cpmodel.NewConstant(int64(window-1)))
			}
		}
	}
}

// C3.7 Quality-weekend structure: LQ on Sat is only allowed right
// before an L on a working Sunday, and c2d is a floor on the count.
// When Settings.FSpecialDay is set, a store-wide closed Sunday counts
// as the off side of the pairing too, the way the F_special_day branch
// of salsa_esp_2_day_quality_weekend treats a closed holiday the same
// as an explicit L.
func addQualityWeekendStructure(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker, params config.Params) {
	for _, w := range workers {
		for d := w.FirstRegisteredDay; d <= w.LastRegisteredDay; d++ {
			lq, ok := vt.Get(w.ID, d, model.StatusQualityOff)
			if !ok {
				continue
			}
			// A forced LQ (fixed LQ, or a fixed day off on a Saturday)
			// already has its equality from C2 and is never forced to 0.
			forced := w.FixedLQs[d] || w.FixedDaysOff[d]
			sun := d + 1
			if !horizon.Sundays[sun] {
				if !forced {
					b.AddLessOrEqual(lq, cpmodel.NewConstant(0))
				}
				continue
			}

			closedSunday := params.Settings.FSpecialDay && horizon.ClosedHolidays[sun]
			sunL, sunOK := vt.Get(w.ID, sun, model.StatusOff)
			if closedSunday {
				if sunClosed, ok := vt.Get(w.ID, sun, model.StatusClosed); ok {
					sunL, sunOK = sunClosed, ok
				}
			}
			if (!w.WorkingDays[sun] && !closedSunday) || !sunOK {
				// could_be_quality_weekend is false: force LQ to 0 unless
				// it's a forced variable (equality already added in C2).
				if !forced {
					b.AddLessOrEqual(lq, cpmodel.NewConstant(0))
				}
				continue
			}
			b.AddLessOrEqual(lq, sunL)
		}
	}
	addBoundedConsecutiveFreeDays(b, vt, horizon, workers)
}

// C3.8 Saturday-L restriction: L on Sunday excludes L on the prior Saturday.
func addSaturdayLRestriction(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker) {
	for _, w := range workers {
		for d := w.FirstRegisteredDay; d <= w.LastRegisteredDay; d++ {
			if !horizon.Sundays[d] {
				continue
			}
			sunL, ok1 := vt.Get(w.ID, d, model.StatusOff)
			satL, ok2 := vt.Get(w.ID, d-1, model.StatusOff)
			if !ok1 || !ok2 {
				continue
			}
			expr := cpmodel.NewLinearExpr()
			expr.Add(satL)
			expr.Add(sunL)
			b.AddLessOrEqual(expr, cpmodel.NewConstant(1))
		}
	}
}

// C3.9 Free-days-per-week quota.
func addFreeDaysPerWeekQuota(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker, params config.Params) {
	for _, w := range workers {
		for week, days := range horizon.WeekToDays {
			ownDays := 0
			fixedCount := 0
			var presentVars []cpmodel.BoolVar
			for _, d := range days {
				if d < w.FirstRegisteredDay || d > w.LastRegisteredDay {
					continue
				}
				ownDays++
				if w.FixedDaysOff[d] || w.FixedLQs[d] {
					fixedCount++
				}
				for _, s := range []model.Status{model.StatusOff, model.StatusQualityOff} {
					if v, ok := vt.Get(w.ID, d, s); ok {
						presentVars = append(presentVars, v)
					}
				}
			}
			if ownDays == 0 {
				continue
			}

			required := weeklyFreeDaysRequired(w, ownDays, params)
			if fixedCount > required {
				required = fixedCount
			}
			if required <= 0 || len(presentVars) == 0 {
				continue
			}

			expr := cpmodel.NewLinearExpr()
			for _, v := range presentVars {
				expr.Add(v)
			}
			b.AddEquality(expr, cpmodel.NewConstant(int64(required)))
		}
	}
}

// weeklyFreeDaysRequired implements the §4.3 C3.9 table.
func weeklyFreeDaysRequired(w *model.Worker, ownDays int, params config.Params) int {
	full := ownDays >= 7
	if w.ContractType >= 5 {
		if full {
			if ownDays >= 2 {
				return 2
			}
			return 1
		}
		switch {
		case ownDays >= 5:
			return 2
		case ownDays >= 4:
			return 1
		default:
			return 0
		}
	}

	want := 7 - w.ContractType
	if full {
		if ownDays >= want {
			return want
		}
		return ownDays
	}
	ratio := float64(ownDays) / 7.0 * float64(want)
	if params.AdmissaoProporcional == config.RoundCeil {
		return int(ratio + 0.999999)
	}
	return int(ratio)
}

// C3.11 Post-hire first day. The earliest first day is taken over the
// full worker list, Complete-cycle included; the rule itself only binds
// the solvable workers.
func addPostHireFirstDay(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workersComplete []*model.Worker) {
	earliest := 0
	for _, w := range workersComplete {
		if earliest == 0 || w.FirstRegisteredDay < earliest {
			earliest = w.FirstRegisteredDay
		}
	}
	for _, w := range solvableOf(workersComplete) {
		if w.FirstRegisteredDay <= earliest {
			continue
		}
		d := w.FirstRegisteredDay
		expr := cpmodel.NewLinearExpr()
		n := 0
		for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon} {
			if v, ok := vt.Get(w.ID, d, s); ok {
				expr.Add(v)
				n++
			}
		}
		if n > 0 {
			b.AddGreaterOrEqual(expr, cpmodel.NewConstant(1))
		}
	}
}

// C3.12 At-least-one coverage.
func addAtLeastOneCoverage(b *cpmodel.CpModelBuilder, vt *VarTable, horizon *model.Horizon, workers []*model.Worker) {
	for _, d := range horizon.Days {
		candidates := 0
		expr := cpmodel.NewLinearExpr()
		for _, w := range workers {
			if !w.WorkingDays[d] {
				continue
			}
			candidates++
			for _, s := range []model.Status{model.StatusMorning, model.StatusAfternoon} {
				if v, ok := vt.Get(w.ID, d, s); ok {
					expr.Add(v)
				}
			}
		}
		if candidates >= 2 {
			b.AddGreaterOrEqual(expr, cpmodel.NewConstant(1))
		}
	}
}
