package normalize

import (
	"fmt"
	"strings"

	"github.com/salsaesp/shiftsat/internal/config"
	"github.com/salsaesp/shiftsat/internal/corerrors"
	"github.com/salsaesp/shiftsat/internal/model"
	"github.com/salsaesp/shiftsat/internal/tables"
)

// buildWorkers runs §4.1 steps 2,3,6,7,8,9,10 for every employee row
// that also appears in the calendar. It returns workers_complete (every
// worker present in both tables) and workers (the solvable subset,
// contract cycle != "Completo").
func buildWorkers(employee []model.EmployeeRow, byWorker *workerRows, horizon *model.Horizon, params config.Params, warnings *[]tables.Warning) ([]*model.Worker, []*model.Worker, error) {
	var complete []*model.Worker
	var solvable []*model.Worker

	for _, row := range employee {
		rows, ok := byWorker.rows[row.Matricula]
		if !ok || len(rows) == 0 {
			continue // not in the employee ∩ calendar intersection
		}

		w, err := buildWorker(row, rows, horizon, params, warnings)
		if err != nil {
			return nil, nil, err
		}

		complete = append(complete, w)
		if !w.IsComplete() {
			solvable = append(solvable, w)
		}
	}

	return complete, solvable, nil
}

// buildWorker derives a single worker's full record from its raw
// calendar rows and employee row.
func buildWorker(row model.EmployeeRow, rows []model.CalendarRow, horizon *model.Horizon, params config.Params, warnings *[]tables.Warning) (*model.Worker, error) {
	label := make(map[int]string, len(rows))
	for _, r := range rows {
		label[r.Date.YearDay()] = r.ShiftLabel
	}

	first, last := 0, 0
	for _, r := range rows {
		d := r.Date.YearDay()
		if r.ShiftLabel == string(model.StatusOutOfRange) {
			continue
		}
		if first == 0 || d < first {
			first = d
		}
		if d > last {
			last = d
		}
	}
	if first == 0 {
		first, last = horizon.First, horizon.First
	}

	rawEmpty := make(map[int]bool)
	rawMissing := make(map[int]bool)
	rawFixedOff := make(map[int]bool)
	rawFixedLQ := make(map[int]bool)
	rawHoliday := make(map[int]bool)

	for _, d := range horizon.Days {
		l, seen := label[d]
		switch {
		case seen && l == string(model.StatusOutOfRange):
			rawEmpty[d] = true
		case d < first || d > last:
			rawMissing[d] = true
		case seen && l == string(model.StatusVacation):
			rawMissing[d] = true
		case seen && (l == "L" || l == "L_DOM"):
			rawFixedOff[d] = true
		case seen && l == string(model.StatusQualityOff):
			rawFixedLQ[d] = true
		case seen && (l == string(model.StatusAbsence) || l == "AP"):
			rawHoliday[d] = true
		}
	}

	resolved := resolvePrecedence(horizon.ClosedHolidays, rawEmpty, rawMissing, rawFixedOff, rawFixedLQ, rawHoliday)
	empty, missing, fixedOff, fixedLQ, holiday := resolved[0], resolved[1], resolved[2], resolved[3], resolved[4]

	applyShortWeekMigration(horizon, holiday, fixedOff, fixedLQ)

	working := make(map[int]bool)
	for d := range horizon.Days {
		day := horizon.Days[d]
		if day < first || day > last {
			continue
		}
		if empty[day] || missing[day] || holiday[day] || horizon.ClosedHolidays[day] || fixedLQ[day] {
			continue
		}
		working[day] = true
	}

	cycle := model.CycleOrdinary
	if strings.EqualFold(strings.TrimSpace(row.Cycle), "completo") {
		cycle = model.CycleComplete
	}

	lq := row.LTotal - row.LDom - row.C2D - row.C3D - row.LD - row.CXX - row.VZ - row.LRes - row.LRes2
	if lq < 0 {
		return nil, corerrors.New(corerrors.KindInputShape, fmt.Sprintf("worker %d: derived l_q is negative, malformed employee quotas", row.Matricula))
	}

	w := &model.Worker{
		ID:                 row.Matricula,
		ContractType:       row.ContractType,
		Role:               model.RoleNormal,
		Cycle:              cycle,
		TotalL:             row.LTotal,
		TotalLDom:          row.LDom,
		C2D:                row.C2D,
		C3D:                row.C3D,
		LD:                 row.LD,
		LQ:                 lq,
		CXX:                row.CXX,
		VZ:                 row.VZ,
		LRes:               row.LRes,
		LRes2:              row.LRes2,
		TLQ:                lq + row.C2D + row.C3D,
		FirstRegisteredDay: first,
		LastRegisteredDay:  last,
		WorkDayHours:       make(map[int]int),
		WorkDaysPerWeek:    make(map[int]int),
		FixedDaysOff:       fixedOff,
		FixedLQs:           fixedLQ,
		MissingDays:        missing,
		EmptyDays:          empty,
		Holiday:            holiday,
		WorkingDays:        working,
		WeekShiftKnown:     buildWeekShiftKnown(rows, horizon),
	}

	prorateWorker(w, params)

	for d := range working {
		w.WorkDayHours[d] = 8
	}
	if w.ContractType == 8 {
		for week := range horizon.WeekToDays {
			if n := weekWorkDays(rows, week, horizon); n > 0 {
				w.WorkDaysPerWeek[week] = n
			}
		}
	}

	return w, nil
}

// prorateWorker applies §4.1 step 9 in place when 0 < LastRegisteredDay
// < 364; any other last day leaves the quotas unchanged.
func prorateWorker(w *model.Worker, params config.Params) {
	if w.LastRegisteredDay <= 0 || w.LastRegisteredDay >= 364 {
		return
	}
	factor := prorationFactor(w.LastRegisteredDay)

	w.TotalL = prorateQuota(w.TotalL, factor, "")
	w.TotalLDom = prorateQuota(w.TotalLDom, factor, "")
	w.LQ = prorateQuota(w.LQ, factor, "")
	w.CXX = prorateQuota(w.CXX, factor, "")
	w.TLQ = prorateQuota(w.TLQ, factor, "")
	w.C2D = prorateQuota(w.C2D, factor, params.AdmissaoProporcional)
	w.C3D = prorateQuota(w.C3D, factor, params.AdmissaoProporcional)
}

// buildWeekShiftKnown implements §4.1 step 10: a sparse evidence table,
// populated only for weeks where the calendar shows an explicit M or T
// letter for the worker.
func buildWeekShiftKnown(rows []model.CalendarRow, horizon *model.Horizon) map[int]map[model.Status]bool {
	out := make(map[int]map[model.Status]bool)
	for _, r := range rows {
		s := model.Status(r.ShiftLabel)
		if s != model.StatusMorning && s != model.StatusAfternoon {
			continue
		}
		week := horizon.DayWeek[r.Date.YearDay()]
		if week == 0 {
			continue
		}
		if out[week] == nil {
			out[week] = make(map[model.Status]bool)
		}
		out[week][s] = true
	}
	return out
}

// weekWorkDays counts the M/T evidence days for a contract-type-8
// worker within one ISO week, used as that week's contractual
// requirement (work_days_per_week).
func weekWorkDays(rows []model.CalendarRow, week int, horizon *model.Horizon) int {
	n := 0
	for _, r := range rows {
		if horizon.DayWeek[r.Date.YearDay()] != week {
			continue
		}
		s := model.Status(r.ShiftLabel)
		if s == model.StatusMorning || s == model.StatusAfternoon {
			n++
		}
	}
	return n
}
