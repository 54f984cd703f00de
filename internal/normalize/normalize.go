// Package normalize implements C1, the Input Normalizer: it reads the
// three raw tables and derives the per-worker working sets, quotas,
// contractual allowances and the scheduling horizon that C2-C5 build
// on (spec §4.1).
package normalize

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/salsaesp/shiftsat/internal/config"
	"github.com/salsaesp/shiftsat/internal/corerrors"
	"github.com/salsaesp/shiftsat/internal/model"
	"github.com/salsaesp/shiftsat/internal/tables"
)

// Result bundles the normalized input with the data-quality warnings
// accumulated along the way (§7 kind 3).
type Result struct {
	Input    *model.NormalizedInput
	Warnings []tables.Warning
}

// Normalize runs the full C1 pipeline: validate, derive l_q, intersect
// the worker sets, extract the horizon and special days, build the
// week map, derive per-worker status sets, resolve precedence, apply
// the short-week migration, pro-rate quotas and build the known-shift
// evidence table.
func Normalize(log zerolog.Logger, calendar []model.CalendarRow, employee []model.EmployeeRow, demand []model.DemandRow, params config.Params) (*Result, error) {
	if len(calendar) == 0 {
		return nil, corerrors.New(corerrors.KindEmptyIntersection, "calendar table has no rows")
	}
	if len(employee) == 0 {
		return nil, corerrors.New(corerrors.KindEmptyIntersection, "employee table has no rows")
	}

	var warnings []tables.Warning

	horizon, byWorkerRows, err := buildHorizon(calendar)
	if err != nil {
		return nil, err
	}

	workersComplete, ws, err := buildWorkers(employee, byWorkerRows, horizon, params, &warnings)
	if err != nil {
		return nil, err
	}
	if len(workersComplete) == 0 {
		return nil, corerrors.New(corerrors.KindEmptyIntersection, "no worker id appears in both the employee and calendar tables")
	}

	earliest := workersComplete[0].FirstRegisteredDay
	for _, w := range workersComplete {
		if w.FirstRegisteredDay < earliest {
			earliest = w.FirstRegisteredDay
		}
	}

	demandTable, err := buildDemand(demand, params)
	if err != nil {
		return nil, err
	}

	input := &model.NormalizedInput{
		Horizon:          horizon,
		Demand:           demandTable,
		WorkersComplete:  workersComplete,
		Workers:          ws,
		EarliestFirstDay: earliest,
	}

	log.Info().
		Int("workers_complete", len(workersComplete)).
		Int("workers_solvable", len(ws)).
		Int("horizon_days", len(horizon.Days)).
		Int("warnings", len(warnings)).
		Msg("normalized scheduling input")

	return &Result{Input: input, Warnings: warnings}, nil
}

func buildDemand(rows []model.DemandRow, params config.Params) (*model.Demand, error) {
	d := model.NewDemand()
	for _, r := range rows {
		if !params.WorkingShifts.Contains(r.Shift) && !params.CheckShifts.Contains(r.Shift) {
			continue
		}
		d.Add(dayOfYear(r.Date), r.Shift, r.PessObj, r.MinWorker, r.MaxWorker)
	}
	return d, nil
}

func dayOfYear(t time.Time) int {
	return t.YearDay()
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

func describeWorker(w *model.Worker) string {
	return fmt.Sprintf("worker %d (contract %d)", w.ID, w.ContractType)
}
