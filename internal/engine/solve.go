package engine

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/rs/zerolog"

	"github.com/salsaesp/shiftsat/internal/config"
	"github.com/salsaesp/shiftsat/internal/corerrors"
	"github.com/salsaesp/shiftsat/internal/diagnostics"
	"github.com/salsaesp/shiftsat/internal/model"
)

// Assignment is one (worker, day) -> status cell of the extracted
// schedule.
type Assignment struct {
	Worker int
	Day    int
	Status model.Status
}

// WorkerSummary is the per-worker count block C5 emits alongside the
// dense schedule.
type WorkerSummary struct {
	Worker         int
	Off            int
	QualityOff     int
	CompOff        int
	SpecialWorked  int
	UnassignedDays int
}

// SolverStats mirrors the statistics block of §4.5: objective value,
// best bound, branch/conflict counts and wall time.
type SolverStats struct {
	ObjectiveValue float64
	BestBound      float64
	Branches       int64
	Conflicts      int64
	WallTime       time.Duration
	Status         string
}

// Result is the output of a successful Solve call.
type Result struct {
	Schedule []Assignment
	Workers  []WorkerSummary
	Stats    SolverStats
}

// Solve runs C2-C5 over an already-normalized input: it builds the
// decision variables, adds every hard constraint, adds the weighted
// objective, and invokes the CP-SAT solver. It returns a complete
// schedule or a *corerrors.CoreError; it never returns a partial
// result (§5, §7).
func Solve(log zerolog.Logger, horizon *model.Horizon, demand *model.Demand, workersComplete []*model.Worker, params config.Params) (*Result, error) {
	builder := cpmodel.NewCpModelBuilder()

	vt := buildVariables(builder, horizon, workersComplete, params)
	addConstraints(builder, vt, horizon, workersComplete, params)
	addObjective(builder, vt, horizon, workersComplete, demand, params)

	cpModel, err := builder.Model()
	if err != nil {
		return nil, corerrors.Wrap(corerrors.KindModelInvalid, "failed to instantiate the CP model", err)
	}

	start := time.Now()
	response, err := solveWithParams(cpModel, params.Solver)
	elapsed := time.Since(start)
	if err != nil {
		return nil, corerrors.Wrap(corerrors.KindModelInvalid, "solver invocation failed", err)
	}

	status := response.GetStatus().String()
	switch response.GetStatus() {
	case cpmodel.CpSolverStatus_OPTIMAL, cpmodel.CpSolverStatus_FEASIBLE:
		// fall through to extraction
	case cpmodel.CpSolverStatus_INFEASIBLE:
		diag := diagnostics.Explain(workersComplete, horizon)
		return nil, corerrors.New(corerrors.KindInfeasible, fmt.Sprintf("solver status %s", status)).WithDiagnostic(diag)
	case cpmodel.CpSolverStatus_MODEL_INVALID:
		return nil, corerrors.New(corerrors.KindModelInvalid, fmt.Sprintf("solver status %s", status))
	default:
		diag := diagnostics.Explain(workersComplete, horizon)
		return nil, corerrors.New(corerrors.KindTimeLimit, fmt.Sprintf("solver status %s", status)).WithDiagnostic(diag)
	}

	schedule, summaries := extract(response, vt, horizon, workersComplete)

	stats := SolverStats{
		ObjectiveValue: response.GetObjectiveValue(),
		BestBound:      response.GetBestObjectiveBound(),
		Branches:       response.GetNumBranches(),
		Conflicts:      response.GetNumConflicts(),
		WallTime:       elapsed,
		Status:         status,
	}

	log.Info().
		Str("status", status).
		Float64("objective", stats.ObjectiveValue).
		Dur("wall_time", elapsed).
		Int("workers", len(workersComplete)).
		Msg("schedule solved")

	return &Result{Schedule: schedule, Workers: summaries, Stats: stats}, nil
}

func solvableOf(workers []*model.Worker) []*model.Worker {
	out := make([]*model.Worker, 0, len(workers))
	for _, w := range workers {
		if !w.IsComplete() {
			out = append(out, w)
		}
	}
	return out
}

// solveWithParams invokes the solver with the configured time limit,
// worker count and random seed (§4.5, §6.4).
func solveWithParams(m *cpmodel.CpModelProto, sc config.SolverConfig) (*cpmodel.CpSolverResponse, error) {
	params := cpmodel.NewSatParameters(fmt.Sprintf(
		"max_time_in_seconds:%f num_search_workers:%d random_seed:%d",
		sc.TimeLimit.Seconds(), sc.NumWorkers, sc.RandomSeed,
	))
	return cpmodel.SolveCpModelWithSatParameters(m, params)
}

func extract(resp *cpmodel.CpSolverResponse, vt *VarTable, horizon *model.Horizon, workers []*model.Worker) ([]Assignment, []WorkerSummary) {
	var schedule []Assignment
	summaries := make([]WorkerSummary, 0, len(workers))

	for _, w := range workers {
		summary := WorkerSummary{Worker: w.ID}
		for d := w.FirstRegisteredDay; d <= w.LastRegisteredDay; d++ {
			found := false
			for _, s := range model.DefaultShifts {
				v, ok := vt.Get(w.ID, d, s)
				if !ok || !cpmodel.SolutionBooleanValue(resp, v) {
					continue
				}
				schedule = append(schedule, Assignment{Worker: w.ID, Day: d, Status: s})
				found = true
				switch s {
				case model.StatusOff:
					summary.Off++
				case model.StatusQualityOff:
					summary.QualityOff++
				case model.StatusCompOff:
					summary.CompOff++
				case model.StatusMorning, model.StatusAfternoon:
					if horizon.Holidays[d] || horizon.Sundays[d] {
						summary.SpecialWorked++
					}
				}
				break
			}
			if !found {
				summary.UnassignedDays++
			}
		}
		summaries = append(summaries, summary)
	}

	return schedule, summaries
}
