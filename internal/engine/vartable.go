// Package engine implements C2-C5: decision-variable construction, the
// hard-constraint library, the weighted objective, and the CP-SAT
// solver invocation and solution extraction. Solve is the single entry
// point; everything else is unexported machinery behind it.
package engine

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/salsaesp/shiftsat/internal/model"
)

// VarKey identifies one (worker, day, status) decision variable.
type VarKey struct {
	Worker int
	Day    int
	Status model.Status
}

// VarTable is the decision-variable lookup described in §4.2: keyed by
// (worker, day, status), with lookups on any subset returning "unknown"
// cleanly rather than panicking.
type VarTable struct {
	vars map[VarKey]cpmodel.BoolVar
}

func newVarTable() *VarTable {
	return &VarTable{vars: make(map[VarKey]cpmodel.BoolVar)}
}

func (t *VarTable) set(w, d int, s model.Status, v cpmodel.BoolVar) {
	t.vars[VarKey{Worker: w, Day: d, Status: s}] = v
}

// Get returns the variable for (w, d, s) and whether it exists.
func (t *VarTable) Get(w, d int, s model.Status) (cpmodel.BoolVar, bool) {
	v, ok := t.vars[VarKey{Worker: w, Day: d, Status: s}]
	return v, ok
}

// ByDayStatus collects every materialized variable for (d, s) across
// all workers, used by coverage and staffing terms.
func (t *VarTable) ByDayStatus(workers []*model.Worker, d int, s model.Status) []cpmodel.BoolVar {
	var out []cpmodel.BoolVar
	for _, w := range workers {
		if v, ok := t.Get(w.ID, d, s); ok {
			out = append(out, v)
		}
	}
	return out
}
