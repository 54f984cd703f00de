package engine

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/salsaesp/shiftsat/internal/model"
)

// workerCountOverDays materializes an integer variable equal to the
// number of days in `days` on which worker w carries status s.
func (o *objectiveBuilder) workerCountOverDays(w *model.Worker, s model.Status, days map[int]bool, tag string) cpmodel.IntVar {
	sum := cpmodel.NewLinearExpr()
	n := 0
	for d := range days {
		if v, ok := o.vt.Get(w.ID, d, s); ok {
			sum.Add(v)
			n++
		}
	}
	v := o.b.NewIntVar(0, int64(worstCase(n))).WithName(o.name(tag))
	o.b.AddEquality(sum, v)
	return v
}

// spreadAcrossWorkers adds weight * (max count - min count) to the
// objective, where count[w] is the worker's occurrence count of status
// s over days. This is terms 4 and 5 of §4.4.
func (o *objectiveBuilder) spreadAcrossWorkers(s model.Status, days map[int]bool, weight int64, tag string) {
	if weight <= 0 || len(o.workers) == 0 {
		return
	}
	maxN := worstCase(len(days))
	maxVar := o.b.NewIntVar(0, int64(maxN)).WithName(o.name(tag + "_max"))
	minVar := o.b.NewIntVar(0, int64(maxN)).WithName(o.name(tag + "_min"))

	for _, w := range o.workers {
		if w.IsComplete() {
			continue
		}
		count := o.workerCountOverDays(w, s, days, tag+"_count")
		o.b.AddLessOrEqual(asExpr(count), asExpr(maxVar))
		o.b.AddGreaterOrEqual(asExpr(count), asExpr(minVar))
	}

	spreadExpr := cpmodel.NewLinearExpr()
	spreadExpr.AddTerm(maxVar, 1)
	spreadExpr.AddTerm(minVar, -1)
	spread := o.intFromExpr(spreadExpr, 0, int64(maxN), tag+"_spread")
	o.add(weight, spread)
}

func (o *objectiveBuilder) sundayOffSpread() {
	o.spreadAcrossWorkers(model.StatusOff, o.horizon.Sundays, scaledWeight(o.params.Scale, o.params.Weights.SundayOffSpread, worstCase(len(o.horizon.Sundays))), "sun_spread")
}

func (o *objectiveBuilder) qualityOffSpread() {
	o.spreadAcrossWorkers(model.StatusQualityOff, saturdaysOf(o.horizon), scaledWeight(o.params.Scale, o.params.Weights.QualityOffSpread, worstCase(len(o.horizon.Sundays))), "lq_spread")
}

func asExpr(v cpmodel.IntVar) *cpmodel.LinearExpr {
	e := cpmodel.NewLinearExpr()
	e.AddTerm(v, 1)
	return e
}

// weekSegmentBalance implements terms 8/9: special days are split into
// 6 roughly-equal chronological segments; each worker's per-segment
// count is balanced via the same max-min spread construction.
func (o *objectiveBuilder) weekSegmentBalance(s model.Status, days map[int]bool, importance int, tag string) {
	weight := scaledWeight(o.params.Scale, importance, worstCase(len(days)))
	if weight <= 0 || len(o.workers) == 0 {
		return
	}
	segments := splitIntoSegments(days, 6)

	for _, w := range o.workers {
		if w.IsComplete() {
			continue
		}
		maxVar := o.b.NewIntVar(0, int64(worstCase(len(days)))).WithName(o.name(fmt.Sprintf("%s_w%d_max", tag, w.ID)))
		minVar := o.b.NewIntVar(0, int64(worstCase(len(days)))).WithName(o.name(fmt.Sprintf("%s_w%d_min", tag, w.ID)))
		for i, seg := range segments {
			count := o.workerCountOverDays(w, s, seg, fmt.Sprintf("%s_w%d_seg%d", tag, w.ID, i))
			o.b.AddLessOrEqual(asExpr(count), asExpr(maxVar))
			o.b.AddGreaterOrEqual(asExpr(count), asExpr(minVar))
		}
		spreadExpr := cpmodel.NewLinearExpr()
		spreadExpr.AddTerm(maxVar, 1)
		spreadExpr.AddTerm(minVar, -1)
		spread := o.intFromExpr(spreadExpr, 0, int64(worstCase(len(days))), fmt.Sprintf("%s_w%d_spread", tag, w.ID))
		o.add(weight, spread)
	}
}

func splitIntoSegments(days map[int]bool, n int) []map[int]bool {
	sorted := make([]int, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	segments := make([]map[int]bool, n)
	for i := range segments {
		segments[i] = make(map[int]bool)
	}
	if len(sorted) == 0 {
		return segments
	}
	chunk := (len(sorted) + n - 1) / n
	if chunk == 0 {
		chunk = 1
	}
	for i, d := range sorted {
		seg := i / chunk
		if seg >= n {
			seg = n - 1
		}
		segments[seg][d] = true
	}
	return segments
}

// pairwiseFairness implements terms 13/14: for every pair of solvable
// workers, penalize
// |count[w1]*prop2 - count[w2]*prop1| where prop_i is w_i's active-day
// share of the horizon, as an integer percent.
func (o *objectiveBuilder) pairwiseFairness(s model.Status, days map[int]bool, importance int, tag string) {
	weight := scaledWeight(o.params.Scale, importance, worstCase(len(days)*100))
	if weight <= 0 {
		return
	}
	horizonDays := worstCase(len(o.horizon.Days))

	eligible := make([]*model.Worker, 0, len(o.workers))
	for _, w := range o.workers {
		if !w.IsComplete() {
			eligible = append(eligible, w)
		}
	}

	counts := make(map[int]cpmodel.IntVar, len(eligible))
	props := make(map[int]int, len(eligible))
	for _, w := range eligible {
		counts[w.ID] = o.workerCountOverDays(w, s, days, fmt.Sprintf("%s_w%d_cnt", tag, w.ID))
		active := w.LastRegisteredDay - w.FirstRegisteredDay + 1
		props[w.ID] = active * 100 / horizonDays
	}

	for i := 0; i < len(eligible); i++ {
		for j := i + 1; j < len(eligible); j++ {
			w1, w2 := eligible[i], eligible[j]
			diff := cpmodel.NewLinearExpr()
			diff.AddTerm(counts[w1.ID], int64(props[w2.ID]))
			diff.AddTerm(counts[w2.ID], int64(-props[w1.ID]))
			bound := int64(worstCase(len(days)) * 100)
			d := o.intFromExpr(diff, -bound, bound, fmt.Sprintf("%s_diff_%d_%d", tag, w1.ID, w2.ID))

			abs := o.b.NewIntVar(0, bound).WithName(o.name(fmt.Sprintf("%s_abs_%d_%d", tag, w1.ID, w2.ID)))
			o.b.AddGreaterOrEqual(asExpr(abs), asExpr(d))
			negD := cpmodel.NewLinearExpr()
			negD.AddTerm(d, -1)
			o.b.AddGreaterOrEqual(asExpr(abs), negD)

			o.add(weight, abs)
		}
	}
}
