// Package diagnostics produces the human-readable hint attached to
// Infeasible and TimeLimit failures (§7 kinds 5-6): which week or
// worker carries the most pre-fixed days, since that is usually where
// an over-constrained dataset originates.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/salsaesp/shiftsat/internal/model"
)

// Explain ranks workers by fixed-day density and weeks by fixed-day
// count, and renders the top offenders as a single diagnostic string.
func Explain(workers []*model.Worker, horizon *model.Horizon) string {
	type workerDensity struct {
		id    int
		fixed int
		total int
	}

	densities := make([]workerDensity, 0, len(workers))
	weekFixed := make(map[int]int)

	for _, w := range workers {
		blocked := w.BlockedDays()
		total := w.LastRegisteredDay - w.FirstRegisteredDay + 1
		densities = append(densities, workerDensity{id: w.ID, fixed: len(blocked), total: total})
		for d := range blocked {
			weekFixed[horizon.DayWeek[d]]++
		}
	}

	sort.Slice(densities, func(i, j int) bool {
		ri := ratio(densities[i].fixed, densities[i].total)
		rj := ratio(densities[j].fixed, densities[j].total)
		return ri > rj
	})

	weeks := make([]int, 0, len(weekFixed))
	for w := range weekFixed {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool { return weekFixed[weeks[i]] > weekFixed[weeks[j]] })

	topWorkers := densities
	if len(topWorkers) > 3 {
		topWorkers = topWorkers[:3]
	}
	topWeeks := weeks
	if len(topWeeks) > 3 {
		topWeeks = topWeeks[:3]
	}

	out := "most-constrained workers: "
	for i, d := range topWorkers {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("worker %d (%d/%d fixed days)", d.id, d.fixed, d.total)
	}
	out += "; most-constrained weeks: "
	for i, w := range topWeeks {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("week %d (%d fixed days)", w, weekFixed[w])
	}
	return out
}

func ratio(fixed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(fixed) / float64(total)
}
