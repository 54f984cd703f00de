package normalize

import "github.com/salsaesp/shiftsat/internal/model"

// resolvePrecedence reduces a list of candidate day-sets, given in
// highest-to-lowest precedence order, so that the returned sets are
// pairwise disjoint: a day already claimed by an earlier bucket is
// dropped from every later one (§4.1 step 7, §6.5). closed carries the
// store-wide closed_holidays set, which always wins and is otherwise
// not returned (C2/C3.1 force it to F directly from the horizon).
func resolvePrecedence(closed map[int]bool, buckets ...map[int]bool) []map[int]bool {
	claimed := make(map[int]bool, len(closed))
	for d := range closed {
		claimed[d] = true
	}

	resolved := make([]map[int]bool, len(buckets))
	for i, bucket := range buckets {
		out := make(map[int]bool)
		for d := range bucket {
			if claimed[d] {
				continue
			}
			out[d] = true
			claimed[d] = true
		}
		resolved[i] = out
	}
	return resolved
}

// applyShortWeekMigration implements §4.1 step 8 / §6.6: for every week
// with more than six days where absences crowd out the weekend, the
// Saturday/Sunday pair is migrated out of worker_holiday and forced
// into the quality-weekend pattern {L (Sat), LQ (Sun)}. holiday,
// fixedOff and fixedLQ are mutated in place.
func applyShortWeekMigration(h *model.Horizon, holiday, fixedOff, fixedLQ map[int]bool) {
	for _, days := range h.WeekToDays {
		if len(days) <= 6 || len(days) < 7 {
			continue
		}
		sat, sun := days[5], days[6]
		if h.ClosedHolidays[sat] || h.ClosedHolidays[sun] {
			continue
		}

		var remaining []int
		for _, d := range days {
			if !holiday[d] {
				remaining = append(remaining, d)
			}
		}

		switch len(remaining) {
		case 0:
			delete(holiday, sat)
			delete(holiday, sun)
		case 1:
			r := remaining[0]
			if r != sat {
				delete(holiday, sat)
			}
			if r != sun {
				delete(holiday, sun)
			}
		case 2:
			hasSat, hasSun := remaining[0] == sat || remaining[1] == sat, remaining[0] == sun || remaining[1] == sun
			if !hasSat {
				delete(holiday, sat)
			}
			if !hasSun {
				delete(holiday, sun)
			}
		default:
			continue
		}

		delete(fixedOff, sun)
		delete(fixedLQ, sat)
		fixedOff[sat] = true
		fixedLQ[sun] = true
	}
}
