package normalize

import (
	"sort"
	"strings"
	"time"

	"github.com/salsaesp/shiftsat/internal/model"
)

// workerRows groups raw calendar rows by worker id, sorted by day.
type workerRows struct {
	rows map[int][]model.CalendarRow
}

// buildHorizon extracts the scheduling horizon and special-day sets
// from the calendar table (§4.1 step 4-5) and groups rows by worker for
// the later per-worker derivation step.
func buildHorizon(calendar []model.CalendarRow) (*model.Horizon, *workerRows, error) {
	daySet := make(map[int]bool)
	sundays := make(map[int]bool)
	holidays := make(map[int]bool)
	closed := make(map[int]bool)
	weekToDays := make(map[int]map[int]bool)

	byWorker := make(map[int][]model.CalendarRow)
	year := calendar[0].Date.Year()

	for _, row := range calendar {
		day := row.Date.YearDay()
		daySet[day] = true
		byWorker[row.Worker] = append(byWorker[row.Worker], row)

		isSunday := strings.EqualFold(row.Weekday, "Sun")
		if isSunday {
			sundays[day] = true
		} else if strings.EqualFold(row.DayType, "domYf") {
			holidays[day] = true
		}
		if strings.EqualFold(row.ShiftLabel, string(model.StatusClosed)) {
			closed[day] = true
		}

		if row.Week > 0 {
			set, ok := weekToDays[row.Week]
			if !ok {
				set = make(map[int]bool)
				weekToDays[row.Week] = set
			}
			set[day] = true
		}
	}

	days := sortedKeys(daySet)
	weekMap := make(map[int][]int, len(weekToDays))
	for w, set := range weekToDays {
		weekMap[w] = sortedKeys(set)
	}

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	startWeekday := mondayBased(jan1.Weekday())

	for worker, rows := range byWorker {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
		byWorker[worker] = rows
	}

	return model.NewHorizon(year, days, startWeekday, weekMap, sundays, holidays, closed), &workerRows{rows: byWorker}, nil
}

// mondayBased converts Go's Sunday=0..Saturday=6 encoding to the
// Monday=1..Sunday=7 encoding used by §3's start_weekday.
func mondayBased(d time.Weekday) int {
	return ((int(d)+6)%7 + 1)
}
