package normalize_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salsaesp/shiftsat/internal/config"
	"github.com/salsaesp/shiftsat/internal/model"
	"github.com/salsaesp/shiftsat/internal/normalize"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

var weekdayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func weekOfCalendarRows(worker int, week int, labels map[string]string) []model.CalendarRow {
	days := []struct {
		date    string
		weekday string
	}{
		{"2026-01-05", "Mon"},
		{"2026-01-06", "Tue"},
		{"2026-01-07", "Wed"},
		{"2026-01-08", "Thu"},
		{"2026-01-09", "Fri"},
		{"2026-01-10", "Sat"},
		{"2026-01-11", "Sun"},
	}
	var rows []model.CalendarRow
	for _, d := range days {
		rows = append(rows, model.CalendarRow{
			Worker:     worker,
			Date:       date(d.date),
			Week:       week,
			Weekday:    d.weekday,
			ShiftLabel: labels[d.date],
		})
	}
	return rows
}

// fullYearCalendarRows builds a full calendar year of rows for one
// worker so last_registered_day lands on the final day of the year and
// proration (§4.1 step 9) is a no-op, keeping quota assertions simple.
// labels maps a date string to the raw shift letter on that date; every
// other day is left blank (open, undetermined).
func fullYearCalendarRows(worker, year int, labels map[string]string) []model.CalendarRow {
	var rows []model.CalendarRow
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		_, week := d.ISOWeek()
		rows = append(rows, model.CalendarRow{
			Worker:     worker,
			Date:       d,
			Week:       week,
			Weekday:    weekdayNames[int(d.Weekday())],
			ShiftLabel: labels[d.Format("2006-01-02")],
		})
	}
	return rows
}

func TestNormalize_HappyPath(t *testing.T) {
	calendar := fullYearCalendarRows(1, 2026, map[string]string{"2026-01-10": "L"})
	employee := []model.EmployeeRow{
		{Matricula: 1, ContractType: 5, Cycle: "ordinary", LTotal: 2, LDom: 1},
	}
	demand := []model.DemandRow{
		{Date: date("2026-01-05"), Shift: model.StatusMorning, PessObj: 1, MinWorker: 1, MaxWorker: 2, Weekday: 1},
	}

	result, err := normalize.Normalize(zerolog.Nop(), calendar, employee, demand, config.DefaultParams())
	require.NoError(t, err)
	require.Len(t, result.Input.WorkersComplete, 1)
	require.Len(t, result.Input.Workers, 1, "an ordinary-cycle worker is solvable")

	w := result.Input.Workers[0]
	assert.Equal(t, 1, w.ID)
	assert.Equal(t, 1, w.LQ, "l_total - l_dom with every other quota at zero, no proration over a full year")
	assert.True(t, w.FixedDaysOff[date("2026-01-10").YearDay()], "the L label on Jan 10 is a fixed day off")
	assert.True(t, result.Input.Horizon.Sundays[date("2026-01-11").YearDay()])
}

func TestNormalize_CompleteCycleWorkerIsExcludedFromSolvable(t *testing.T) {
	calendar := weekOfCalendarRows(1, 2, nil)
	employee := []model.EmployeeRow{
		{Matricula: 1, ContractType: 5, Cycle: "Completo", LTotal: 0, LDom: 0},
	}

	result, err := normalize.Normalize(zerolog.Nop(), calendar, employee, nil, config.DefaultParams())
	require.NoError(t, err)
	assert.Len(t, result.Input.WorkersComplete, 1)
	assert.Empty(t, result.Input.Workers, "Completo workers never enter the solvable set")
}

func TestNormalize_EmployeeNotInCalendarIsDropped(t *testing.T) {
	calendar := weekOfCalendarRows(1, 2, nil)
	employee := []model.EmployeeRow{
		{Matricula: 1, ContractType: 5, Cycle: "ordinary", LTotal: 0, LDom: 0},
		{Matricula: 99, ContractType: 5, Cycle: "ordinary", LTotal: 0, LDom: 0},
	}

	result, err := normalize.Normalize(zerolog.Nop(), calendar, employee, nil, config.DefaultParams())
	require.NoError(t, err)
	require.Len(t, result.Input.WorkersComplete, 1)
	assert.Equal(t, 1, result.Input.WorkersComplete[0].ID)
}

func TestNormalize_NegativeDerivedLQIsFatal(t *testing.T) {
	calendar := weekOfCalendarRows(1, 2, nil)
	employee := []model.EmployeeRow{
		{Matricula: 1, ContractType: 5, Cycle: "ordinary", LTotal: 1, LDom: 5},
	}

	_, err := normalize.Normalize(zerolog.Nop(), calendar, employee, nil, config.DefaultParams())
	require.Error(t, err)
}

func TestNormalize_EmptyCalendarIsFatal(t *testing.T) {
	_, err := normalize.Normalize(zerolog.Nop(), nil, []model.EmployeeRow{{Matricula: 1}}, nil, config.DefaultParams())
	require.Error(t, err)
}

func TestNormalize_EmptyEmployeeIsFatal(t *testing.T) {
	calendar := weekOfCalendarRows(1, 2, nil)
	_, err := normalize.Normalize(zerolog.Nop(), calendar, nil, nil, config.DefaultParams())
	require.Error(t, err)
}
