package tables

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"

	"github.com/salsaesp/shiftsat/internal/corerrors"
	"github.com/salsaesp/shiftsat/internal/model"
)

// Warning is a non-fatal data-quality finding (§7 kind 3): recoverable,
// logged by the caller, never returned as an error.
type Warning struct {
	Row     int
	Column  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d, column %q: %s", w.Row, w.Column, w.Message)
}

var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05Z07:00", "02/01/2006", "01/02/2006"}

// parseDate parses a calendar date, preferring the strict ISO
// full-date format strfmt.Date validates, falling back to a handful of
// common upstream layouts before failing per §4.1 step 1 ("data must
// parse as a calendar date").
func parseDate(s string) (time.Time, error) {
	var d strfmt.Date
	if err := d.UnmarshalText([]byte(s)); err == nil {
		return time.Time(d), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.InvalidType("data", "date", s)
}

func parseInt(s string) (int, bool) {
	if isNaN(s) {
		return 0, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, false
	}
	// tolerate quotas written as floats in the source system
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(math.Round(f)), false
	}
	return 0, true
}

func parseFloat(s string) (float64, bool) {
	if isNaN(s) {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, true
	}
	return f, false
}

var calendarColumns = []string{"colaborador", "data", "ww", "wd", "tipo_turno", "dia_tipo"}

// ParseCalendarTable validates and coerces the calendar table (§6.1).
func ParseCalendarTable(t RawTable) ([]model.CalendarRow, []Warning, error) {
	idx, missing, ok := requireColumns(t, calendarColumns)
	if !ok {
		return nil, nil, corerrors.New(corerrors.KindInputShape, fmt.Sprintf("calendar table missing required column %q", missing))
	}

	rows := make([]model.CalendarRow, 0, len(t.Rows))
	var warnings []Warning
	for r := range t.Rows {
		workerStr := t.Cell(r, idx["colaborador"])
		worker, err := strconv.Atoi(workerStr)
		if err != nil {
			return nil, nil, corerrors.New(corerrors.KindInputShape, fmt.Sprintf("calendar row %d: colaborador %q is not an integer", r, workerStr))
		}
		dateStr := t.Cell(r, idx["data"])
		date, err := parseDate(dateStr)
		if err != nil {
			return nil, nil, corerrors.New(corerrors.KindInputShape, fmt.Sprintf("calendar row %d: data %q does not parse as a date", r, dateStr))
		}
		week, isNaNWeek := parseInt(t.Cell(r, idx["ww"]))
		if isNaNWeek {
			warnings = append(warnings, Warning{Row: r, Column: "ww", Message: "missing week number, defaulted to 0"})
		}
		rows = append(rows, model.CalendarRow{
			Worker:     worker,
			Date:       date,
			Week:       week,
			Weekday:    strings.TrimSpace(t.Cell(r, idx["wd"])),
			DayType:    strings.TrimSpace(t.Cell(r, idx["dia_tipo"])),
			ShiftLabel: strings.ToUpper(strings.TrimSpace(t.Cell(r, idx["tipo_turno"]))),
		})
	}
	return rows, warnings, nil
}

var employeeColumns = []string{
	"matricula", "tipo_contrato", "ciclo",
	"l_total", "l_dom", "l_dom_salsa", "c2d", "c3d", "l_d", "cxx", "vz", "l_res", "l_res2",
}

// ParseEmployeeTable validates and coerces the employee table (§6.1).
// NaN in numeric quota columns is replaced by 0, with a Warning (§4.1
// step 1, §7 kind 3).
func ParseEmployeeTable(t RawTable) ([]model.EmployeeRow, []Warning, error) {
	idx, missing, ok := requireColumns(t, employeeColumns)
	if !ok {
		return nil, nil, corerrors.New(corerrors.KindInputShape, fmt.Sprintf("employee table missing required column %q", missing))
	}

	rows := make([]model.EmployeeRow, 0, len(t.Rows))
	var warnings []Warning
	quotaCol := func(name string) func(r int) int {
		return func(r int) int {
			v, wasNaN := parseInt(t.Cell(r, idx[name]))
			if wasNaN {
				warnings = append(warnings, Warning{Row: r, Column: name, Message: "NaN quota, zero-filled"})
			}
			return v
		}
	}
	l_total, l_dom, l_dom_salsa := quotaCol("l_total"), quotaCol("l_dom"), quotaCol("l_dom_salsa")
	c2d, c3d, l_d := quotaCol("c2d"), quotaCol("c3d"), quotaCol("l_d")
	cxx, vz, l_res, l_res2 := quotaCol("cxx"), quotaCol("vz"), quotaCol("l_res"), quotaCol("l_res2")

	for r := range t.Rows {
		matriculaStr := t.Cell(r, idx["matricula"])
		matricula, err := strconv.Atoi(matriculaStr)
		if err != nil {
			return nil, nil, corerrors.New(corerrors.KindInputShape, fmt.Sprintf("employee row %d: matricula %q is not an integer", r, matriculaStr))
		}
		contractType, err := coerceContractType(t.Cell(r, idx["tipo_contrato"]))
		if err != nil {
			return nil, nil, corerrors.New(corerrors.KindInputShape, fmt.Sprintf("employee row %d: %v", r, err))
		}
		rows = append(rows, model.EmployeeRow{
			Matricula:    matricula,
			ContractType: contractType,
			Cycle:        strings.TrimSpace(t.Cell(r, idx["ciclo"])),
			LTotal:       l_total(r),
			LDom:         l_dom(r),
			LDomSalsa:    l_dom_salsa(r),
			C2D:          c2d(r),
			C3D:          c3d(r),
			LD:           l_d(r),
			CXX:          cxx(r),
			VZ:           vz(r),
			LRes:         l_res(r),
			LRes2:        l_res2(r),
		})
	}
	return rows, warnings, nil
}

func coerceContractType(s string) (int, error) {
	n, wasNaN := parseInt(s)
	if wasNaN {
		return 0, fmt.Errorf("tipo_contrato %q is empty", s)
	}
	switch n {
	case 4, 5, 6, 8:
		return n, nil
	default:
		return 0, fmt.Errorf("tipo_contrato %q is not one of {4,5,6,8}", s)
	}
}

var demandColumns = []string{"data", "turno", "min_turno", "max_turno", "pess_obj", "wday"}

// ParseDemandTable validates and coerces the demand table (§6.1).
// Fractional staffing targets are rounded to the nearest integer.
func ParseDemandTable(t RawTable) ([]model.DemandRow, []Warning, error) {
	idx, missing, ok := requireColumns(t, demandColumns)
	if !ok {
		return nil, nil, corerrors.New(corerrors.KindInputShape, fmt.Sprintf("demand table missing required column %q", missing))
	}

	rows := make([]model.DemandRow, 0, len(t.Rows))
	var warnings []Warning
	for r := range t.Rows {
		dateStr := t.Cell(r, idx["data"])
		date, err := parseDate(dateStr)
		if err != nil {
			return nil, nil, corerrors.New(corerrors.KindInputShape, fmt.Sprintf("demand row %d: data %q does not parse as a date", r, dateStr))
		}
		pessObj, wasNaN := parseFloat(t.Cell(r, idx["pess_obj"]))
		if wasNaN {
			warnings = append(warnings, Warning{Row: r, Column: "pess_obj", Message: "NaN target, zero-filled"})
		}
		minW, _ := parseFloat(t.Cell(r, idx["min_turno"]))
		maxW, _ := parseFloat(t.Cell(r, idx["max_turno"]))
		wday, _ := parseInt(t.Cell(r, idx["wday"]))

		rows = append(rows, model.DemandRow{
			Date:      date,
			Shift:     model.Status(strings.ToUpper(strings.TrimSpace(t.Cell(r, idx["turno"])))),
			PessObj:   int(math.Round(pessObj)),
			MinWorker: int(math.Round(minW)),
			MaxWorker: int(math.Round(maxW)),
			Weekday:   wday,
		})
	}
	return rows, warnings, nil
}
