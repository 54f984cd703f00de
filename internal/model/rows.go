package model

import "time"

// CalendarRow is one row of the calendar table (§6.1): a worker-day
// record carrying the week number, weekday marker, day-type marker and
// the raw shift letter observed upstream.
type CalendarRow struct {
	Worker     int
	Date       time.Time
	Week       int    // `ww`, ISO week number
	Weekday    string // `wd`, short name; "Sun" marks Sundays
	DayType    string // `dia_tipo`; "domYf" marks open holiday/Sunday
	ShiftLabel string // `tipo_turno`
}

// EmployeeRow is one row of the employee table (§6.1).
type EmployeeRow struct {
	Matricula    int
	ContractType int // `tipo_contrato`, coerced to {4,5,6,8}
	Cycle        string
	LTotal       int
	LDom         int
	LDomSalsa    int
	C2D          int
	C3D          int
	LD           int
	CXX          int
	VZ           int
	LRes         int
	LRes2        int
}

// DemandRow is one row of the demand table (§6.1).
type DemandRow struct {
	Date      time.Time
	Shift     Status // `turno`
	PessObj   int    // target workers, rounded
	MinWorker int    // `min_turno`, rounded
	MaxWorker int    // `max_turno`, rounded
	Weekday   int    // `wday`, 1-7
}

// Demand holds, per day and per working shift, the target/min/max
// staffing counts (§3 "Demand").
type Demand struct {
	PessObj   map[int]map[Status]int
	MinWorker map[int]map[Status]int
	MaxWorker map[int]map[Status]int
}

// NewDemand allocates an empty Demand.
func NewDemand() *Demand {
	return &Demand{
		PessObj:   make(map[int]map[Status]int),
		MinWorker: make(map[int]map[Status]int),
		MaxWorker: make(map[int]map[Status]int),
	}
}

func (d *Demand) set(table map[int]map[Status]int, day int, s Status, v int) {
	byShift, ok := table[day]
	if !ok {
		byShift = make(map[Status]int)
		table[day] = byShift
	}
	byShift[s] = v
}

// Add merges one demand row into the table.
func (d *Demand) Add(day int, s Status, pessObj, minW, maxW int) {
	d.set(d.PessObj, day, s, pessObj)
	d.set(d.MinWorker, day, s, minW)
	d.set(d.MaxWorker, day, s, maxW)
}

// Target returns the pess_obj target for (day, shift), or 0 if absent.
func (d *Demand) Target(day int, s Status) int {
	if byShift, ok := d.PessObj[day]; ok {
		return byShift[s]
	}
	return 0
}

// Min returns the min_workers floor for (day, shift), or 0 if absent.
func (d *Demand) Min(day int, s Status) int {
	if byShift, ok := d.MinWorker[day]; ok {
		return byShift[s]
	}
	return 0
}
