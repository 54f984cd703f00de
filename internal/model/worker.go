package model

// Role is the worker's operational role, used by the manager/keyholder
// conflict objective terms (§4.4 items 11-12).
type Role string

const (
	RoleNormal    Role = "normal"
	RoleKeyholder Role = "keyholder"
	RoleManager   Role = "manager"
)

// ContractCycle distinguishes ordinary workers, whose L/LQ assignment is
// a decision the solver makes, from "Completo" workers whose schedule
// is fixed upstream and only contributes to counts and coverage (§4.1
// step 3, GLOSSARY "Complete cycle worker").
type ContractCycle string

const (
	CycleOrdinary ContractCycle = "ordinary"
	CycleComplete ContractCycle = "Completo"
)

// Worker is the normalized, strongly-typed record for one employee
// (§3 "Worker"). It is built once by the normalizer and is immutable
// for the rest of the solve.
type Worker struct {
	ID int

	// ContractType is 4, 5, 6 or 8 (per-week override, see
	// WorkDaysPerWeek).
	ContractType int
	Role         Role
	Cycle        ContractCycle

	// Quotas, after proration (§4.1 step 9). All non-negative.
	TotalL    int // total ordinary days off
	TotalLDom int // Sundays/holidays off
	C2D       int // quality weekends
	C3D       int
	LD        int
	LQ        int // derived: TotalL - TotalLDom - C2D - C3D - LD - CXX - VZ - LRes - LRes2
	CXX       int
	VZ        int
	LRes      int
	LRes2     int
	TLQ       int // LQ + C2D + C3D

	// HireDay / TerminationDay are 1-based day-of-year indices within
	// the horizon, or 0 if not applicable.
	HireDay        int
	TerminationDay int

	// FirstRegisteredDay / LastRegisteredDay bound the worker's active
	// window, inclusive.
	FirstRegisteredDay int
	LastRegisteredDay  int

	// WorkDayHours[d] is the contracted work hours on day d. The
	// staffing objective does not read it: it counts assigned workers,
	// not hours.
	WorkDayHours map[int]int

	// WorkDaysPerWeek[week] is the contractually required working days
	// for that ISO week; only consulted when ContractType == 8.
	WorkDaysPerWeek map[int]int

	// Derived per-worker day sets (§3 "Per-worker derived sets"),
	// already reduced to be pairwise disjoint per the §4.1 step 7
	// precedence order.
	FixedDaysOff map[int]bool // pre-assigned to L
	FixedLQs     map[int]bool // pre-assigned to LQ
	MissingDays  map[int]bool // pre-assigned to V
	EmptyDays    map[int]bool // pre-assigned to "-"
	Holiday      map[int]bool // pre-assigned to A (worker_holiday)

	// WorkingDays is the set of days on which the model must choose
	// among the check alphabet {M,T,L,LQ,LD} (§3 "working_days").
	WorkingDays map[int]bool

	// WeekShiftKnown[week][s] is true when the calendar evidence shows
	// the worker is available for shift s that week (§4.1 step 10);
	// used to force shift[w,d,M] <= WeekShiftKnown[week][M].
	WeekShiftKnown map[int]map[Status]bool
}

// IsComplete reports whether the worker belongs to the "Completo"
// contract cycle and is therefore excluded from the solvable set.
func (w *Worker) IsComplete() bool {
	return w.Cycle == CycleComplete
}

// BlockedDays returns the union of all pre-fixed day sets for the
// worker: every day outside this set needs a free decision variable
// per status (§4.2).
func (w *Worker) BlockedDays() map[int]bool {
	blocked := make(map[int]bool, len(w.EmptyDays)+len(w.MissingDays)+len(w.FixedDaysOff)+len(w.FixedLQs)+len(w.Holiday))
	for d := range w.EmptyDays {
		blocked[d] = true
	}
	for d := range w.MissingDays {
		blocked[d] = true
	}
	for d := range w.FixedDaysOff {
		blocked[d] = true
	}
	for d := range w.FixedLQs {
		blocked[d] = true
	}
	for d := range w.Holiday {
		blocked[d] = true
	}
	return blocked
}

// ForcedStatus returns the status a blocked day is pinned to, and
// whether d is blocked at all. ClosedHolidays are resolved by the
// caller (they are store-wide, not per-worker).
func (w *Worker) ForcedStatus(d int) (Status, bool) {
	switch {
	case w.EmptyDays[d]:
		return StatusOutOfRange, true
	case w.MissingDays[d]:
		return StatusVacation, true
	case w.FixedDaysOff[d]:
		return StatusOff, true
	case w.FixedLQs[d]:
		return StatusQualityOff, true
	case w.Holiday[d]:
		return StatusAbsence, true
	default:
		return "", false
	}
}
