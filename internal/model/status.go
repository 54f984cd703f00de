// Package model defines the strongly-typed data model shared by the
// normalizer and the solver engine: the day-status alphabet, the
// per-worker record, the scheduling horizon, and the raw table rows
// read from the calendar/employee/demand collaborator.
package model

// Status is one letter of the day-status alphabet. Exactly one Status
// is assigned to every (worker, day) pair in a finished schedule.
type Status string

const (
	StatusMorning     Status = "M"  // morning shift
	StatusAfternoon   Status = "T"  // afternoon shift
	StatusOff         Status = "L"  // ordinary day off
	StatusQualityOff  Status = "LQ" // quality-weekend Saturday off
	StatusCompOff     Status = "LD" // holiday/Sunday compensation day off
	StatusClosed      Status = "F"  // closed-store day
	StatusAbsence     Status = "A"  // fixed absence
	StatusVacation    Status = "V"  // vacation
	StatusOutOfRange  Status = "-"  // outside the worker's active window
)

// Alphabet is an ordered, deduplicated set of statuses used to bound
// which decision variables a given day may take.
type Alphabet []Status

// Contains reports whether s appears in the alphabet.
func (a Alphabet) Contains(s Status) bool {
	for _, x := range a {
		if x == s {
			return true
		}
	}
	return false
}

// DefaultShifts is the full decision alphabet (§6.3 `shifts`).
var DefaultShifts = Alphabet{StatusMorning, StatusAfternoon, StatusOff, StatusQualityOff, StatusCompOff, StatusClosed, StatusAbsence, StatusVacation, StatusOutOfRange}

// DefaultCheckShifts is the working-day alphabet (§6.3 `check_shifts`):
// the statuses available on a day in a worker's `working_days` set.
var DefaultCheckShifts = Alphabet{StatusMorning, StatusAfternoon, StatusOff, StatusQualityOff, StatusCompOff}

// DefaultWorkingShifts is the productive alphabet used by coverage
// objective terms (§6.3 `working_shifts`).
var DefaultWorkingShifts = Alphabet{StatusMorning, StatusAfternoon, StatusCompOff}

// IsWorkShift reports whether s is a productive shift (M or T). Several
// hard constraints (weekly cap, consecutive-day cap, coverage) are
// phrased directly in terms of this pair.
func IsWorkShift(s Status) bool {
	return s == StatusMorning || s == StatusAfternoon
}

// IsFree reports whether s counts as a free day for the purposes of
// C3.6 (bounded consecutive free days): L, F, LQ or LD.
func IsFree(s Status) bool {
	switch s {
	case StatusOff, StatusClosed, StatusQualityOff, StatusCompOff:
		return true
	default:
		return false
	}
}
