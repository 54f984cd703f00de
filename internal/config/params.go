package config

import (
	"time"

	"github.com/salsaesp/shiftsat/internal/model"
)

// Settings is the boolean settings block of §6.3.
type Settings struct {
	FSpecialDay            bool // F_special_day
	FreeSundaysPlusC2D      bool // free_sundays_plus_c2d
	MissingDaysAffectFree   bool // missing_days_afect_free_days
}

// Rounding selects the rounding mode for partial-week free-day quotas
// (§6.3 `admissao_proporcional`, §4.3 C3.9).
type Rounding string

const (
	RoundFloor Rounding = "floor"
	RoundCeil  Rounding = "ceil"
)

// Weights holds every tunable penalty weight of §4.4, expressed as a
// non-negative "importance" value (most defaults sit in 10-70, the
// manager/keyholder terms far above); 0 omits the term entirely. The
// objective builder converts these into scaled integer weights via
// weight[t] = floor(S * importance[t] / worst[t]).
type Weights struct {
	StaffingExcess         int
	StaffingDeficit        int
	StaffingMixPenalty     int // both excess and deficit on the same day
	AnyDeficitPenalty      int
	ZeroCoverage           int
	MinimumShortfall       int
	SundayOffSpread        int
	QualityOffSpread       int
	NonConsecutiveFree     int
	TooManyOffSameDay      int
	SundaySegmentBalance   int
	QualitySegmentBalance  int
	InconsistentWeekShift  int
	NoManagerOrKeyholder   int
	ManagerKeyholderBothOff int
	KeyholderOverlap       int
	ManagerOverlap         int
	SundayFairness         int
	QualityFairness        int
}

// DefaultWeights mirrors the currently-active defaults of §4.4 and §9
// (the commented-out experimental blocks in the source are not
// reproduced; only the active values are).
func DefaultWeights() Weights {
	return Weights{
		StaffingExcess:          40,
		StaffingDeficit:         40,
		StaffingMixPenalty:      10,
		AnyDeficitPenalty:       10,
		ZeroCoverage:            60,
		MinimumShortfall:        60,
		SundayOffSpread:         20,
		QualityOffSpread:        20,
		NonConsecutiveFree:      10,
		TooManyOffSameDay:       15,
		SundaySegmentBalance:    15,
		QualitySegmentBalance:   15,
		InconsistentWeekShift:   10,
		NoManagerOrKeyholder:    70,
		ManagerKeyholderBothOff: 30000,
		KeyholderOverlap:        50000,
		ManagerOverlap:          50000,
		SundayFairness:          25,
		QualityFairness:         25,
	}
}

// Params is the full configuration surface of §6.3.
type Params struct {
	Shifts         model.Alphabet
	CheckShifts    model.Alphabet
	WorkingShifts  model.Alphabet

	MaxContinuousWorkingDays int
	TooManyOffThreshold      int // default 2, §4.4 item 7

	Settings Settings

	AdmissaoProporcional Rounding

	// WeekCompensationLimit[w] is the number of weeks after a worked
	// holiday/Sunday in which an LD may be placed (§6.3, default 2).
	WeekCompensationLimit map[int]int
	DefaultCompensationLimit int

	// HolidayCompensationAmount / SundayCompensationAmount is `amount`
	// / `amount_sun` of §4.3 C3.10 and §9: the LD quota earned per
	// worked holiday / worked Sunday. Both default to 1.
	HolidayCompensationAmount int
	SundayCompensationAmount  int

	Weights Weights

	// Scale is the integer-weight scale constant S of §4.4 (default
	// 10000).
	Scale int

	Solver SolverConfig
}

// SolverConfig is the CP-SAT driver configuration of §4.5 / §6.4.
type SolverConfig struct {
	TimeLimit  time.Duration
	NumWorkers int
	RandomSeed int32
}

// DefaultParams returns the full configuration surface with every
// default of §6.3 and §4.5 applied.
func DefaultParams() Params {
	return Params{
		Shifts:                   model.DefaultShifts,
		CheckShifts:              model.DefaultCheckShifts,
		WorkingShifts:            model.DefaultWorkingShifts,
		MaxContinuousWorkingDays: 6,
		TooManyOffThreshold:      2,
		Settings: Settings{
			FSpecialDay:           true,
			FreeSundaysPlusC2D:    false,
			MissingDaysAffectFree: true,
		},
		AdmissaoProporcional:      RoundFloor,
		WeekCompensationLimit:     map[int]int{},
		DefaultCompensationLimit:  2,
		HolidayCompensationAmount: 1,
		SundayCompensationAmount:  1,
		Weights:                   DefaultWeights(),
		Scale:                     10000,
		Solver: SolverConfig{
			TimeLimit:  120 * time.Second,
			NumWorkers: 1,
			RandomSeed: 1,
		},
	}
}

// CompensationLimit returns the per-worker week compensation limit,
// falling back to DefaultCompensationLimit.
func (p Params) CompensationLimit(workerID int) int {
	if n, ok := p.WeekCompensationLimit[workerID]; ok && n > 0 {
		return n
	}
	return p.DefaultCompensationLimit
}
