package worktime

import (
	"github.com/hanoisoft/timesheet-backend-go/internal/domain/timesheet"
)

const (
	// cutoffMinute is the fixed 22:00 instant partitioning overtime into
	// the before/after buckets.
	cutoffMinute = 22 * minutesPerHour

	// regularCapMinutes caps regular time at 8 hours per day.
	regularCapMinutes = 8 * minutesPerHour

	// maternityBonusMinutes is the fixed credit added to regular time for
	// maternity-flex employees on a catalog shift.
	maternityBonusMinutes = 60

	// eveningRestMinutes is the rest taken before overtime starts on a
	// normal day; it is not paid and comes off the before-cutoff bucket.
	eveningRestMinutes = 30
)

// Input carries everything the calculator needs for one submission. Clock
// values are minutes since midnight; a check-out smaller than the check-in
// means the attendance crossed midnight. Only time-of-day enters the
// comparison, never elapsed duration.
type Input struct {
	DayType       timesheet.DayType
	CheckIn       int
	CheckOut      int
	BreakMinutes  int
	Shift         *ShiftWindow // nil means no standard shift
	ShiftCode     string
	MaternityFlex bool
	CompTime      timesheet.CompTimeLedger
}

// Result holds the computed buckets in whole minutes. Formatting methods
// exist for the persistence/rendering boundary; nothing internal should
// read them.
type Result struct {
	TotalMinutes          int
	RegularMinutes        int
	OvertimeBeforeMinutes int
	OvertimeAfterMinutes  int
}

// TotalHours renders total work time as decimal hours, e.g. "8.00".
func (r Result) TotalHours() string { return FormatHours(r.TotalMinutes) }

// RegularHours renders regular work time as decimal hours.
func (r Result) RegularHours() string { return FormatHours(r.RegularMinutes) }

// OvertimeBeforeHM renders the before-cutoff bucket as "H:MM".
func (r Result) OvertimeBeforeHM() string { return FormatHM(r.OvertimeBeforeMinutes) }

// OvertimeAfterHM renders the after-cutoff bucket as "H:MM".
func (r Result) OvertimeAfterHM() string { return FormatHM(r.OvertimeAfterMinutes) }

// Calculator computes per-day work hours. It is a pure function of its
// input: no shared state, safe to run concurrently across submissions.
type Calculator struct {
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate splits one attendance into total, regular, and the two overtime
// buckets.
func (c *Calculator) Calculate(in Input) Result {
	ci := in.CheckIn
	co := in.CheckOut
	if co < ci {
		co += minutesPerDay // crossed midnight
	}

	total := clamp0(co - ci - in.BreakMinutes)

	var regular, beforeRaw, afterRaw int
	legacyApplied := false

	switch in.DayType {
	case timesheet.DayVietnameseHoliday:
		// A fixed 8-hour credit regardless of actual duration; everything
		// worked still counts toward overtime from the clock boundaries.
		regular = regularCapMinutes
		beforeRaw, afterRaw = c.clockOvertime(in, ci, co, total)

	case timesheet.DayWeekend:
		regular = 0
		beforeRaw, afterRaw = c.clockOvertime(in, ci, co, total)

	case timesheet.DayJapaneseHoliday:
		// Regular time is measured from check-in forward, not against a
		// shift window, and the ledger's regular and legacy buckets both
		// reduce it here.
		capped := total
		if capped > regularCapMinutes {
			capped = regularCapMinutes
		}
		regular = clamp0(capped - in.CompTime.RegularMinutes - in.CompTime.LegacyOvertimeMinutes)
		legacyApplied = true

		// The aggregate overtime figure is allocated preferentially to the
		// after-cutoff bucket, remainder to before. Reordering this changes
		// pay outcomes, so it stays exactly as is.
		aggregate := clamp0(total - regularCapMinutes)
		afterRaw = clamp0(co - cutoffMinute)
		if afterRaw > aggregate {
			afterRaw = aggregate
		}
		beforeRaw = aggregate - afterRaw

	default: // normal
		regular, beforeRaw, afterRaw = c.normalDay(in, ci, co, total)
	}

	before := clamp0(beforeRaw - in.CompTime.OvertimeBeforeMinutes)
	after := clamp0(afterRaw - in.CompTime.OvertimeAfterMinutes)

	if !legacyApplied {
		// The legacy combined bucket is charged against before first,
		// overflow against after.
		use := in.CompTime.LegacyOvertimeMinutes
		if use > before {
			use = before
		}
		before -= use
		after = clamp0(after - (in.CompTime.LegacyOvertimeMinutes - use))
	}

	return Result{
		TotalMinutes:          total,
		RegularMinutes:        regular,
		OvertimeBeforeMinutes: before,
		OvertimeAfterMinutes:  after,
	}
}

// normalDay computes the regular/overtime split for a plain working day.
func (c *Calculator) normalDay(in Input, ci, co, total int) (regular, beforeRaw, afterRaw int) {
	afterRaw = clamp0(co - cutoffMinute)

	if in.Shift == nil {
		// No standard shift: regular time counts from check-in forward.
		regular = clamp0(total - in.CompTime.RegularMinutes)
		if regular > regularCapMinutes {
			regular = regularCapMinutes
		}
		beforeRaw = clamp0(total - regular - afterRaw)
		return regular, beforeRaw, afterRaw
	}

	ss := in.Shift.Start
	se := in.Shift.End
	if se < ss {
		se += minutesPerDay // shift crosses midnight
	}

	overlapStart := ci
	if ss > overlapStart {
		overlapStart = ss
	}
	overlapEnd := co
	if se < overlapEnd {
		overlapEnd = se
	}
	inShift := clamp0(overlapEnd - overlapStart)

	regular = clamp0(inShift - in.BreakMinutes - in.CompTime.RegularMinutes)

	bonusOverflow := 0
	if in.MaternityFlex && KnownShiftCode(in.ShiftCode) {
		regular += maternityBonusMinutes
		bonusOverflow = clamp0(regular - regularCapMinutes)
	}
	if regular > regularCapMinutes {
		regular = regularCapMinutes
	}

	// Evening overtime runs from the shift's nominal end to the cutoff.
	// The free all-hours shift also counts time worked before the nominal
	// start.
	otStart := se
	if ci > otStart {
		otStart = ci
	}
	otEnd := co
	if otEnd > cutoffMinute {
		otEnd = cutoffMinute
	}
	beforeRaw = clamp0(otEnd - otStart)
	if in.ShiftCode == FreeShiftCode {
		preEnd := ss
		if co < preEnd {
			preEnd = co
		}
		beforeRaw += clamp0(preEnd - ci)
	}
	if beforeRaw > 0 {
		beforeRaw = clamp0(beforeRaw - eveningRestMinutes)
	}

	// Regular time pushed past the cap by the maternity bonus is paid as
	// before-cutoff overtime instead.
	beforeRaw += bonusOverflow

	return regular, beforeRaw, afterRaw
}

// clockOvertime measures the weekend/holiday buckets directly from the
// clock boundaries: everything at or after the cutoff lands in after, even
// past midnight; the rest of the worked time lands in before.
func (c *Calculator) clockOvertime(in Input, ci, co, total int) (beforeRaw, afterRaw int) {
	afterStart := ci
	if afterStart < cutoffMinute {
		afterStart = cutoffMinute
	}
	afterRaw = clamp0(co - afterStart)

	if in.Shift != nil {
		se := in.Shift.End
		if se < in.Shift.Start {
			se += minutesPerDay
		}
		otStart := se
		if ci > otStart {
			otStart = ci
		}
		otEnd := co
		if otEnd > cutoffMinute {
			otEnd = cutoffMinute
		}
		beforeRaw = clamp0(otEnd - otStart)
		return beforeRaw, afterRaw
	}

	// Without a shift window the break is charged against the before
	// bucket as well; the full day is overtime and the rest period is not
	// paid.
	beforeRaw = clamp0(total - afterRaw - in.BreakMinutes)
	return beforeRaw, afterRaw
}
