package worktime

// ShiftWindow is a shift's wall-clock window in minutes since midnight. End
// may precede Start, meaning the shift crosses midnight.
type ShiftWindow struct {
	Start int
	End   int
}

// FreeShiftCode marks the unstructured all-hours shift used for holiday
// work: the window spans the whole day and time worked before the nominal
// start still counts toward overtime.
const FreeShiftCode = "4"

// shiftCatalog is the static shift table. Loaded once, never mutated.
var shiftCatalog = map[string]ShiftWindow{
	"1":           {Start: 7*60 + 30, End: 16*60 + 30}, // 07:30-16:30
	"2":           {Start: 8*60 + 30, End: 17*60 + 30}, // 08:30-17:30
	"3":           {Start: 9*60 + 30, End: 18*60 + 30}, // 09:30-18:30
	FreeShiftCode: {Start: 0, End: 23*60 + 59},         // any hours
}

// KnownShiftCode reports whether code exists in the catalog.
func KnownShiftCode(code string) bool {
	_, ok := shiftCatalog[code]
	return ok
}

// ResolveShift produces the concrete window for a submission. Catalog
// entries supply defaults only where no explicit value was given; explicit
// start/end always win. An unknown code without a full override resolves to
// no standard shift (nil), and the calculation falls back to clock-only
// mode.
func ResolveShift(code string, explicitStart, explicitEnd *int) *ShiftWindow {
	window, known := shiftCatalog[code]

	if !known {
		if explicitStart == nil || explicitEnd == nil {
			return nil
		}
		return &ShiftWindow{Start: *explicitStart, End: *explicitEnd}
	}

	if explicitStart != nil {
		window.Start = *explicitStart
	}
	if explicitEnd != nil {
		window.End = *explicitEnd
	}
	return &window
}
