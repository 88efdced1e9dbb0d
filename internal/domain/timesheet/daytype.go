package timesheet

// DayType selects the regular/overtime rule branch for a work day. The
// holiday calendar itself lives outside this service; submissions carry an
// explicit flag and tag.
type DayType string

const (
	DayNormal            DayType = "normal"
	DayWeekend           DayType = "weekend"
	DayVietnameseHoliday DayType = "vietnamese_holiday"
	DayJapaneseHoliday   DayType = "japanese_holiday"
)

// ClassifyDayType maps the submission's holiday flag and tag to a DayType.
// An unrecognized tag fails with ErrInvalidDayType; the caller must reject
// the submission before any calculation runs.
func ClassifyDayType(isHoliday bool, holidayType string) (DayType, error) {
	if !isHoliday {
		return DayNormal, nil
	}
	switch DayType(holidayType) {
	case DayWeekend:
		return DayWeekend, nil
	case DayVietnameseHoliday:
		return DayVietnameseHoliday, nil
	case DayJapaneseHoliday:
		return DayJapaneseHoliday, nil
	}
	return "", ErrInvalidDayType
}
