package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDayType(t *testing.T) {
	cases := []struct {
		name        string
		isHoliday   bool
		holidayType string
		want        DayType
	}{
		{"regular work day", false, "", DayNormal},
		{"tag ignored when not a holiday", false, "weekend", DayNormal},
		{"weekend", true, "weekend", DayWeekend},
		{"vietnamese holiday", true, "vietnamese_holiday", DayVietnameseHoliday},
		{"japanese holiday", true, "japanese_holiday", DayJapaneseHoliday},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClassifyDayType(tc.isHoliday, tc.holidayType)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyDayType_UnknownTag(t *testing.T) {
	for _, tag := range []string{"", "public", "WEEKEND", "tet"} {
		_, err := ClassifyDayType(true, tag)
		assert.ErrorIs(t, err, ErrInvalidDayType, "tag %q", tag)
	}
}

func TestApprovalStatusNext(t *testing.T) {
	next, ok := StatusPending.Next()
	require.True(t, ok)
	assert.Equal(t, StatusPendingManager, next)

	next, ok = StatusPendingManager.Next()
	require.True(t, ok)
	assert.Equal(t, StatusPendingAdmin, next)

	next, ok = StatusPendingAdmin.Next()
	require.True(t, ok)
	assert.Equal(t, StatusApproved, next)

	_, ok = StatusApproved.Next()
	assert.False(t, ok)
	_, ok = StatusRejected.Next()
	assert.False(t, ok)
}

func TestApprovalStatusIsPending(t *testing.T) {
	assert.True(t, StatusPending.IsPending())
	assert.True(t, StatusPendingManager.IsPending())
	assert.True(t, StatusPendingAdmin.IsPending())
	assert.False(t, StatusApproved.IsPending())
	assert.False(t, StatusRejected.IsPending())
}
