package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHM(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{60, "1:00"},
		{90, "1:30"},
		{150, "2:30"},
		{660, "11:00"},
		{-30, "0:00"}, // clamped, never negative
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatHM(c.minutes))
	}
}

func TestParseHMRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 59, 60, 61, 480, 659, 1439, 2000} {
		parsed, err := ParseHM(FormatHM(minutes))
		require.NoError(t, err)
		assert.Equal(t, minutes, parsed)
	}
}

func TestParseHMRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "abc", "1:-5", "1:75"} {
		_, err := ParseHM(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8.00", FormatHours(480))
	assert.Equal(t, "7.50", FormatHours(450))
	assert.Equal(t, "0.00", FormatHours(0))
	assert.Equal(t, "0.25", FormatHours(15))
	assert.Equal(t, "13.50", FormatHours(810))
}

func TestMinuteOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 7, 30, 45, 0, time.UTC)
	assert.Equal(t, 450, MinuteOfDay(ts)) // seconds are discarded
}
