package worktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestResolveShiftCatalogDefaults(t *testing.T) {
	window := ResolveShift("1", nil, nil)
	require.NotNil(t, window)
	assert.Equal(t, 7*60+30, window.Start)
	assert.Equal(t, 16*60+30, window.End)
}

func TestResolveShiftExplicitValuesWin(t *testing.T) {
	window := ResolveShift("1", intPtr(8*60), nil)
	require.NotNil(t, window)
	assert.Equal(t, 8*60, window.Start)
	assert.Equal(t, 16*60+30, window.End, "end still comes from the catalog")

	window = ResolveShift("1", intPtr(8*60), intPtr(17*60))
	require.NotNil(t, window)
	assert.Equal(t, 8*60, window.Start)
	assert.Equal(t, 17*60, window.End)
}

func TestResolveShiftUnknownCode(t *testing.T) {
	assert.Nil(t, ResolveShift("99", nil, nil))
	assert.Nil(t, ResolveShift("99", intPtr(8*60), nil), "a partial override is not a window")

	window := ResolveShift("99", intPtr(8*60), intPtr(17*60))
	require.NotNil(t, window)
	assert.Equal(t, 8*60, window.Start)
	assert.Equal(t, 17*60, window.End)
}

func TestFreeShiftSpansWholeDay(t *testing.T) {
	window := ResolveShift(FreeShiftCode, nil, nil)
	require.NotNil(t, window)
	assert.Equal(t, 0, window.Start)
	assert.Equal(t, 23*60+59, window.End)
	assert.True(t, KnownShiftCode(FreeShiftCode))
	assert.False(t, KnownShiftCode("nope"))
}
