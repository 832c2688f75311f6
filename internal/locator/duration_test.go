package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/semcheck/internal/ast"
)

func TestConvertDurationEmpty(t *testing.T) {
	_, err := ConvertDuration(nil)
	assert.Error(t, err)
}

func TestConvertDurationMixedSign(t *testing.T) {
	_, err := ConvertDuration([]ast.DurationValue{
		{Magnitude: 1, Unit: "y"},
		{Magnitude: -1, Unit: "mo"},
	})
	assert.Error(t, err)
}

func TestConvertDurationUnknownUnit(t *testing.T) {
	_, err := ConvertDuration([]ast.DurationValue{{Magnitude: 1, Unit: "fortnight"}})
	assert.Error(t, err)
}

// S6 from the testable-properties scenario set.
func TestConvertDurationScenarioS6(t *testing.T) {
	got, err := ConvertDuration([]ast.DurationValue{
		{Magnitude: 1, Unit: "y"},
		{Magnitude: 2, Unit: "mo"},
		{Magnitude: 3, Unit: "w"},
		{Magnitude: 4, Unit: "m"},
		{Magnitude: 5, Unit: "ns"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(14), got.Months)
	assert.Equal(t, 3*weeks+4*minutes+5*nanos, got.Nanoseconds)
	assert.False(t, got.Negative)
}

func TestConvertDurationSameUnitTwice(t *testing.T) {
	got, err := ConvertDuration([]ast.DurationValue{
		{Magnitude: 1, Unit: "y"},
		{Magnitude: 2, Unit: "mo"},
		{Magnitude: 3, Unit: "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Nanoseconds)
	assert.Equal(t, 4*years+2*months, got.Months)
	assert.False(t, got.Negative)
}

func TestConvertDurationNegative(t *testing.T) {
	got, err := ConvertDuration([]ast.DurationValue{{Magnitude: -1, Unit: "h"}})
	require.NoError(t, err)
	assert.True(t, got.Negative)
	assert.Equal(t, hours, got.Nanoseconds)
}
