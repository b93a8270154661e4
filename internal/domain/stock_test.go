package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestNewStockQuantity_RejectsNegative(t *testing.T) {
	_, err := NewStockQuantity(-1)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestStockQuantity_AddRequiresPositive(t *testing.T) {
	s, err := NewStockQuantity(5)
	require.NoError(t, err)

	var validation *ValidationError
	_, err = s.Add(0)
	require.ErrorAs(t, err, &validation)
	_, err = s.Add(-3)
	require.ErrorAs(t, err, &validation)

	grown, err := s.Add(7)
	require.NoError(t, err)
	require.Equal(t, 12, grown.Value())
	// The original value is untouched
	require.Equal(t, 5, s.Value())
}

func TestStockQuantity_SubtractGuards(t *testing.T) {
	s, err := NewStockQuantity(5)
	require.NoError(t, err)

	var validation *ValidationError
	_, err = s.Subtract(0)
	require.ErrorAs(t, err, &validation)

	var conflict *ConflictError
	_, err = s.Subtract(6)
	require.ErrorAs(t, err, &conflict)

	emptied, err := s.Subtract(5)
	require.NoError(t, err)
	require.True(t, emptied.IsEmpty())
}

func TestStockQuantity_Thresholds(t *testing.T) {
	empty, err := NewStockQuantity(0)
	require.NoError(t, err)
	require.True(t, empty.IsEmpty())
	require.True(t, empty.IsLow())

	low, err := NewStockQuantity(LowStockThreshold - 1)
	require.NoError(t, err)
	require.True(t, low.IsLow())
	require.False(t, low.IsEmpty())

	// The threshold itself is not low
	boundary, err := NewStockQuantity(LowStockThreshold)
	require.NoError(t, err)
	require.False(t, boundary.IsLow())
}

func TestProperty_StockAddSubtractRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding then subtracting the same amount restores the level", prop.ForAll(
		func(initial int, delta int) bool {
			s, err := NewStockQuantity(initial)
			if err != nil {
				return true
			}

			grown, err := s.Add(delta)
			if err != nil {
				return true
			}

			restored, err := grown.Subtract(delta)
			if err != nil {
				t.Logf("FAIL: subtract after add failed: %v", err)
				return false
			}

			return restored.Value() == initial
		},
		gen.IntRange(0, 100_000),
		gen.IntRange(1, 10_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
