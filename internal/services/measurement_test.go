package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
)

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantOK  bool
	}{
		{"12分30秒", 750, true},
		{"0分45秒", 45, true},
		{"45秒", 45, true},
		{"3分0秒", 180, true},
		{"", 0, false},
		{"12:30", 0, false},
		{"12分", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseDurationSeconds(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseDistanceMeters(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"5.2km", 5200, true},
		{"10km", 10000, true},
		{"800m", 800, true},
		{"800", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseDistanceMeters(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseMeasurement(t *testing.T) {
	t.Run("nil perf", func(t *testing.T) {
		_, ok := ParseMeasurement(nil)
		assert.False(t, ok)
	})

	t.Run("duration takes priority", func(t *testing.T) {
		m, ok := ParseMeasurement(&model.PerformanceData{Duration: "1分30秒", Reps: 20})
		require.True(t, ok)
		assert.Equal(t, MeasurementDuration, m.Kind)
		assert.Equal(t, float64(90), m.Value)
		assert.Equal(t, "1分30秒", m.Raw)
	})

	t.Run("reps", func(t *testing.T) {
		m, ok := ParseMeasurement(&model.PerformanceData{Reps: 25})
		require.True(t, ok)
		assert.Equal(t, MeasurementReps, m.Kind)
		assert.Equal(t, float64(25), m.Value)
		assert.Equal(t, "25回", m.Raw)
	})

	t.Run("distance", func(t *testing.T) {
		m, ok := ParseMeasurement(&model.PerformanceData{Distance: "5.2km"})
		require.True(t, ok)
		assert.Equal(t, MeasurementDistance, m.Kind)
		assert.Equal(t, float64(5200), m.Value)
	})

	t.Run("unparseable duration falls through to reps", func(t *testing.T) {
		m, ok := ParseMeasurement(&model.PerformanceData{Duration: "fast", Reps: 10})
		require.True(t, ok)
		assert.Equal(t, MeasurementReps, m.Kind)
	})
}

func TestCompareMeasurements(t *testing.T) {
	t.Run("duration decrease is an improvement", func(t *testing.T) {
		first := Measurement{Kind: MeasurementDuration, Value: 100, Raw: "1分40秒"}
		last := Measurement{Kind: MeasurementDuration, Value: 80, Raw: "1分20秒"}

		imp, ok := CompareMeasurements(first, last)
		require.True(t, ok)
		assert.Equal(t, 20.0, imp.Percentage)
		assert.Equal(t, "1分40秒", imp.Before)
		assert.Equal(t, "1分20秒", imp.After)
	})

	t.Run("reps increase is an improvement", func(t *testing.T) {
		first := Measurement{Kind: MeasurementReps, Value: 20, Raw: "20回"}
		last := Measurement{Kind: MeasurementReps, Value: 27, Raw: "27回"}

		imp, ok := CompareMeasurements(first, last)
		require.True(t, ok)
		assert.Equal(t, 35.0, imp.Percentage)
	})

	t.Run("regression is negative", func(t *testing.T) {
		first := Measurement{Kind: MeasurementDistance, Value: 5000, Raw: "5km"}
		last := Measurement{Kind: MeasurementDistance, Value: 4000, Raw: "4km"}

		imp, ok := CompareMeasurements(first, last)
		require.True(t, ok)
		assert.Equal(t, -20.0, imp.Percentage)
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		first := Measurement{Kind: MeasurementReps, Value: 3, Raw: "3回"}
		last := Measurement{Kind: MeasurementReps, Value: 4, Raw: "4回"}

		imp, ok := CompareMeasurements(first, last)
		require.True(t, ok)
		assert.Equal(t, 33.3, imp.Percentage)
	})

	t.Run("mismatched kinds are not comparable", func(t *testing.T) {
		first := Measurement{Kind: MeasurementDuration, Value: 100}
		last := Measurement{Kind: MeasurementReps, Value: 20}

		_, ok := CompareMeasurements(first, last)
		assert.False(t, ok)
	})

	t.Run("zero baseline is not comparable", func(t *testing.T) {
		first := Measurement{Kind: MeasurementReps, Value: 0}
		last := Measurement{Kind: MeasurementReps, Value: 20}

		_, ok := CompareMeasurements(first, last)
		assert.False(t, ok)
	})
}
