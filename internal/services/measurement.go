package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
)

// MeasurementKind distingue les types de mesures comparables
type MeasurementKind int

const (
	MeasurementDuration MeasurementKind = iota
	MeasurementReps
	MeasurementDistance
)

// Measurement est une mesure de performance normalisée.
// Duration est en secondes, Distance en mètres, Reps en répétitions.
type Measurement struct {
	Kind  MeasurementKind
	Value float64
	Raw   string
}

var (
	durationMinSecRe = regexp.MustCompile(`^(\d+)分(\d+)秒$`)
	durationSecRe    = regexp.MustCompile(`^(\d+)秒$`)
	distanceKmRe     = regexp.MustCompile(`^(\d+(?:\.\d+)?)km$`)
	distanceMRe      = regexp.MustCompile(`^(\d+(?:\.\d+)?)m$`)
)

// ParseDurationSeconds analyse une durée de la forme "X分Y秒" ou "Y秒"
func ParseDurationSeconds(s string) (int, bool) {
	if m := durationMinSecRe.FindStringSubmatch(s); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		return minutes*60 + seconds, true
	}
	if m := durationSecRe.FindStringSubmatch(s); m != nil {
		seconds, _ := strconv.Atoi(m[1])
		return seconds, true
	}
	return 0, false
}

// ParseDistanceMeters analyse une distance de la forme "5.2km" ou "800m"
func ParseDistanceMeters(s string) (float64, bool) {
	if m := distanceKmRe.FindStringSubmatch(s); m != nil {
		km, _ := strconv.ParseFloat(m[1], 64)
		return km * 1000, true
	}
	if m := distanceMRe.FindStringSubmatch(s); m != nil {
		meters, _ := strconv.ParseFloat(m[1], 64)
		return meters, true
	}
	return 0, false
}

// ParseMeasurement extrait la mesure dominante d'un PerformanceData.
// Priorité: durée, puis répétitions, puis distance.
func ParseMeasurement(perf *model.PerformanceData) (Measurement, bool) {
	if perf == nil {
		return Measurement{}, false
	}

	if perf.Duration != "" {
		if seconds, ok := ParseDurationSeconds(perf.Duration); ok {
			return Measurement{Kind: MeasurementDuration, Value: float64(seconds), Raw: perf.Duration}, true
		}
	}

	if perf.Reps > 0 {
		return Measurement{Kind: MeasurementReps, Value: float64(perf.Reps), Raw: fmt.Sprintf("%d回", perf.Reps)}, true
	}

	if perf.Distance != "" {
		if meters, ok := ParseDistanceMeters(perf.Distance); ok {
			return Measurement{Kind: MeasurementDistance, Value: meters, Raw: perf.Distance}, true
		}
	}

	return Measurement{}, false
}

// CompareMeasurements calcule le pourcentage d'amélioration entre la première
// et la dernière mesure. Pour une durée, une baisse est une amélioration;
// pour des répétitions ou une distance, une hausse l'est.
// Les mesures de types différents ne sont pas comparables.
func CompareMeasurements(first, last Measurement) (*model.Improvement, bool) {
	if first.Kind != last.Kind || first.Value <= 0 {
		return nil, false
	}

	var pct float64
	switch first.Kind {
	case MeasurementDuration:
		pct = (first.Value - last.Value) / first.Value * 100
	default:
		pct = (last.Value - first.Value) / first.Value * 100
	}

	// Arrondi à une décimale
	pct = math.Round(pct*10) / 10

	return &model.Improvement{
		Before:     first.Raw,
		After:      last.Raw,
		Percentage: pct,
	}, true
}
