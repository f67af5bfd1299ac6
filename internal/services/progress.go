package services

import (
	"math"
	"time"

	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
)

// CompletionRate calcule le taux de complétion arrondi (0-100)
func CompletionRate(completedDays, totalDays int) int {
	if totalDays <= 0 {
		return 0
	}
	return int(math.Round(float64(completedDays) / float64(totalDays) * 100))
}

// CrossedThreshold indique si le taux vient de franchir le seuil requis.
// Un taux déjà au-dessus du seuil ne le refranchit pas.
func CrossedThreshold(previousRate, newRate, requiredRate int) bool {
	return previousRate < requiredRate && newRate >= requiredRate
}

// ComputeStreaks calcule la plus longue série de jours complétés et la série
// finale (jours complétés consécutifs en fin de challenge) en un seul parcours
func ComputeStreaks(days []model.DailyProgress) (longest, final int) {
	current := 0
	for _, day := range days {
		if day.Status == model.DayCompleted {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}

	// Série finale: jours complétés en partant de la fin
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].Status != model.DayCompleted {
			break
		}
		final++
	}

	return longest, final
}

// BuildDailySchedule génère le calendrier complet d'une participation:
// un jour par ligne, daté séquentiellement à partir de la date d'inscription
func BuildDailySchedule(userID, challengeID string, duration int, start time.Time) []model.DailyProgress {
	startDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	days := make([]model.DailyProgress, 0, duration)
	for i := 0; i < duration; i++ {
		days = append(days, model.DailyProgress{
			UserID:      userID,
			ChallengeID: challengeID,
			DayNumber:   i + 1,
			TargetDate:  startDate.AddDate(0, 0, i),
			Status:      model.DayPending,
		})
	}

	return days
}

// BuildBadgeStats dérive les statistiques d'accomplissement d'une liste ordonnée
// de jours. L'amélioration n'est calculée que si au moins deux jours complétés
// portent des mesures comparables (première vs dernière).
func BuildBadgeStats(days []model.DailyProgress) *model.BadgeStats {
	completed := 0
	for _, day := range days {
		if day.Status == model.DayCompleted {
			completed++
		}
	}

	longest, final := ComputeStreaks(days)

	stats := &model.BadgeStats{
		ChallengeDuration: len(days),
		CompletedDays:     completed,
		CompletionRate:    CompletionRate(completed, len(days)),
		LongestStreak:     longest,
		FinalStreak:       final,
	}

	// Première et dernière mesure exploitables parmi les jours complétés
	var first, last Measurement
	measured := 0
	for _, day := range days {
		if day.Status != model.DayCompleted {
			continue
		}
		if m, ok := ParseMeasurement(day.PerformanceData); ok {
			if measured == 0 {
				first = m
			}
			last = m
			measured++
		}
	}

	if measured >= 2 {
		if improvement, ok := CompareMeasurements(first, last); ok {
			stats.Improvement = improvement
		}
	}

	return stats
}
