package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
)

func day(status string) model.DailyProgress {
	return model.DailyProgress{Status: status}
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 70, CompletionRate(7, 10))
	assert.Equal(t, 0, CompletionRate(0, 30))
	assert.Equal(t, 100, CompletionRate(30, 30))
	assert.Equal(t, 33, CompletionRate(1, 3))
	assert.Equal(t, 67, CompletionRate(2, 3))

	// Durée nulle ou invalide
	assert.Equal(t, 0, CompletionRate(5, 0))
	assert.Equal(t, 0, CompletionRate(5, -1))
}

func TestCrossedThreshold(t *testing.T) {
	// Franchissement
	assert.True(t, CrossedThreshold(89, 90, 90))
	assert.True(t, CrossedThreshold(0, 100, 90))

	// Déjà au-dessus: pas de refranchissement
	assert.False(t, CrossedThreshold(90, 93, 90))
	assert.False(t, CrossedThreshold(95, 100, 90))

	// Toujours en dessous
	assert.False(t, CrossedThreshold(50, 89, 90))
}

func TestComputeStreaks(t *testing.T) {
	c := model.DayCompleted
	p := model.DayPending

	tests := []struct {
		name        string
		statuses    []string
		wantLongest int
		wantFinal   int
	}{
		{"empty", nil, 0, 0},
		{"all pending", []string{p, p, p}, 0, 0},
		{"all completed", []string{c, c, c}, 3, 3},
		{"gap resets streak", []string{c, c, p, c, c, c}, 3, 3},
		{"final shorter than longest", []string{c, c, c, p, c}, 3, 1},
		{"ends pending", []string{c, c, p}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var days []model.DailyProgress
			for _, s := range tt.statuses {
				days = append(days, day(s))
			}

			longest, final := ComputeStreaks(days)
			assert.Equal(t, tt.wantLongest, longest)
			assert.Equal(t, tt.wantFinal, final)
		})
	}
}

func TestBuildDailySchedule(t *testing.T) {
	start := time.Date(2025, 6, 1, 15, 42, 0, 0, time.UTC)

	days := BuildDailySchedule("user-1", "challenge-1", 30, start)
	require.Len(t, days, 30)

	// Premier jour: jour 1 daté du jour d'inscription, heure tronquée
	assert.Equal(t, 1, days[0].DayNumber)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), days[0].TargetDate)

	// Dernier jour: jour 30 daté 29 jours plus tard
	assert.Equal(t, 30, days[29].DayNumber)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), days[29].TargetDate)

	for i, d := range days {
		assert.Equal(t, "user-1", d.UserID)
		assert.Equal(t, "challenge-1", d.ChallengeID)
		assert.Equal(t, i+1, d.DayNumber)
		assert.Equal(t, model.DayPending, d.Status)
	}
}

func TestBuildDailySchedule_CrossesMonthBoundary(t *testing.T) {
	start := time.Date(2025, 1, 30, 8, 0, 0, 0, time.UTC)

	days := BuildDailySchedule("u", "c", 5, start)
	require.Len(t, days, 5)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), days[4].TargetDate)
}

func TestBuildBadgeStats(t *testing.T) {
	completedWith := func(perf *model.PerformanceData) model.DailyProgress {
		return model.DailyProgress{Status: model.DayCompleted, PerformanceData: perf}
	}

	t.Run("basic totals and streaks", func(t *testing.T) {
		days := []model.DailyProgress{
			day(model.DayCompleted),
			day(model.DayCompleted),
			day(model.DayPending),
			day(model.DayCompleted),
		}

		stats := BuildBadgeStats(days)
		assert.Equal(t, 4, stats.ChallengeDuration)
		assert.Equal(t, 3, stats.CompletedDays)
		assert.Equal(t, 75, stats.CompletionRate)
		assert.Equal(t, 2, stats.LongestStreak)
		assert.Equal(t, 1, stats.FinalStreak)
		assert.Nil(t, stats.Improvement)
	})

	t.Run("improvement from first and last measured day", func(t *testing.T) {
		days := []model.DailyProgress{
			completedWith(&model.PerformanceData{Duration: "2分0秒"}),
			completedWith(nil),
			completedWith(&model.PerformanceData{Duration: "1分30秒"}),
		}

		stats := BuildBadgeStats(days)
		require.NotNil(t, stats.Improvement)
		assert.Equal(t, "2分0秒", stats.Improvement.Before)
		assert.Equal(t, "1分30秒", stats.Improvement.After)
		assert.Equal(t, 25.0, stats.Improvement.Percentage)
	})

	t.Run("single measurement yields no improvement", func(t *testing.T) {
		days := []model.DailyProgress{
			completedWith(&model.PerformanceData{Reps: 20}),
			completedWith(nil),
		}

		stats := BuildBadgeStats(days)
		assert.Nil(t, stats.Improvement)
	})

	t.Run("pending days do not contribute measurements", func(t *testing.T) {
		days := []model.DailyProgress{
			completedWith(&model.PerformanceData{Reps: 10}),
			{Status: model.DayPending, PerformanceData: &model.PerformanceData{Reps: 99}},
			completedWith(&model.PerformanceData{Reps: 20}),
		}

		stats := BuildBadgeStats(days)
		require.NotNil(t, stats.Improvement)
		assert.Equal(t, 100.0, stats.Improvement.Percentage)
	})
}
