package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/s-soya2421/muscle-pal-sub000/internal/logger"
	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
	"github.com/s-soya2421/muscle-pal-sub000/internal/scanner"
)

// ChallengeService orchestre le cycle de vie des participations aux challenges
type ChallengeService struct {
	db     *pgxpool.Pool
	badges *BadgeService
}

func NewChallengeService(db *pgxpool.Pool, badges *BadgeService) *ChallengeService {
	return &ChallengeService{db: db, badges: badges}
}

// JoinChallenge inscrit un utilisateur à un challenge: création de la
// participation et des `duration` lignes quotidiennes datées séquentiellement
// à partir d'aujourd'hui, puis rafraîchissement des agrégats du challenge.
// Le tout dans une seule transaction. Une double inscription est un no-op
// (retourne false, pas une erreur).
func (s *ChallengeService) JoinChallenge(ctx context.Context, userID, challengeID string) bool {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM challenge_participations
			WHERE user_id = $1 AND challenge_id = $2
		)
	`, userID, challengeID).Scan(&exists)

	if err != nil {
		logger.Error("JoinChallenge: could not check participation: %v", err)
		return false
	}

	if exists {
		logger.Info("JoinChallenge: user %s already joined challenge %s", userID, challengeID)
		return false
	}

	// Charger le modèle du challenge
	var duration int
	err = s.db.QueryRow(ctx, `
		SELECT duration FROM challenges WHERE id = $1 AND deleted_at IS NULL
	`, challengeID).Scan(&duration)

	if err != nil {
		logger.Error("JoinChallenge: challenge not found: %v", err)
		return false
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		logger.Error("JoinChallenge: could not begin transaction: %v", err)
		return false
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO challenge_participations(
			user_id, challenge_id, status, current_day, completion_rate,
			started_at, created_at, updated_at
		) VALUES($1, $2, 'active', 0, 0, NOW(), NOW(), NOW())
	`, userID, challengeID)

	if err != nil {
		logger.Error("JoinChallenge: could not insert participation: %v", err)
		return false
	}

	// Génération du calendrier complet du challenge
	for _, day := range BuildDailySchedule(userID, challengeID, duration, time.Now()) {
		_, err = tx.Exec(ctx, `
			INSERT INTO daily_progress(
				user_id, challenge_id, day_number, target_date, status, created_at, updated_at
			) VALUES($1, $2, $3, $4, 'pending', NOW(), NOW())
		`, day.UserID, day.ChallengeID, day.DayNumber, day.TargetDate)

		if err != nil {
			logger.Error("JoinChallenge: could not insert daily progress: %v", err)
			return false
		}
	}

	if err := refreshChallengeAggregates(ctx, tx, challengeID); err != nil {
		logger.Error("JoinChallenge: could not refresh aggregates: %v", err)
		return false
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("JoinChallenge: could not commit: %v", err)
		return false
	}

	logger.Success("User %s joined challenge %s (%d days)", userID, challengeID, duration)
	return true
}

// LeaveChallenge supprime la participation et toutes ses lignes quotidiennes,
// puis rafraîchit les agrégats du challenge, dans une seule transaction
func (s *ChallengeService) LeaveChallenge(ctx context.Context, userID, challengeID string) bool {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		logger.Error("LeaveChallenge: could not begin transaction: %v", err)
		return false
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM daily_progress WHERE user_id = $1 AND challenge_id = $2
	`, userID, challengeID)

	if err != nil {
		logger.Error("LeaveChallenge: could not delete daily progress: %v", err)
		return false
	}

	res, err := tx.Exec(ctx, `
		DELETE FROM challenge_participations WHERE user_id = $1 AND challenge_id = $2
	`, userID, challengeID)

	if err != nil {
		logger.Error("LeaveChallenge: could not delete participation: %v", err)
		return false
	}

	if res.RowsAffected() == 0 {
		logger.Warning("LeaveChallenge: no participation found (user=%s challenge=%s)", userID, challengeID)
		return false
	}

	if err := refreshChallengeAggregates(ctx, tx, challengeID); err != nil {
		logger.Error("LeaveChallenge: could not refresh aggregates: %v", err)
		return false
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("LeaveChallenge: could not commit: %v", err)
		return false
	}

	return true
}

// PauseChallenge met une participation active en pause
func (s *ChallengeService) PauseChallenge(ctx context.Context, userID, challengeID string) bool {
	res, err := s.db.Exec(ctx, `
		UPDATE challenge_participations
		SET status = 'paused', paused_at = NOW(), updated_at = NOW()
		WHERE user_id = $1 AND challenge_id = $2 AND status = 'active'
	`, userID, challengeID)

	if err != nil {
		logger.Error("PauseChallenge: %v", err)
		return false
	}

	return res.RowsAffected() > 0
}

// ResumeChallenge réactive une participation en pause
func (s *ChallengeService) ResumeChallenge(ctx context.Context, userID, challengeID string) bool {
	res, err := s.db.Exec(ctx, `
		UPDATE challenge_participations
		SET status = 'active', resumed_at = NOW(), updated_at = NOW()
		WHERE user_id = $1 AND challenge_id = $2 AND status = 'paused'
	`, userID, challengeID)

	if err != nil {
		logger.Error("ResumeChallenge: %v", err)
		return false
	}

	return res.RowsAffected() > 0
}

// PerformCheckIn délègue le check-in au BadgeService puis rafraîchit
// l'agrégat `progress` du challenge (les taux de complétion ont changé)
func (s *ChallengeService) PerformCheckIn(ctx context.Context, userID, challengeID string, dayNumber int, perf *model.PerformanceData, notes string) bool {
	if !s.badges.DailyCheckIn(ctx, userID, challengeID, dayNumber, perf, notes) {
		return false
	}

	if err := refreshChallengeAggregates(ctx, s.db, challengeID); err != nil {
		// Le check-in a réussi; l'agrégat sera rattrapé au prochain join/leave
		logger.Warning("PerformCheckIn: could not refresh aggregates: %v", err)
	}

	return true
}

// refreshChallengeAggregates recalcule les deux agrégats dénormalisés du
// challenge: nombre de participants et taux de complétion moyen
func refreshChallengeAggregates(ctx context.Context, q querier, challengeID string) error {
	_, err := q.Exec(ctx, `
		UPDATE challenges
		SET participants = (
				SELECT COUNT(*) FROM challenge_participations WHERE challenge_id = $1
			),
			progress = COALESCE((
				SELECT ROUND(AVG(completion_rate)) FROM challenge_participations WHERE challenge_id = $1
			), 0),
			updated_at = NOW()
		WHERE id = $1
	`, challengeID)

	return err
}

// GetUserActiveChallenges récupère les challenges actifs d'un utilisateur
func (s *ChallengeService) GetUserActiveChallenges(ctx context.Context, userID string) ([]model.Challenge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT
			c.id, c.title, c.description, c.category, c.difficulty, c.duration,
			c.participants, c.progress, c.required_completion_rate, c.badge_slug,
			c.required_badge_id, c.image_url, c.icon_name, c.icon_color,
			c.tags, c.is_official, c.status,
			c.created_by, c.updated_by, c.deleted_by, c.created_at, c.updated_at, c.deleted_at,
			TRUE AS user_participated
		FROM challenges c
		INNER JOIN challenge_participations cp ON c.id = cp.challenge_id
		WHERE cp.user_id = $1 AND cp.status = 'active' AND c.deleted_at IS NULL
		ORDER BY cp.updated_at DESC
	`, userID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []model.Challenge
	for rows.Next() {
		c, err := scanner.ScanChallengeWithParticipation(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *c)
	}

	return challenges, rows.Err()
}

// GetChallengeProgress récupère la participation et ses jours ordonnés
func (s *ChallengeService) GetChallengeProgress(ctx context.Context, userID, challengeID string) (*model.ChallengeProgress, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, challenge_id, status, current_day, completion_rate,
			started_at, paused_at, resumed_at, last_check_in, created_at, updated_at
		FROM challenge_participations
		WHERE user_id = $1 AND challenge_id = $2
	`, userID, challengeID)

	participation, err := scanner.ScanParticipation(row)
	if err != nil {
		return nil, err
	}

	days, err := loadDailyProgress(ctx, s.db, userID, challengeID)
	if err != nil {
		return nil, err
	}

	return &model.ChallengeProgress{
		Participation: *participation,
		Days:          days,
	}, nil
}

// GetTodayCheckIn récupère la ligne quotidienne datée d'aujourd'hui (nil si
// le challenge n'a pas de jour prévu aujourd'hui)
func (s *ChallengeService) GetTodayCheckIn(ctx context.Context, userID, challengeID string) (*model.DailyProgress, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, challenge_id, day_number, target_date, status,
			notes, performance_data, completed_at, created_at, updated_at
		FROM daily_progress
		WHERE user_id = $1 AND challenge_id = $2 AND target_date = CURRENT_DATE
	`, userID, challengeID)

	day, err := scanner.ScanDailyProgress(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return day, nil
}

// GetChallengeStats agrège les participations d'un challenge
func (s *ChallengeService) GetChallengeStats(ctx context.Context, challengeID string) (*model.ChallengeStats, error) {
	stats := &model.ChallengeStats{ChallengeID: challengeID}

	err := s.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(AVG(completion_rate), 0),
			COUNT(*) FILTER (WHERE completion_rate = 100)
		FROM challenge_participations
		WHERE challenge_id = $1
	`, challengeID).Scan(&stats.Participants, &stats.AverageCompletion, &stats.CompletedCount)

	if err != nil {
		return nil, err
	}

	return stats, nil
}

// GetChallengeLeaderboard récupère le classement d'un challenge par taux de
// complétion décroissant
func (s *ChallengeService) GetChallengeLeaderboard(ctx context.Context, challengeID string, limit int) ([]model.ChallengeLeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(ctx, `
		WITH ranked AS (
			SELECT
				cp.user_id,
				cp.completion_rate,
				cp.current_day,
				ROW_NUMBER() OVER (ORDER BY cp.completion_rate DESC, cp.current_day DESC, cp.started_at ASC) as rank
			FROM challenge_participations cp
			WHERE cp.challenge_id = $1
		)
		SELECT r.user_id, u.name as user_name, u.avatar, r.rank, r.completion_rate, r.current_day
		FROM ranked r
		INNER JOIN users u ON r.user_id = u.id
		WHERE u.deleted_at IS NULL
		ORDER BY r.rank
		LIMIT $2
	`, challengeID, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.ChallengeLeaderboardEntry
	for rows.Next() {
		e, err := scanner.ScanChallengeLeaderboardEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}

	return entries, rows.Err()
}

// loadDailyProgress charge les lignes quotidiennes ordonnées d'une participation
func loadDailyProgress(ctx context.Context, q querier, userID, challengeID string) ([]model.DailyProgress, error) {
	rows, err := q.Query(ctx, `
		SELECT id, user_id, challenge_id, day_number, target_date, status,
			notes, performance_data, completed_at, created_at, updated_at
		FROM daily_progress
		WHERE user_id = $1 AND challenge_id = $2
		ORDER BY day_number ASC
	`, userID, challengeID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []model.DailyProgress
	for rows.Next() {
		d, err := scanner.ScanDailyProgress(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, *d)
	}

	return days, rows.Err()
}
