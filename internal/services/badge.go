package services

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/s-soya2421/muscle-pal-sub000/internal/logger"
	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
	"github.com/s-soya2421/muscle-pal-sub000/internal/scanner"
)

// querier est satisfait par *pgxpool.Pool et pgx.Tx, pour réutiliser les
// requêtes dans et hors transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BadgeService traduit les check-ins quotidiens en mise à jour de progression
// et attribue les badges à la complétion d'un challenge
type BadgeService struct {
	db *pgxpool.Pool
}

func NewBadgeService(db *pgxpool.Pool) *BadgeService {
	return &BadgeService{db: db}
}

// DailyCheckIn marque un jour comme complété puis recalcule la progression de
// la participation, le tout dans une seule transaction. Un jour déjà complété
// ne peut pas être re-validé (zéro ligne touchée = échec).
// Si le taux recalculé franchit le seuil du challenge, le badge est attribué
// dans la même transaction; un échec d'attribution est loggé mais ne fait pas
// échouer le check-in.
func (s *BadgeService) DailyCheckIn(ctx context.Context, userID, challengeID string, dayNumber int, perf *model.PerformanceData, notes string) bool {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		logger.Error("DailyCheckIn: could not begin transaction: %v", err)
		return false
	}
	defer tx.Rollback(ctx)

	var perfJSON []byte
	if perf != nil {
		perfJSON, err = json.Marshal(perf)
		if err != nil {
			logger.Error("DailyCheckIn: could not encode performance data: %v", err)
			return false
		}
	}

	res, err := tx.Exec(ctx, `
		UPDATE daily_progress
		SET status = 'completed',
			completed_at = NOW(),
			performance_data = COALESCE($4, performance_data),
			notes = COALESCE(NULLIF($5, ''), notes),
			updated_at = NOW()
		WHERE user_id = $1 AND challenge_id = $2 AND day_number = $3
		  AND status = 'pending'
	`, userID, challengeID, dayNumber, perfJSON, notes)

	if err != nil {
		logger.Error("DailyCheckIn: could not update daily progress: %v", err)
		return false
	}

	if res.RowsAffected() == 0 {
		// Jour inexistant ou déjà complété
		logger.Warning("DailyCheckIn: day %d already completed or not found (user=%s challenge=%s)", dayNumber, userID, challengeID)
		return false
	}

	// Recalcul unique du taux de complétion à partir des lignes quotidiennes
	var totalDays, completedDays int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'completed')
		FROM daily_progress
		WHERE user_id = $1 AND challenge_id = $2
	`, userID, challengeID).Scan(&totalDays, &completedDays)

	if err != nil {
		logger.Error("DailyCheckIn: could not count daily progress: %v", err)
		return false
	}

	newRate := CompletionRate(completedDays, totalDays)

	var previousRate int
	err = tx.QueryRow(ctx, `
		SELECT completion_rate FROM challenge_participations
		WHERE user_id = $1 AND challenge_id = $2
		FOR UPDATE
	`, userID, challengeID).Scan(&previousRate)

	if err != nil {
		logger.Error("DailyCheckIn: participation not found: %v", err)
		return false
	}

	_, err = tx.Exec(ctx, `
		UPDATE challenge_participations
		SET current_day = $3, completion_rate = $4, last_check_in = NOW(), updated_at = NOW()
		WHERE user_id = $1 AND challenge_id = $2
	`, userID, challengeID, completedDays, newRate)

	if err != nil {
		logger.Error("DailyCheckIn: could not update participation: %v", err)
		return false
	}

	requiredRate := s.requiredCompletionRate(ctx, tx, challengeID)

	if CrossedThreshold(previousRate, newRate, requiredRate) {
		if s.awardBadgeForChallenge(ctx, tx, userID, challengeID, "") {
			logger.Success("Badge awarded to user %s for challenge %s", userID, challengeID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("DailyCheckIn: could not commit: %v", err)
		return false
	}

	return true
}

// requiredCompletionRate retourne le seuil configuré du challenge (90 par défaut)
func (s *BadgeService) requiredCompletionRate(ctx context.Context, q querier, challengeID string) int {
	var required sql.NullInt32
	err := q.QueryRow(ctx, `
		SELECT required_completion_rate FROM challenges WHERE id = $1
	`, challengeID).Scan(&required)

	if err != nil || !required.Valid {
		return model.DefaultRequiredCompletionRate
	}
	return int(required.Int32)
}

// CheckChallengeCompletion compare le taux de complétion enregistré au seuil
// du challenge (lecture seule, pas de re-dérivation)
func (s *BadgeService) CheckChallengeCompletion(ctx context.Context, userID, challengeID string) (bool, error) {
	var rate int
	err := s.db.QueryRow(ctx, `
		SELECT completion_rate FROM challenge_participations
		WHERE user_id = $1 AND challenge_id = $2
	`, userID, challengeID).Scan(&rate)

	if err != nil {
		return false, err
	}

	return rate >= s.requiredCompletionRate(ctx, s.db, challengeID), nil
}

// AwardBadgeForChallenge attribue le badge configuré du challenge à un
// utilisateur. Retourne false si le challenge n'a pas de badge configuré ou si
// le badge a déjà été attribué pour ce challenge.
func (s *BadgeService) AwardBadgeForChallenge(ctx context.Context, userID, challengeID, personalNote string) bool {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		logger.Error("AwardBadgeForChallenge: could not begin transaction: %v", err)
		return false
	}
	defer tx.Rollback(ctx)

	if !s.awardBadgeForChallenge(ctx, tx, userID, challengeID, personalNote) {
		return false
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("AwardBadgeForChallenge: could not commit: %v", err)
		return false
	}

	return true
}

func (s *BadgeService) awardBadgeForChallenge(ctx context.Context, tx pgx.Tx, userID, challengeID, personalNote string) bool {
	var badgeSlug *string
	err := tx.QueryRow(ctx, `
		SELECT badge_slug FROM challenges WHERE id = $1 AND deleted_at IS NULL
	`, challengeID).Scan(&badgeSlug)

	if err != nil {
		logger.Error("awardBadgeForChallenge: challenge not found: %v", err)
		return false
	}

	if badgeSlug == nil || *badgeSlug == "" {
		// Pas de badge configuré pour ce challenge
		return false
	}

	stats, err := s.calculateAchievementStats(ctx, tx, userID, challengeID)
	if err != nil {
		logger.Error("awardBadgeForChallenge: could not compute stats: %v", err)
		return false
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		logger.Error("awardBadgeForChallenge: could not encode stats: %v", err)
		return false
	}

	// L'unicité (user, badge, challenge) est garantie par la contrainte;
	// une attribution répétée est un no-op
	res, err := tx.Exec(ctx, `
		INSERT INTO user_badges (user_id, badge_id, challenge_id, personal_note, stats, earned_at)
		SELECT $1, b.id, $2, NULLIF($3, ''), $4, NOW()
		FROM badges b
		WHERE b.slug = $5 AND b.is_active = true
		ON CONFLICT (user_id, badge_id, challenge_id) DO NOTHING
	`, userID, challengeID, personalNote, statsJSON, *badgeSlug)

	if err != nil {
		logger.Error("awardBadgeForChallenge: could not insert user badge: %v", err)
		return false
	}

	return res.RowsAffected() > 0
}

// CalculateAchievementStats calcule les statistiques d'accomplissement d'une
// participation à partir de ses lignes quotidiennes ordonnées
func (s *BadgeService) CalculateAchievementStats(ctx context.Context, userID, challengeID string) (*model.BadgeStats, error) {
	return s.calculateAchievementStats(ctx, s.db, userID, challengeID)
}

func (s *BadgeService) calculateAchievementStats(ctx context.Context, q querier, userID, challengeID string) (*model.BadgeStats, error) {
	days, err := loadDailyProgress(ctx, q, userID, challengeID)
	if err != nil {
		return nil, err
	}

	return BuildBadgeStats(days), nil
}

// GetUserBadges récupère tous les badges gagnés d'un utilisateur, badge inclus
func (s *BadgeService) GetUserBadges(ctx context.Context, userID string) ([]model.UserBadge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT
			ub.id, ub.user_id, ub.badge_id, ub.earned_at, ub.challenge_id,
			ub.personal_note, ub.stats,
			b.id, b.name, b.slug, b.icon, b.category, b.difficulty,
			b.unlocks, b.is_active, b.created_at
		FROM user_badges ub
		INNER JOIN badges b ON ub.badge_id = b.id
		WHERE ub.user_id = $1
		ORDER BY ub.earned_at DESC
	`, userID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []model.UserBadge
	for rows.Next() {
		ub, err := scanner.ScanUserBadge(rows)
		if err != nil {
			return nil, err
		}
		badges = append(badges, *ub)
	}

	return badges, rows.Err()
}

// GetAvailableBadges récupère tous les badges actifs (données de référence)
func (s *BadgeService) GetAvailableBadges(ctx context.Context) ([]model.Badge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, slug, icon, category, difficulty, unlocks, is_active, created_at
		FROM badges
		WHERE is_active = true
		ORDER BY category, difficulty, name
	`)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []model.Badge
	for rows.Next() {
		b, err := scanner.ScanBadge(rows)
		if err != nil {
			return nil, err
		}
		badges = append(badges, *b)
	}

	return badges, rows.Err()
}

// HasBadge indique si un utilisateur possède un badge donné
func (s *BadgeService) HasBadge(ctx context.Context, userID, badgeID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM user_badges WHERE user_id = $1 AND badge_id = $2
		)
	`, userID, badgeID).Scan(&exists)

	return exists, err
}

// GetAccessibleChallenges récupère les challenges exclusifs annotés de l'accès
// de l'utilisateur (canParticipate = possession du badge requis)
func (s *BadgeService) GetAccessibleChallenges(ctx context.Context, userID string) ([]model.ExclusiveChallenge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT
			c.id, c.title, c.description, c.category, c.difficulty, c.duration,
			c.participants, c.progress, c.required_completion_rate, c.badge_slug,
			c.required_badge_id, c.image_url, c.icon_name, c.icon_color,
			c.tags, c.is_official, c.status,
			c.created_by, c.updated_by, c.deleted_by, c.created_at, c.updated_at, c.deleted_at,
			COALESCE((
				SELECT TRUE FROM user_badges ub
				WHERE ub.user_id = $1 AND ub.badge_id = c.required_badge_id
				LIMIT 1
			), FALSE) AS can_participate
		FROM challenges c
		WHERE c.required_badge_id IS NOT NULL
		  AND c.deleted_at IS NULL
		ORDER BY c.created_at DESC
	`, userID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []model.ExclusiveChallenge
	for rows.Next() {
		ec, err := scanner.ScanExclusiveChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *ec)
	}

	return challenges, rows.Err()
}
