package scanner

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"
)

// ScanUserProfile scanne une ligne SQL vers un UserProfile
// Utilise les types sql.Null* et les convertit automatiquement
func ScanUserProfile(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar, bio, goal sql.NullString
	var updatedBy sql.NullString

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &avatar, &bio, &goal, &user.IsAdmin,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
		&user.CreatedBy, &updatedBy,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	user.Avatar = utils.NullStringToString(avatar)
	user.Bio = utils.NullStringToString(bio)
	user.Goal = utils.NullStringToString(goal)
	user.UpdatedBy = utils.NullStringToPointer(updatedBy)

	return &user, nil
}

// ScanChallenge scanne une ligne SQL vers un Challenge
func ScanChallenge(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Challenge, error) {
	var c model.Challenge

	err := scanner.Scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.Difficulty, &c.Duration,
		&c.Participants, &c.Progress, &c.RequiredCompletionRate, &c.BadgeSlug,
		&c.RequiredBadgeID, &c.ImageURL, &c.IconName, &c.IconColor,
		pq.Array(&c.Tags), &c.IsOfficial, &c.Status,
		&c.CreatedBy, &c.UpdatedBy, &c.DeletedBy, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// ScanChallengeWithParticipation scanne un Challenge suivi de la colonne user_participated
func ScanChallengeWithParticipation(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Challenge, error) {
	var c model.Challenge

	err := scanner.Scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.Difficulty, &c.Duration,
		&c.Participants, &c.Progress, &c.RequiredCompletionRate, &c.BadgeSlug,
		&c.RequiredBadgeID, &c.ImageURL, &c.IconName, &c.IconColor,
		pq.Array(&c.Tags), &c.IsOfficial, &c.Status,
		&c.CreatedBy, &c.UpdatedBy, &c.DeletedBy, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
		&c.UserParticipated,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// ScanExclusiveChallenge scanne un Challenge suivi de la colonne can_participate
func ScanExclusiveChallenge(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.ExclusiveChallenge, error) {
	var ec model.ExclusiveChallenge

	err := scanner.Scan(
		&ec.ID, &ec.Title, &ec.Description, &ec.Category, &ec.Difficulty, &ec.Duration,
		&ec.Participants, &ec.Progress, &ec.RequiredCompletionRate, &ec.BadgeSlug,
		&ec.RequiredBadgeID, &ec.ImageURL, &ec.IconName, &ec.IconColor,
		pq.Array(&ec.Tags), &ec.IsOfficial, &ec.Status,
		&ec.CreatedBy, &ec.UpdatedBy, &ec.DeletedBy, &ec.CreatedAt, &ec.UpdatedAt, &ec.DeletedAt,
		&ec.CanParticipate,
	)
	if err != nil {
		return nil, err
	}

	return &ec, nil
}

// ScanParticipation scanne une ligne SQL vers une ChallengeParticipation
func ScanParticipation(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.ChallengeParticipation, error) {
	var p model.ChallengeParticipation

	err := scanner.Scan(
		&p.ID, &p.UserID, &p.ChallengeID, &p.Status, &p.CurrentDay, &p.CompletionRate,
		&p.StartedAt, &p.PausedAt, &p.ResumedAt, &p.LastCheckIn,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ScanDailyProgress scanne une ligne SQL vers un DailyProgress
// performance_data est une colonne jsonb décodée si présente
func ScanDailyProgress(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.DailyProgress, error) {
	var d model.DailyProgress
	var perfJSON []byte

	err := scanner.Scan(
		&d.ID, &d.UserID, &d.ChallengeID, &d.DayNumber, &d.TargetDate,
		&d.Status, &d.Notes, &perfJSON, &d.CompletedAt,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(perfJSON) > 0 {
		var perf model.PerformanceData
		if err := json.Unmarshal(perfJSON, &perf); err == nil {
			d.PerformanceData = &perf
		}
	}

	return &d, nil
}

// ScanBadge scanne une ligne SQL vers un Badge
func ScanBadge(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Badge, error) {
	var b model.Badge

	err := scanner.Scan(
		&b.ID, &b.Name, &b.Slug, &b.Icon, &b.Category, &b.Difficulty,
		pq.Array(&b.Unlocks), &b.IsActive, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// ScanUserBadge scanne une ligne user_badges jointe avec son badge
func ScanUserBadge(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.UserBadge, error) {
	var ub model.UserBadge
	var b model.Badge
	var statsJSON []byte

	err := scanner.Scan(
		&ub.ID, &ub.UserID, &ub.BadgeID, &ub.EarnedAt, &ub.ChallengeID,
		&ub.PersonalNote, &statsJSON,
		&b.ID, &b.Name, &b.Slug, &b.Icon, &b.Category, &b.Difficulty,
		pq.Array(&b.Unlocks), &b.IsActive, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(statsJSON) > 0 {
		var stats model.BadgeStats
		if err := json.Unmarshal(statsJSON, &stats); err == nil {
			ub.Stats = &stats
		}
	}
	ub.Badge = &b

	return &ub, nil
}

// ScanPost scanne une ligne SQL vers un Post
func ScanPost(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Post, error) {
	var p model.Post

	err := scanner.Scan(
		&p.ID, &p.UserID, &p.Content, pq.Array(&p.ImageURLs),
		&p.Likes, &p.CommentsCount, &p.UserLiked,
		&p.DeletedBy, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ScanComment scanne une ligne SQL vers un Comment
func ScanComment(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Comment, error) {
	var c model.Comment

	err := scanner.Scan(
		&c.ID, &c.PostID, &c.UserID, &c.Content,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// ScanChallengeLeaderboardEntry scanne une ligne du classement d'un challenge
func ScanChallengeLeaderboardEntry(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.ChallengeLeaderboardEntry, error) {
	var e model.ChallengeLeaderboardEntry

	err := scanner.Scan(
		&e.UserID, &e.UserName, &e.Avatar, &e.Rank, &e.CompletionRate, &e.CurrentDay,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}
