package model

import (
	"database/sql"
	"time"
)

// Statuts d'une participation
const (
	ParticipationActive = "active"
	ParticipationPaused = "paused"
)

// Statuts d'un jour de progression
const (
	DayPending   = "pending"
	DayCompleted = "completed"
)

// DefaultRequiredCompletionRate est le seuil d'attribution de badge par défaut (%)
const DefaultRequiredCompletionRate = 90

type Challenge struct {
	ID                     string         `json:"id"`
	Title                  string         `json:"title"`
	Description            string         `json:"description"`
	Category               string         `json:"category"`
	Difficulty             string         `json:"difficulty"` // BEGINNER, INTERMEDIATE, ADVANCED
	Duration               int            `json:"duration"`   // nombre de jours
	Participants           int            `json:"participants"`
	Progress               int            `json:"progress"` // taux de complétion moyen (0-100)
	RequiredCompletionRate sql.NullInt32  `json:"requiredCompletionRate,omitempty"`
	BadgeSlug              sql.NullString `json:"badgeSlug,omitempty"`       // badge attribué à la complétion
	RequiredBadgeID        sql.NullString `json:"requiredBadgeId,omitempty"` // badge requis (challenge exclusif)
	ImageURL               sql.NullString `json:"imageUrl,omitempty"`
	IconName               string         `json:"iconName"`
	IconColor              string         `json:"iconColor"`
	Tags                   []string       `json:"tags,omitempty"`
	IsOfficial             bool           `json:"isOfficial"`
	Status                 string         `json:"status"`
	UserParticipated       sql.NullBool   `json:"userParticipated,omitempty"`
	CreatedBy              sql.NullString `json:"createdBy,omitempty"`
	UpdatedBy              sql.NullString `json:"updatedBy,omitempty"`
	DeletedBy              sql.NullString `json:"deletedBy,omitempty"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
	DeletedAt              sql.NullTime   `json:"deletedAt,omitempty"`
}

// ExclusiveChallenge est un challenge annoté avec l'accès de l'utilisateur courant
type ExclusiveChallenge struct {
	Challenge
	CanParticipate bool `json:"canParticipate"`
}

type ChallengeParticipation struct {
	ID             string       `json:"id"`
	UserID         string       `json:"userId"`
	ChallengeID    string       `json:"challengeId"`
	Status         string       `json:"status"` // active, paused
	CurrentDay     int          `json:"currentDay"`
	CompletionRate int          `json:"completionRate"`
	StartedAt      time.Time    `json:"startedAt"`
	PausedAt       sql.NullTime `json:"pausedAt,omitempty"`
	ResumedAt      sql.NullTime `json:"resumedAt,omitempty"`
	LastCheckIn    sql.NullTime `json:"lastCheckIn,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// PerformanceData contient les mesures libres saisies lors d'un check-in
type PerformanceData struct {
	Duration string `json:"duration,omitempty"` // ex: "12分30秒"
	Reps     int    `json:"reps,omitempty"`
	Distance string `json:"distance,omitempty"` // ex: "5.2km"
}

type DailyProgress struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	ChallengeID     string           `json:"challengeId"`
	DayNumber       int              `json:"dayNumber"`
	TargetDate      time.Time        `json:"targetDate"`
	Status          string           `json:"status"` // pending, completed
	Notes           sql.NullString   `json:"notes,omitempty"`
	PerformanceData *PerformanceData `json:"performanceData,omitempty"`
	CompletedAt     sql.NullTime     `json:"completedAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// ChallengeProgress regroupe la participation et ses jours pour l'affichage
type ChallengeProgress struct {
	Participation ChallengeParticipation `json:"participation"`
	Days          []DailyProgress        `json:"days"`
}

// ChallengeStats agrège les participations d'un challenge
type ChallengeStats struct {
	ChallengeID       string  `json:"challengeId"`
	Participants      int     `json:"participants"`
	AverageCompletion float64 `json:"averageCompletion"`
	CompletedCount    int     `json:"completedCount"` // participations à 100%
}

type ChallengeLeaderboardEntry struct {
	UserID         string         `json:"userId"`
	UserName       string         `json:"userName"`
	Avatar         sql.NullString `json:"avatar,omitempty"`
	Rank           int            `json:"rank"`
	CompletionRate int            `json:"completionRate"`
	CurrentDay     int            `json:"currentDay"`
}
