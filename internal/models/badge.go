package model

import (
	"database/sql"
	"time"
)

// BadgeCategory représente les catégories de badges
type BadgeCategory string

const (
	BadgeCategoryChallenge   BadgeCategory = "challenge"
	BadgeCategoryStreak      BadgeCategory = "streak"
	BadgeCategoryCommunity   BadgeCategory = "community"
	BadgeCategoryAchievement BadgeCategory = "achievement"
)

// Badge est un modèle de récompense (données de référence, immuables)
type Badge struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Slug       string        `json:"slug"` // clé stable utilisée pour l'attribution
	Icon       string        `json:"icon"`
	Category   BadgeCategory `json:"category"`
	Difficulty string        `json:"difficulty"`
	Unlocks    []string      `json:"unlocks,omitempty"` // fonctionnalités débloquées
	IsActive   bool          `json:"isActive"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Improvement compare la première et la dernière performance d'un challenge
type Improvement struct {
	Before     string  `json:"before"`
	After      string  `json:"after"`
	Percentage float64 `json:"percentage"`
}

// BadgeStats est le payload de statistiques enregistré avec un badge gagné
type BadgeStats struct {
	ChallengeDuration int          `json:"challengeDuration"`
	CompletedDays     int          `json:"completedDays"`
	CompletionRate    int          `json:"completionRate"`
	LongestStreak     int          `json:"longestStreak"`
	FinalStreak       int          `json:"finalStreak"`
	Improvement       *Improvement `json:"improvement,omitempty"`
}

// UserBadge enregistre qu'un utilisateur a gagné un badge
type UserBadge struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	BadgeID      string         `json:"badgeId"`
	Badge        *Badge         `json:"badge,omitempty"`
	EarnedAt     time.Time      `json:"earnedAt"`
	ChallengeID  sql.NullString `json:"challengeId,omitempty"`
	PersonalNote sql.NullString `json:"personalNote,omitempty"`
	Stats        *BadgeStats    `json:"stats,omitempty"`
}
