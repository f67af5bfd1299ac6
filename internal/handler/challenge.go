package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/s-soya2421/muscle-pal-sub000/internal/database"
	"github.com/s-soya2421/muscle-pal-sub000/internal/middleware"
	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
	"github.com/s-soya2421/muscle-pal-sub000/internal/scanner"
	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"
)

// challengeColumns colonnes communes aux requêtes de listing de challenges
const challengeColumns = `
	c.id, c.title, c.description, c.category, c.difficulty, c.duration,
	c.participants, c.progress, c.required_completion_rate, c.badge_slug,
	c.required_badge_id, c.image_url, c.icon_name, c.icon_color,
	c.tags, c.is_official, c.status,
	c.created_by, c.updated_by, c.deleted_by, c.created_at, c.updated_at, c.deleted_at`

// GetChallenges liste les challenges publics (ceux sans badge requis).
// user_participated est renseigné si la requête est authentifiée.
func GetChallenges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var currentUserID string
	if user, err := middleware.GetUserFromContext(r); err == nil {
		currentUserID = user.ID
	}

	query := `
		SELECT ` + challengeColumns + `,
			CASE WHEN $1 = '' THEN NULL ELSE EXISTS(
				SELECT 1 FROM challenge_participations cp
				WHERE cp.challenge_id = c.id AND cp.user_id = $1
			) END as user_participated
		FROM challenges c
		WHERE c.deleted_at IS NULL AND c.required_badge_id IS NULL`

	args := []interface{}{currentUserID}

	// Filtres optionnels
	if category := r.URL.Query().Get("category"); category != "" {
		query += ` AND c.category = $2`
		args = append(args, category)
	}

	query += ` ORDER BY c.is_official DESC, c.participants DESC`

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query challenges", err)
		return
	}
	defer rows.Close()

	var challenges []model.Challenge
	for rows.Next() {
		c, err := scanner.ScanChallengeWithParticipation(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan challenge", err)
			return
		}
		challenges = append(challenges, *c)
	}

	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read challenges", err)
		return
	}

	utils.Success(w, challenges)
}

// GetChallengeById retourne un challenge par son ID
func GetChallengeById(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var currentUserID string
	if user, err := middleware.GetUserFromContext(r); err == nil {
		currentUserID = user.ID
	}

	row := database.DB.QueryRow(ctx, `
		SELECT `+challengeColumns+`,
			CASE WHEN $2 = '' THEN NULL ELSE EXISTS(
				SELECT 1 FROM challenge_participations cp
				WHERE cp.challenge_id = c.id AND cp.user_id = $2
			) END as user_participated
		FROM challenges c
		WHERE c.id = $1 AND c.deleted_at IS NULL
	`, id, currentUserID)

	challenge, err := scanner.ScanChallengeWithParticipation(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
		return
	}

	utils.Success(w, challenge)
}

// GetExclusiveChallenges liste les challenges à badge requis, annotés de
// l'accès de l'utilisateur courant
func GetExclusiveChallenges(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	challenges, err := badgeService.GetAccessibleChallenges(r.Context(), user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query exclusive challenges", err)
		return
	}

	utils.Success(w, challenges)
}

// JoinChallenge inscrit l'utilisateur courant à un challenge. Pour un
// challenge exclusif, le badge requis doit être détenu.
func JoinChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ctx := r.Context()

	// Contrôle d'accès pour les challenges exclusifs
	var requiredBadgeID *string
	err = database.DB.QueryRow(ctx,
		`SELECT required_badge_id FROM challenges WHERE id = $1 AND deleted_at IS NULL`,
		challengeID,
	).Scan(&requiredBadgeID)

	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
		return
	}

	if requiredBadgeID != nil {
		has, err := badgeService.HasBadge(ctx, user.ID, *requiredBadgeID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not check badge", err)
			return
		}
		if !has {
			utils.ErrorSimple(w, http.StatusForbidden, "this challenge requires a badge you have not earned yet")
			return
		}
	}

	if !challengeService.JoinChallenge(ctx, user.ID, challengeID) {
		utils.ErrorSimple(w, http.StatusConflict, "could not join challenge")
		return
	}

	utils.Message(w, "challenge joined")
}

// LeaveChallenge désinscrit l'utilisateur courant d'un challenge
func LeaveChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if !challengeService.LeaveChallenge(r.Context(), user.ID, challengeID) {
		utils.ErrorSimple(w, http.StatusNotFound, "participation not found")
		return
	}

	utils.Message(w, "challenge left")
}

// PauseChallenge met la participation de l'utilisateur courant en pause
func PauseChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if !challengeService.PauseChallenge(r.Context(), user.ID, challengeID) {
		utils.ErrorSimple(w, http.StatusConflict, "no active participation to pause")
		return
	}

	utils.Message(w, "challenge paused")
}

// ResumeChallenge réactive la participation en pause de l'utilisateur courant
func ResumeChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if !challengeService.ResumeChallenge(r.Context(), user.ID, challengeID) {
		utils.ErrorSimple(w, http.StatusConflict, "no paused participation to resume")
		return
	}

	utils.Message(w, "challenge resumed")
}

type CheckInRequest struct {
	DayNumber       int                    `json:"dayNumber"`
	Notes           string                 `json:"notes"`
	PerformanceData *model.PerformanceData `json:"performanceData"`
}

// CheckIn enregistre le check-in d'un jour. Un jour déjà complété est un no-op.
func CheckIn(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req CheckInRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.DayNumber <= 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "dayNumber must be positive")
		return
	}

	if !challengeService.PerformCheckIn(r.Context(), user.ID, challengeID, req.DayNumber, req.PerformanceData, req.Notes) {
		utils.ErrorSimple(w, http.StatusConflict, "day already completed or not found")
		return
	}

	// Retourner la participation à jour pour éviter un aller-retour
	progress, err := challengeService.GetChallengeProgress(r.Context(), user.ID, challengeID)
	if err != nil {
		utils.Message(w, "check-in recorded")
		return
	}

	utils.Success(w, progress.Participation)
}

// GetChallengeProgress retourne la participation et ses jours
func GetChallengeProgress(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	progress, err := challengeService.GetChallengeProgress(r.Context(), user.ID, challengeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			utils.ErrorSimple(w, http.StatusNotFound, "participation not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load progress", err)
		return
	}

	utils.Success(w, progress)
}

// GetTodayCheckIn retourne le jour daté d'aujourd'hui (null si hors calendrier)
func GetTodayCheckIn(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	day, err := challengeService.GetTodayCheckIn(r.Context(), user.ID, challengeID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load today's check-in", err)
		return
	}

	utils.Success(w, day)
}

// GetChallengeStats retourne les statistiques agrégées d'un challenge
func GetChallengeStats(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	stats, err := challengeService.GetChallengeStats(r.Context(), challengeID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load stats", err)
		return
	}

	utils.Success(w, stats)
}

// GetChallengeLeaderboard retourne le classement d'un challenge
func GetChallengeLeaderboard(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := challengeService.GetChallengeLeaderboard(r.Context(), challengeID, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load leaderboard", err)
		return
	}

	utils.Success(w, entries)
}

// GetUserActiveChallenges retourne les challenges actifs de l'utilisateur courant
func GetUserActiveChallenges(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	challenges, err := challengeService.GetUserActiveChallenges(r.Context(), user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load challenges", err)
		return
	}

	utils.Success(w, challenges)
}
