package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/s-soya2421/muscle-pal-sub000/internal/database"
	"github.com/s-soya2421/muscle-pal-sub000/internal/middleware"
	"github.com/s-soya2421/muscle-pal-sub000/internal/scanner"
	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"
)

// requireAdmin retourne l'utilisateur courant s'il est admin, sinon répond 403
func requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return "", false
	}
	if !user.IsAdmin {
		utils.ErrorSimple(w, http.StatusForbidden, "admin only")
		return "", false
	}
	return user.ID, true
}

// challengeReturning colonnes retournées par les écritures sur challenges
const challengeReturning = `
	id, title, description, category, difficulty, duration,
	participants, progress, required_completion_rate, badge_slug,
	required_badge_id, image_url, icon_name, icon_color,
	tags, is_official, status,
	created_by, updated_by, deleted_by, created_at, updated_at, deleted_at`

type ChallengeRequest struct {
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	Category               string   `json:"category"`
	Difficulty             string   `json:"difficulty"`
	Duration               int      `json:"duration"`
	RequiredCompletionRate *int     `json:"requiredCompletionRate"`
	BadgeSlug              *string  `json:"badgeSlug"`
	RequiredBadgeID        *string  `json:"requiredBadgeId"`
	IconName               string   `json:"iconName"`
	IconColor              string   `json:"iconColor"`
	Tags                   []string `json:"tags"`
	IsOfficial             bool     `json:"isOfficial"`
}

// CreateChallenge crée un challenge (admin)
func CreateChallenge(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var req ChallengeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Duration <= 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "title and a positive duration are required")
		return
	}

	row := database.DB.QueryRow(r.Context(), `
		INSERT INTO challenges(
			title, description, category, difficulty, duration,
			participants, progress, required_completion_rate, badge_slug, required_badge_id,
			icon_name, icon_color, tags, is_official, status,
			created_by, created_at, updated_at
		) VALUES($1, $2, $3, $4, $5, 0, 0, $6, $7, $8, $9, $10, $11, $12, 'active', $13, NOW(), NOW())
		RETURNING `+challengeReturning,
		req.Title, req.Description, req.Category, req.Difficulty, req.Duration,
		req.RequiredCompletionRate, req.BadgeSlug, req.RequiredBadgeID,
		req.IconName, req.IconColor, pq.Array(req.Tags), req.IsOfficial, adminID,
	)

	challenge, err := scanner.ScanChallenge(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create challenge", err)
		return
	}

	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: challenge})
}

// UpdateChallenge met à jour un challenge (admin)
func UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]

	var req ChallengeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	row := database.DB.QueryRow(r.Context(), `
		UPDATE challenges
		SET title = $2, description = $3, category = $4, difficulty = $5,
			required_completion_rate = $6, badge_slug = $7, required_badge_id = $8,
			icon_name = $9, icon_color = $10, tags = $11, is_official = $12,
			updated_by = $13, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+challengeReturning,
		id, req.Title, req.Description, req.Category, req.Difficulty,
		req.RequiredCompletionRate, req.BadgeSlug, req.RequiredBadgeID,
		req.IconName, req.IconColor, pq.Array(req.Tags), req.IsOfficial, adminID,
	)

	challenge, err := scanner.ScanChallenge(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
		return
	}

	utils.Success(w, challenge)
}

// DeleteChallenge soft delete un challenge (admin)
func DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]

	res, err := database.DB.Exec(r.Context(), `
		UPDATE challenges SET deleted_at = NOW(), deleted_by = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id, adminID)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete challenge", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
		return
	}

	utils.Success(w, map[string]bool{"deleted": true})
}

type BadgeRequest struct {
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Icon       string   `json:"icon"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Unlocks    []string `json:"unlocks"`
}

// CreateBadge crée un badge au catalogue (admin)
func CreateBadge(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var req BadgeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Slug = strings.TrimSpace(req.Slug)
	if req.Name == "" || req.Slug == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name and slug are required")
		return
	}

	row := database.DB.QueryRow(r.Context(), `
		INSERT INTO badges(name, slug, icon, category, difficulty, unlocks, is_active, created_at)
		VALUES($1, $2, $3, $4, $5, $6, true, NOW())
		RETURNING id, name, slug, icon, category, difficulty, unlocks, is_active, created_at
	`, req.Name, req.Slug, req.Icon, req.Category, req.Difficulty, pq.Array(req.Unlocks))

	badge, err := scanner.ScanBadge(row)
	if err != nil {
		utils.Error(w, http.StatusConflict, "could not create badge", err)
		return
	}

	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: badge})
}
