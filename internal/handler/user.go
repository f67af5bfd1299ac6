package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/s-soya2421/muscle-pal-sub000/internal/database"
	"github.com/s-soya2421/muscle-pal-sub000/internal/middleware"
	"github.com/s-soya2421/muscle-pal-sub000/internal/scanner"
	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"
)

// GetMe retourne le profil de l'utilisateur authentifié
func GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	utils.Success(w, user)
}

// GetUser retourne le profil public d'un utilisateur
func GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	row := database.DB.QueryRow(r.Context(), `
		SELECT id, name, email, avatar, bio, goal, is_admin,
			join_date, created_at, updated_at, created_by, updated_by
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`, id)

	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	utils.Success(w, user)
}

// UpdateUser met à jour le profil (propriétaire ou admin uniquement)
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if !middleware.IsOwnerOrAdmin(r, id) {
		utils.ErrorSimple(w, http.StatusForbidden, "forbidden")
		return
	}

	var payload struct {
		Name *string `json:"name"`
		Bio  *string `json:"bio"`
		Goal *string `json:"goal"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	currentUser, _ := middleware.GetUserFromContext(r)

	row := database.DB.QueryRow(r.Context(), `
		UPDATE users
		SET name = COALESCE($2, name),
			bio = COALESCE($3, bio),
			goal = COALESCE($4, goal),
			updated_at = NOW(),
			updated_by = $5
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, name, email, avatar, bio, goal, is_admin,
			join_date, created_at, updated_at, created_by, updated_by
	`, id, payload.Name, payload.Bio, payload.Goal, currentUser.ID)

	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update user", err)
		return
	}

	utils.Success(w, user)
}

// UploadAvatar téléverse l'avatar vers Cloudinary et enregistre son URL
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if !middleware.IsOwnerOrAdmin(r, id) {
		utils.ErrorSimple(w, http.StatusForbidden, "forbidden")
		return
	}

	if cloudinarySvc == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "image upload is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "could not parse multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing avatar file")
		return
	}
	defer file.Close()

	if err := validateImageUpload(header); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := cloudinarySvc.UploadAvatar(r.Context(), file, id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar", err)
		return
	}

	currentUser, _ := middleware.GetUserFromContext(r)

	_, err = database.DB.Exec(r.Context(), `
		UPDATE users SET avatar = $2, updated_at = NOW(), updated_by = $3
		WHERE id = $1 AND deleted_at IS NULL
	`, id, url, currentUser.ID)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save avatar", err)
		return
	}

	utils.Success(w, map[string]string{"avatar": url})
}

// GetUserBadgesByID retourne les badges gagnés d'un utilisateur (profil public)
func GetUserBadgesByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	badges, err := badgeService.GetUserBadges(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load badges", err)
		return
	}

	utils.Success(w, badges)
}
