package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/s-soya2421/muscle-pal-sub000/internal/database"
	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()
	var user model.UserProfile
	var hashedPassword string

	row := database.DB.QueryRow(ctx,
		`SELECT id, name, email, avatar, bio, goal, is_admin,
			join_date, created_at, updated_at, created_by, updated_by, password_hash
		 FROM users WHERE email=$1 AND deleted_at IS NULL`,
		req.Email,
	)

	scanned, err := scanUserWithPassword(row, &hashedPassword)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	user = *scanned

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if token == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := utils.InvalidateSession(r.Context(), token); err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "session not found or already logged out")
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		utils.ErrorSimple(w, http.StatusBadRequest, "name, email and a password of at least 8 characters are required")
		return
	}

	ctx := r.Context()
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	var user model.UserProfile
	err = database.DB.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, join_date, created_at, updated_at)
		 VALUES($1, $2, $3, NOW(), NOW(), NOW())
		 RETURNING id, name, email, is_admin, join_date, created_at, updated_at`,
		req.Name, req.Email, string(hashed),
	).Scan(&user.ID, &user.Name, &user.Email, &user.IsAdmin,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		utils.Error(w, http.StatusConflict, "could not create user", err)
		return
	}

	// L'utilisateur se crée lui-même
	_, err = database.DB.Exec(ctx,
		`UPDATE users SET created_by=$1 WHERE id=$1`,
		user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update created_by", err)
		return
	}
	user.CreatedBy = &user.ID

	// Auto-login après inscription
	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.JSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"user":  user,
			"token": token,
		},
	})
}

// scanUserWithPassword scanne un profil suivi de la colonne password_hash
func scanUserWithPassword(row interface {
	Scan(dest ...interface{}) error
}, hash *string) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar, bio, goal, updatedBy sql.NullString

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &avatar, &bio, &goal, &user.IsAdmin,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt, &user.CreatedBy, &updatedBy,
		hash,
	)
	if err != nil {
		return nil, err
	}

	user.Avatar = utils.NullStringToString(avatar)
	user.Bio = utils.NullStringToString(bio)
	user.Goal = utils.NullStringToString(goal)
	user.UpdatedBy = utils.NullStringToPointer(updatedBy)

	return &user, nil
}
