package handler

import (
	"net/http"

	"github.com/s-soya2421/muscle-pal-sub000/internal/middleware"
	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"
)

// GetAvailableBadges liste le catalogue des badges actifs
func GetAvailableBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := badgeService.GetAvailableBadges(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load badges", err)
		return
	}

	utils.Success(w, badges)
}

// GetMyBadges retourne les badges gagnés de l'utilisateur courant
func GetMyBadges(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	badges, err := badgeService.GetUserBadges(r.Context(), user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load badges", err)
		return
	}

	utils.Success(w, badges)
}
