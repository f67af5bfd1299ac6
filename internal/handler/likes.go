package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/s-soya2421/muscle-pal-sub000/internal/middleware"
	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"
)

var validEntityTypes = map[model.EntityType]bool{
	model.EntityTypePost:      true,
	model.EntityTypeComment:   true,
	model.EntityTypeChallenge: true,
}

// ToggleLike ajoute ou retire un like (endpoint générique)
func ToggleLike(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	vars := mux.Vars(r)
	entityType := model.EntityType(vars["entityType"])
	entityID := vars["entityId"]

	if !validEntityTypes[entityType] {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid entity type")
		return
	}

	liked, err := utils.ToggleLike(r.Context(), user.ID, entityType, entityID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not toggle like", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"liked":      liked,
		"entityType": entityType,
		"entityId":   entityID,
	})
}

// GetLikeStatus récupère le statut de like pour une entité
func GetLikeStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityType := model.EntityType(vars["entityType"])
	entityID := vars["entityId"]

	if !validEntityTypes[entityType] {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid entity type")
		return
	}

	// L'utilisateur est optionnel
	user, _ := middleware.GetUserFromContext(r)
	var userID *string
	if user.ID != "" {
		userID = &user.ID
	}

	info, err := utils.GetLikeInfo(r.Context(), userID, entityType, entityID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not get like info", err)
		return
	}

	utils.Success(w, info)
}
