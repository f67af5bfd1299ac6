package handler

import (
	"net/http"

	"github.com/s-soya2421/muscle-pal-sub000/internal/config"
	"github.com/s-soya2421/muscle-pal-sub000/internal/database"
	"github.com/s-soya2421/muscle-pal-sub000/internal/logger"
	"github.com/s-soya2421/muscle-pal-sub000/internal/services"
	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"
)

// Services partagés par tous les handlers, initialisés au démarrage
var (
	badgeService     *services.BadgeService
	challengeService *services.ChallengeService
	cloudinarySvc    *services.CloudinaryService
)

// Init câble les services sur le pool de connexions
func Init(cfg *config.Config) {
	badgeService = services.NewBadgeService(database.DB)
	challengeService = services.NewChallengeService(database.DB, badgeService)

	var err error
	cloudinarySvc, err = services.NewCloudinaryService(cfg)
	if err != nil {
		// L'upload d'images est optionnel en développement local
		logger.Warning("Cloudinary disabled: %v", err)
		cloudinarySvc = nil
	}
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
