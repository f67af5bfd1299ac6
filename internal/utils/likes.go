package utils

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/s-soya2421/muscle-pal-sub000/internal/database"
	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
)

// AddLike ajoute un like pour une entité
func AddLike(ctx context.Context, userID string, entityType model.EntityType, entityID string) error {
	_, err := database.DB.Exec(ctx, `
		INSERT INTO likes (user_id, entity_type, entity_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, entity_type, entity_id) DO NOTHING
	`, userID, entityType, entityID)

	return err
}

// RemoveLike retire un like pour une entité
func RemoveLike(ctx context.Context, userID string, entityType model.EntityType, entityID string) error {
	_, err := database.DB.Exec(ctx, `
		DELETE FROM likes
		WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
	`, userID, entityType, entityID)

	return err
}

// ToggleLike ajoute ou retire un like selon l'état actuel (retourne true si liked, false si unliked)
func ToggleLike(ctx context.Context, userID string, entityType model.EntityType, entityID string) (bool, error) {
	// Vérifier si le like existe déjà
	var exists bool
	err := database.DB.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM likes
			WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
		)
	`, userID, entityType, entityID).Scan(&exists)

	if err != nil {
		return false, err
	}

	if exists {
		// Unlike
		err = RemoveLike(ctx, userID, entityType, entityID)
		return false, err
	} else {
		// Like
		err = AddLike(ctx, userID, entityType, entityID)
		return true, err
	}
}

// GetLikeInfo récupère les informations de like pour une entité
func GetLikeInfo(ctx context.Context, userID *string, entityType model.EntityType, entityID string) (*model.LikeInfo, error) {
	var info model.LikeInfo

	// Compter le nombre total de likes
	err := database.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM likes
		WHERE entity_type = $1 AND entity_id = $2
	`, entityType, entityID).Scan(&info.TotalLikes)

	if err != nil {
		return nil, err
	}

	// Vérifier si l'utilisateur a liké (si un userID est fourni)
	if userID != nil && *userID != "" {
		var liked sql.NullBool
		err = database.DB.QueryRow(ctx, `
			SELECT TRUE FROM likes
			WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
			LIMIT 1
		`, *userID, entityType, entityID).Scan(&liked)

		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}

		info.UserLiked = liked.Valid && liked.Bool
	}

	return &info, nil
}
