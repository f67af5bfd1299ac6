package utils

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/s-soya2421/muscle-pal-sub000/internal/database"
	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
)

// LoadAuthor charge les informations publiques d'un utilisateur depuis son ID
func LoadAuthor(ctx context.Context, userID string) (*model.UserAuthor, error) {
	if userID == "" {
		return nil, nil
	}

	var author model.UserAuthor
	var avatar sql.NullString

	err := database.DB.QueryRow(ctx, `
		SELECT id, name, avatar
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`, userID).Scan(&author.ID, &author.Name, &avatar)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Utilisateur non trouvé, retourner nil sans erreur
		}
		return nil, err
	}

	author.Avatar = NullStringToString(avatar)
	return &author, nil
}

// EnrichPostWithAuthor ajoute les informations de l'auteur à un post
func EnrichPostWithAuthor(ctx context.Context, post *model.Post) {
	if post == nil {
		return
	}
	author, err := LoadAuthor(ctx, post.UserID)
	if err == nil {
		post.Author = author
	}
}

// EnrichCommentWithAuthor ajoute les informations de l'auteur à un commentaire
func EnrichCommentWithAuthor(ctx context.Context, comment *model.Comment) {
	if comment == nil {
		return
	}
	author, err := LoadAuthor(ctx, comment.UserID)
	if err == nil {
		comment.Author = author
	}
}
