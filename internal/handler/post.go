package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/s-soya2421/muscle-pal-sub000/internal/database"
	"github.com/s-soya2421/muscle-pal-sub000/internal/logger"
	"github.com/s-soya2421/muscle-pal-sub000/internal/middleware"
	model "github.com/s-soya2421/muscle-pal-sub000/internal/models"
	"github.com/s-soya2421/muscle-pal-sub000/internal/scanner"
	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"
)

// maxImageSize taille maximale d'une image uploadée (5 Mo)
const maxImageSize = 5 << 20

// maxPostImages nombre maximal d'images par post
const maxPostImages = 4

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// validateImageUpload vérifie le type MIME déclaré et la taille d'un fichier
func validateImageUpload(header *multipart.FileHeader) error {
	if header.Size > maxImageSize {
		return fmt.Errorf("image too large (max 5MB)")
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return fmt.Errorf("unsupported image type: %s", contentType)
	}

	return nil
}

// CreatePost crée un post avec un contenu texte et jusqu'à 4 images
func CreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := r.ParseMultipartForm(maxPostImages * maxImageSize); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "could not parse multipart form")
		return
	}

	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "content is required")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) > maxPostImages {
		utils.ErrorSimple(w, http.StatusBadRequest, fmt.Sprintf("too many images (max %d)", maxPostImages))
		return
	}

	for _, header := range files {
		if err := validateImageUpload(header); err != nil {
			utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	ctx := r.Context()

	// Créer le post d'abord pour obtenir son ID (utilisé comme public ID Cloudinary)
	var post model.Post
	err = database.DB.QueryRow(ctx, `
		INSERT INTO posts(user_id, content, image_urls, created_at, updated_at)
		VALUES($1, $2, '{}', NOW(), NOW())
		RETURNING id, user_id, content, created_at, updated_at
	`, user.ID, content).Scan(&post.ID, &post.UserID, &post.Content, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create post", err)
		return
	}

	// Upload des images puis rattachement au post
	if len(files) > 0 {
		if cloudinarySvc == nil {
			utils.ErrorSimple(w, http.StatusServiceUnavailable, "image upload is not configured")
			return
		}

		var urls []string
		for i, header := range files {
			file, err := header.Open()
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "could not read image", err)
				return
			}

			url, err := cloudinarySvc.UploadPostImage(ctx, file, post.ID, i)
			file.Close()
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "could not upload image", err)
				return
			}
			urls = append(urls, url)
		}

		_, err = database.DB.Exec(ctx, `
			UPDATE posts SET image_urls = $2, updated_at = NOW() WHERE id = $1
		`, post.ID, pq.Array(urls))

		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not save image urls", err)
			return
		}
		post.ImageURLs = urls
	}

	utils.EnrichPostWithAuthor(ctx, &post)

	logger.Success("User %s created post %s (%d images)", user.ID, post.ID, len(files))
	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: post})
}

// GetPosts retourne le fil des posts, du plus récent au plus ancien, paginé
// via limit/offset. user_liked est renseigné si la requête est authentifiée.
func GetPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, offset := parsePagination(r, 20)

	// L'utilisateur courant est optionnel (OptionalAuth)
	var currentUserID string
	if user, err := middleware.GetUserFromContext(r); err == nil {
		currentUserID = user.ID
	}

	rows, err := database.DB.Query(ctx, `
		SELECT
			p.id, p.user_id, p.content, p.image_urls,
			(SELECT COUNT(*) FROM likes l WHERE l.entity_type = 'post' AND l.entity_id = p.id) as likes,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id AND c.deleted_at IS NULL) as comments_count,
			CASE WHEN $1 = '' THEN NULL ELSE EXISTS(
				SELECT 1 FROM likes l WHERE l.user_id = $1 AND l.entity_type = 'post' AND l.entity_id = p.id
			) END as user_liked,
			p.deleted_by, p.created_at, p.updated_at, p.deleted_at
		FROM posts p
		WHERE p.deleted_at IS NULL
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, currentUserID, limit, offset)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query posts", err)
		return
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		post, err := scanner.ScanPost(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan post", err)
			return
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read posts", err)
		return
	}

	// Enrichissement auteur après itération (une seule connexion active à la fois)
	for i := range posts {
		utils.EnrichPostWithAuthor(ctx, &posts[i])
	}

	utils.Success(w, posts)
}

// GetPostById retourne un post avec son auteur et ses informations de like
func GetPostById(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var currentUserID string
	if user, err := middleware.GetUserFromContext(r); err == nil {
		currentUserID = user.ID
	}

	row := database.DB.QueryRow(ctx, `
		SELECT
			p.id, p.user_id, p.content, p.image_urls,
			(SELECT COUNT(*) FROM likes l WHERE l.entity_type = 'post' AND l.entity_id = p.id) as likes,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id AND c.deleted_at IS NULL) as comments_count,
			CASE WHEN $2 = '' THEN NULL ELSE EXISTS(
				SELECT 1 FROM likes l WHERE l.user_id = $2 AND l.entity_type = 'post' AND l.entity_id = p.id
			) END as user_liked,
			p.deleted_by, p.created_at, p.updated_at, p.deleted_at
		FROM posts p
		WHERE p.id = $1 AND p.deleted_at IS NULL
	`, id, currentUserID)

	post, err := scanner.ScanPost(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "post not found")
		return
	}

	utils.EnrichPostWithAuthor(ctx, post)

	utils.Success(w, post)
}

// DeletePost soft delete un post (propriétaire ou admin)
func DeletePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	var ownerID string
	err := database.DB.QueryRow(ctx,
		`SELECT user_id FROM posts WHERE id = $1 AND deleted_at IS NULL`,
		id,
	).Scan(&ownerID)

	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "post not found")
		return
	}

	if !middleware.IsOwnerOrAdmin(r, ownerID) {
		utils.ErrorSimple(w, http.StatusForbidden, "forbidden")
		return
	}

	currentUser, _ := middleware.GetUserFromContext(r)

	_, err = database.DB.Exec(ctx, `
		UPDATE posts SET deleted_at = NOW(), deleted_by = $2 WHERE id = $1
	`, id, currentUser.ID)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete post", err)
		return
	}

	utils.Success(w, map[string]bool{"deleted": true})
}

// CreateComment ajoute un commentaire à un post
func CreateComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	payload.Content = strings.TrimSpace(payload.Content)
	if payload.Content == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "content is required")
		return
	}

	ctx := r.Context()

	var comment model.Comment
	err = database.DB.QueryRow(ctx, `
		INSERT INTO comments(post_id, user_id, content, created_at, updated_at)
		SELECT $1, $2, $3, NOW(), NOW()
		WHERE EXISTS(SELECT 1 FROM posts WHERE id = $1 AND deleted_at IS NULL)
		RETURNING id, post_id, user_id, content, created_at, updated_at
	`, postID, user.ID, payload.Content).Scan(
		&comment.ID, &comment.PostID, &comment.UserID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)

	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "post not found")
		return
	}

	utils.EnrichCommentWithAuthor(ctx, &comment)

	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: comment})
}

// GetComments retourne les commentaires d'un post, du plus ancien au plus récent
func GetComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	ctx := r.Context()

	limit, offset := parsePagination(r, 50)

	rows, err := database.DB.Query(ctx, `
		SELECT id, post_id, user_id, content, created_at, updated_at, deleted_at
		FROM comments
		WHERE post_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, postID, limit, offset)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query comments", err)
		return
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		comment, err := scanner.ScanComment(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan comment", err)
			return
		}
		comments = append(comments, *comment)
	}

	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read comments", err)
		return
	}

	for i := range comments {
		utils.EnrichCommentWithAuthor(ctx, &comments[i])
	}

	utils.Success(w, comments)
}

// DeleteComment soft delete un commentaire (propriétaire ou admin)
func DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["commentId"]
	ctx := r.Context()

	var ownerID string
	err := database.DB.QueryRow(ctx,
		`SELECT user_id FROM comments WHERE id = $1 AND deleted_at IS NULL`,
		commentID,
	).Scan(&ownerID)

	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "comment not found")
		return
	}

	if !middleware.IsOwnerOrAdmin(r, ownerID) {
		utils.ErrorSimple(w, http.StatusForbidden, "forbidden")
		return
	}

	_, err = database.DB.Exec(ctx, `
		UPDATE comments SET deleted_at = NOW() WHERE id = $1
	`, commentID)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete comment", err)
		return
	}

	utils.Success(w, map[string]bool{"deleted": true})
}

// parsePagination lit limit/offset depuis la query string avec un défaut borné
func parsePagination(r *http.Request, defaultLimit int) (int, int) {
	limit := defaultLimit
	offset := 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
