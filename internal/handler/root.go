package handler

import (
	"net/http"

	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "MusclePal API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/users/me", "description": "Profil de l'utilisateur courant"},
				{"method": "GET", "path": "/users/{id}", "description": "Profil public d'un utilisateur"},
				{"method": "PUT", "path": "/users/{id}", "description": "Mettre à jour un profil"},
				{"method": "POST", "path": "/users/{id}/avatar", "description": "Upload avatar utilisateur"},
				{"method": "GET", "path": "/users/{id}/badges", "description": "Badges gagnés d'un utilisateur"},
			},
			"challenges": []map[string]string{
				{"method": "GET", "path": "/challenges", "description": "Challenges publics"},
				{"method": "GET", "path": "/challenges/exclusive", "description": "Challenges exclusifs (badge requis)"},
				{"method": "GET", "path": "/challenges/active", "description": "Challenges actifs de l'utilisateur courant"},
				{"method": "GET", "path": "/challenges/{id}", "description": "Détail d'un challenge"},
				{"method": "POST", "path": "/challenges/{id}/join", "description": "Rejoindre un challenge"},
				{"method": "DELETE", "path": "/challenges/{id}/join", "description": "Quitter un challenge"},
				{"method": "POST", "path": "/challenges/{id}/pause", "description": "Mettre en pause"},
				{"method": "POST", "path": "/challenges/{id}/resume", "description": "Reprendre"},
				{"method": "POST", "path": "/challenges/{id}/check-in", "description": "Check-in quotidien"},
				{"method": "GET", "path": "/challenges/{id}/progress", "description": "Progression de l'utilisateur courant"},
				{"method": "GET", "path": "/challenges/{id}/today", "description": "Check-in du jour"},
				{"method": "GET", "path": "/challenges/{id}/stats", "description": "Statistiques du challenge"},
				{"method": "GET", "path": "/challenges/{id}/leaderboard", "description": "Classement du challenge"},
			},
			"badges": []map[string]string{
				{"method": "GET", "path": "/badges", "description": "Catalogue des badges"},
				{"method": "GET", "path": "/badges/me", "description": "Badges de l'utilisateur courant"},
			},
			"posts": []map[string]string{
				{"method": "GET", "path": "/posts", "description": "Fil des posts"},
				{"method": "POST", "path": "/posts", "description": "Créer un post (multipart, images optionnelles)"},
				{"method": "GET", "path": "/posts/{id}", "description": "Détail d'un post"},
				{"method": "DELETE", "path": "/posts/{id}", "description": "Supprimer un post"},
				{"method": "GET", "path": "/posts/{id}/comments", "description": "Commentaires d'un post"},
				{"method": "POST", "path": "/posts/{id}/comments", "description": "Commenter un post"},
				{"method": "DELETE", "path": "/posts/{id}/comments/{commentId}", "description": "Supprimer un commentaire"},
			},
			"likes": []map[string]string{
				{"method": "POST", "path": "/likes/{entityType}/{entityId}", "description": "Toggle like (post/comment/challenge)"},
				{"method": "GET", "path": "/likes/{entityType}/{entityId}", "description": "Statut de like"},
			},
			"admin": []map[string]string{
				{"method": "POST", "path": "/admin/challenges", "description": "Créer un challenge"},
				{"method": "PUT", "path": "/admin/challenges/{id}", "description": "Mettre à jour un challenge"},
				{"method": "DELETE", "path": "/admin/challenges/{id}", "description": "Supprimer un challenge"},
				{"method": "POST", "path": "/admin/badges", "description": "Créer un badge"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
	}

	utils.Success(w, routes)
}
