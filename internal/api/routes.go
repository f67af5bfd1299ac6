package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"
	"github.com/s-soya2421/muscle-pal-sub000/internal/handler"
	"github.com/s-soya2421/muscle-pal-sub000/internal/middleware"
	"github.com/s-soya2421/muscle-pal-sub000/internal/utils"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	// Users
	authenticatedRoutes.HandleFunc("/users/me", handler.GetMe).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{id}", handler.UpdateUser).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/users/{id}/avatar", handler.UploadAvatar).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}/badges", handler.GetUserBadgesByID).Methods(http.MethodGet)

	// Challenges
	r.HandleFunc("/challenges", handler.GetChallenges).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/challenges/exclusive", handler.GetExclusiveChallenges).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/challenges/active", handler.GetUserActiveChallenges).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id}", handler.GetChallengeById).Methods(http.MethodGet)

	// Challenge participation
	authenticatedRoutes.HandleFunc("/challenges/{id}/join", handler.JoinChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges/{id}/join", handler.LeaveChallenge).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/challenges/{id}/pause", handler.PauseChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges/{id}/resume", handler.ResumeChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges/{id}/check-in", handler.CheckIn).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges/{id}/progress", handler.GetChallengeProgress).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/challenges/{id}/today", handler.GetTodayCheckIn).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id}/stats", handler.GetChallengeStats).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{id}/leaderboard", handler.GetChallengeLeaderboard).Methods(http.MethodGet)

	// Badges
	r.HandleFunc("/badges", handler.GetAvailableBadges).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/badges/me", handler.GetMyBadges).Methods(http.MethodGet)

	// Posts
	r.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}", handler.GetPostById).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)

	// Comments
	r.HandleFunc("/posts/{id}/comments", handler.GetComments).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/posts/{id}/comments", handler.CreateComment).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/posts/{id}/comments/{commentId}", handler.DeleteComment).Methods(http.MethodDelete)

	// Likes system (générique)
	authenticatedRoutes.HandleFunc("/likes/{entityType}/{entityId}/toggle", handler.ToggleLike).Methods(http.MethodPost)
	r.HandleFunc("/likes/{entityType}/{entityId}", handler.GetLikeStatus).Methods(http.MethodGet)

	// Admin
	authenticatedRoutes.HandleFunc("/admin/challenges", handler.CreateChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/admin/challenges/{id}", handler.UpdateChallenge).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/admin/challenges/{id}", handler.DeleteChallenge).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/admin/badges", handler.CreateBadge).Methods(http.MethodPost)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
