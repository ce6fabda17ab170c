package router

import (
	"log"

	"github.com/anonto42/fritter/backend/internal/handlers"
	"github.com/anonto42/fritter/backend/internal/metrics"
	"github.com/anonto42/fritter/backend/internal/middleware"
	"github.com/anonto42/fritter/backend/internal/repositories"
	"github.com/anonto42/fritter/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// Repositories is every store the API reads and writes
type Repositories struct {
	Users     repositories.UserRepository
	Follows   repositories.FollowRepository
	Freets    repositories.FreetRepository
	Profiles  repositories.ProfileRepository
	Bookmarks repositories.BookmarkRepository
	Tags      repositories.TagRepository
}

// SetupRoutes builds the services on top of repos and mounts every route
// under /api/v1. firebaseAuth may be nil.
func SetupRoutes(e *echo.Echo, repos Repositories, jwtSecret string, firebaseAuth handlers.TokenVerifier) {
	e.Use(metrics.Middleware())

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Services ---
	resolver := services.NewUserResolver(repos.Users)
	followService := services.NewFollowService(repos.Follows, resolver)
	feedService := services.NewFeedService(repos.Follows, repos.Freets, resolver)
	freetService := services.NewFreetService(repos.Freets, repos.Bookmarks, repos.Tags, resolver)
	profileService := services.NewProfileService(repos.Profiles, repos.Bookmarks, resolver)
	bookmarkService := services.NewBookmarkService(repos.Bookmarks, repos.Freets, repos.Profiles)
	tagService := services.NewTagService(repos.Tags, repos.Freets)
	userService := services.NewUserService(repos.Users, repos.Follows, repos.Freets, resolver, profileService, freetService)

	requireAuth := middleware.JWTAuthMiddleware(jwtSecret)
	api := e.Group("/api/v1")

	// Auth
	authHandler := handlers.NewAuthHandler(userService, firebaseAuth, jwtSecret)
	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	if firebaseAuth == nil {
		log.Println("Firebase not configured; /auth/firebase-login disabled.")
	}
	log.Println("Auth routes configured.")

	// Users
	handlers.NewUserHandler(userService).RegisterUserRoutes(api, requireAuth)
	log.Println("User routes configured.")

	// Follows and feed
	followGroup := api.Group("/follow")
	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(followGroup)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(followGroup, requireAuth)
	log.Println("Follow and feed routes configured.")

	// Freets
	handlers.NewFreetHandler(freetService, tagService).RegisterFreetRoutes(api.Group("/freets"), requireAuth)
	log.Println("Freet routes configured.")

	// Profiles
	handlers.NewProfileHandler(profileService).RegisterProfileRoutes(api.Group("/profiles"), requireAuth)
	log.Println("Profile routes configured.")

	// Bookmarks
	handlers.NewBookmarkHandler(bookmarkService).RegisterBookmarkRoutes(api.Group("/bookmarks"), requireAuth)
	log.Println("Bookmark routes configured.")

	// Tags
	handlers.NewTagHandler(tagService).RegisterTagRoutes(api.Group("/tags"), requireAuth)
	log.Println("Tag routes configured.")

	log.Println("All routes configured.")
}
