package router

import (
	"log"

	"github.com/anonto42/sach-wave/backend/internal/handlers"
	"github.com/anonto42/sach-wave/backend/internal/metrics"
	"github.com/anonto42/sach-wave/backend/internal/middleware"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/anonto42/sach-wave/backend/internal/validators"
	"github.com/labstack/echo/v4"
)

// Services holds one instance of every domain service, wired to a repository set.
type Services struct {
	Auth          *services.AuthService
	Profiles      *services.ProfileService
	Posts         *services.PostService
	Reactions     *services.ReactionService
	Stories       *services.StoryService
	Follows       *services.FollowService
	Feed          *services.FeedService
	Messages      *services.MessageService
	Notifications *services.NotificationService
	Gamification  *services.GamificationService
	Admin         *services.AdminService
}

// NewServices wires the services together. ranker may be nil.
func NewServices(repos *repositories.Set, ranker services.Ranker, authOpts services.AuthOptions) *Services {
	notifications := services.NewNotificationService(repos.Notifications)
	gamification := services.NewGamificationService(repos.Points, repos.Profiles, ranker)

	return &Services{
		Auth:          services.NewAuthService(repos.Users, gamification, authOpts),
		Profiles:      services.NewProfileService(repos.Profiles, repos.Users),
		Posts:         services.NewPostService(repos, notifications, gamification),
		Reactions:     services.NewReactionService(repos, notifications),
		Stories:       services.NewStoryService(repos, gamification),
		Follows:       services.NewFollowService(repos, notifications, gamification),
		Feed:          services.NewFeedService(repos),
		Messages:      services.NewMessageService(repos),
		Notifications: notifications,
		Gamification:  gamification,
		Admin:         services.NewAdminService(repos, gamification),
	}
}

// New returns an echo instance with the validator, error handler and every route installed.
// Global middleware is left to the caller.
func New(svc *Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	e.Use(metrics.Middleware())
	SetupRoutes(e, svc)
	return e
}

// SetupRoutes configures all application routes
func SetupRoutes(e *echo.Echo, svc *Services) {
	e.GET("/health", handlers.HealthCheck)
	e.GET("/api/health", handlers.HealthCheck)

	auth := middleware.JWTAuthMiddleware(svc.Auth)
	api := e.Group("/api")

	// --- Routes with public endpoints ---
	handlers.NewAuthHandler(svc.Auth).RegisterAuthRoutes(api.Group("/auth"), auth)
	handlers.NewProfileHandler(svc.Profiles).RegisterProfileRoutes(api.Group("/profile"), auth)
	log.Println("Auth and profile routes configured.")

	// --- Protected routes (require JWT authentication) ---
	handlers.NewPostHandler(svc.Posts, svc.Feed).RegisterPostRoutes(api.Group("/posts", auth))
	handlers.NewStoryHandler(svc.Stories).RegisterStoryRoutes(api.Group("/stories", auth))
	handlers.NewReactionHandler(svc.Reactions).RegisterReactionRoutes(api.Group("/reactions", auth))
	log.Println("Content routes configured.")

	handlers.NewFollowHandler(svc.Follows).RegisterFollowRoutes(api.Group("/followers", auth))
	handlers.NewMessageHandler(svc.Messages).RegisterMessageRoutes(api.Group("/messages", auth))
	handlers.NewNotificationHandler(svc.Notifications).RegisterNotificationRoutes(api.Group("/notifications", auth))
	log.Println("Social routes configured.")

	handlers.NewGamificationHandler(svc.Gamification).RegisterGamificationRoutes(api.Group("/gamification", auth))
	handlers.NewExploreHandler(svc.Feed).RegisterExploreRoutes(api.Group("/explore", auth))
	handlers.NewAdminHandler(svc.Admin).RegisterAdminRoutes(api.Group("/admin", auth))
	log.Println("Gamification, explore and admin routes configured.")

	log.Println("All routes configured.")
}
