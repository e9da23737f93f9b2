package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/handler"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Feed   *handler.FeedHandler
	Vote   *handler.VoteHandler
	Verify *handler.VerifyHandler
	Search *handler.SearchHandler
	Author *handler.AuthorHandler
	Stats  *handler.StatsHandler
	Export *handler.ExportHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks (before API group, no rate limit)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus metrics
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	// Feed routes
	feedLimiter := middleware.NewFeedRateLimiter()
	api.Get("/feed", h.Feed.GetFeed, feedLimiter.Handler())
	api.Post("/feed/refresh", h.Feed.Refresh, feedLimiter.Handler())

	// Post routes
	api.Post("/posts", h.Feed.CreatePost, feedLimiter.Handler())
	api.Get("/posts/:postId", h.Feed.GetPost, feedLimiter.Handler())
	api.Post("/posts/:postId/like", h.Feed.Like, feedLimiter.Handler())

	// Vote routes
	voteLimiter := middleware.NewVoteRateLimiter()
	api.Post("/posts/:postId/votes", h.Vote.Submit, voteLimiter.Handler())

	// Verification routes
	verifyLimiter := middleware.NewVerifyRateLimiter()
	api.Post("/posts/:postId/verify", h.Verify.Verify, verifyLimiter.Handler())

	// Search routes
	searchLimiter := middleware.NewSearchRateLimiter()
	api.Post("/search", h.Search.Search, searchLimiter.Handler())

	// Author routes
	api.Get("/authors/:author", h.Author.GetByAuthor, feedLimiter.Handler())

	// User standing routes
	api.Get("/users/:userId", h.Stats.GetUser, feedLimiter.Handler())

	// Stats routes
	statsLimiter := middleware.NewStatsRateLimiter()
	api.Get("/stats", h.Stats.GetStats, statsLimiter.Handler())

	// Export routes
	exportLimiter := middleware.NewExportRateLimiter()
	api.Get("/export", h.Export.Export, exportLimiter.Handler())
}
