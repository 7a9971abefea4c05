package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booktracker/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())
	router.Use(RequestIDMiddleware())

	userID := cfg.UserID
	if userID == 0 {
		userID = entities.DefaultUserID
	}
	router.Use(UserContextMiddleware(userID))

	var pinger Pinger
	if cfg.Database != nil {
		pinger = cfg.Database
	}
	health := NewHealthController(pinger, cfg.Version)
	booksController := NewBooksController(cfg.Library, cfg.Auditor)
	profileController := NewProfileController(cfg.Profiles, cfg.Auditor)
	statsController := NewStatsController(cfg.Stats)
	auditController := NewAuditController(cfg.Auditor)

	// Health endpoints
	router.GET("/", health.Root)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	api := router.Group("/api")

	// Books API endpoints; the collection routes also answer with a trailing slash
	api.POST("/books", booksController.AddBook)
	api.POST("/books/", booksController.AddBook)
	api.GET("/books", booksController.ListBooks)
	api.GET("/books/", booksController.ListBooks)
	api.GET("/books/:id", booksController.GetBook)
	api.PUT("/books/:id", booksController.UpdateBook)
	api.DELETE("/books/:id", booksController.DeleteBook)

	// Profile endpoints
	api.GET("/profile", profileController.GetProfile)
	api.GET("/profile/", profileController.GetProfile)
	api.PUT("/profile", profileController.UpdateProfile)
	api.PUT("/profile/", profileController.UpdateProfile)

	// Statistics endpoints
	api.GET("/stats/summary", statsController.Summary)
	api.GET("/stats/books_per_month", statsController.BooksPerMonth)
	api.GET("/stats/pages_read_per_month", statsController.PagesReadPerMonth)

	// Audit trail
	api.GET("/audit", auditController.GetAuditEvents)

	return router
}
