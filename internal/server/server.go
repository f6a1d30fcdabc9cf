package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/discuss/backend/internal/auth"
	"github.com/emilythestrangee/discuss/backend/internal/config"
	"github.com/emilythestrangee/discuss/backend/internal/database"
	"github.com/emilythestrangee/discuss/backend/internal/forum"
	"github.com/emilythestrangee/discuss/backend/internal/handlers"
	"github.com/emilythestrangee/discuss/backend/internal/middleware"
	"github.com/emilythestrangee/discuss/backend/internal/repository"
)

const communityCacheSize = 256

type Server struct {
	cfg      config.Config
	store    forum.Store
	services handlers.Services
	handler  *handlers.Handler
}

// OpenStore connects the store named by cfg.StoreDriver. The returned
// function releases it.
func OpenStore(cfg config.Config) (forum.Store, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.New(cfg.DatabaseURL, cfg.DBLogLevel)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgres(db), db.Close, nil
	case config.DriverMemory:
		log.Println("⚠️  Using the in-memory store, data is lost on restart")
		return repository.NewMemory(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// New wires the forum services over store.
func New(cfg config.Config, store forum.Store) (*Server, error) {
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTPreviousSecrets, cfg.JWTIssuer, cfg.TokenTTL)
	communities, err := forum.NewCommunities(store, communityCacheSize)
	if err != nil {
		return nil, err
	}

	services := handlers.Services{
		Accounts:    forum.NewAccounts(store, tokens),
		Communities: communities,
		Content:     forum.NewContent(store, communities),
		Ledger:      forum.NewLedger(store),
	}
	return &Server{
		cfg:      cfg,
		store:    store,
		services: services,
		handler:  handlers.NewHandler(services),
	}, nil
}

// Services exposes the wired forum services, e.g. for seeding.
func (s *Server) Services() handlers.Services {
	return s.services
}

// NewServer creates and configures the HTTP server
func NewServer(cfg config.Config, store forum.Store) (*http.Server, error) {
	s, err := New(cfg, store)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", cfg.Port)
	return server, nil
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	switch s.cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(s.cfg.GinMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())

	// CORS configuration
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(s.cfg.CORSOrigins) == 1 && s.cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", s.healthHandler)

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Public reads
		api.GET("/subreddits", s.handler.Subreddit.GetSubreddits)
		api.GET("/subreddits/:id/posts", s.handler.Subreddit.GetSubredditPosts)
		api.GET("/users/:username/posts", s.handler.User.GetUserPosts)
		api.GET("/posts", s.handler.Post.GetPosts)
		api.GET("/posts/:id", s.handler.Post.GetPost)
		api.GET("/posts/:id/comments", s.handler.Comment.GetComments)
		api.GET("/search", s.handler.Post.SearchPosts)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.services.Accounts))
		{
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.POST("/subreddits", s.handler.Subreddit.CreateSubreddit)
			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.POST("/posts/:id/vote", s.handler.Post.VotePost)
			protected.POST("/posts/:id/comments", s.handler.Comment.CreateComment)
			protected.POST("/comments/:id/vote", s.handler.Comment.VoteComment)
		}
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	stats := s.store.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
