package server

import (
	"log/slog"
	"time"

	"account-server/confs"
	httpHandler "account-server/handlers/http"
	"account-server/uploads"
	"account-server/usecases"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app      *gin.Engine
	cfg      *confs.Config
	accounts *usecases.AccountUseCase
	uploads  *uploads.LocalStore
}

func NewServer(cfg *confs.Config, accounts *usecases.AccountUseCase, store *uploads.LocalStore) *Server {
	gin.SetMode(cfg.GinMode)

	app := gin.New()
	app.Use(gin.Recovery(), requestLogger())

	s := &Server{
		app:      app,
		cfg:      cfg,
		accounts: accounts,
		uploads:  store,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() *gin.Engine { return s.app }

func (s *Server) setupRoutes() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	if len(s.cfg.CORSAllowedOrigins) > 0 {
		config.AllowOrigins = s.cfg.CORSAllowedOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	if s.uploads != nil {
		s.app.Static("/uploads", s.uploads.Dir())
		s.app.MaxMultipartMemory = s.cfg.MaxUploadBytes
	}

	accountHandler := httpHandler.NewAccountHandler(s.accounts, s.uploads)

	api := s.app.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", accountHandler.Login)
			auth.POST("/signup", accountHandler.Signup)
			auth.POST("/forgot-password", accountHandler.ForgotPassword)
		}
	}
}

func (s *Server) Start() error {
	addr := "0.0.0.0:" + s.cfg.Port
	slog.Info("starting account server", "addr", addr, "mode", s.cfg.GinMode)
	return s.app.Run(addr)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
