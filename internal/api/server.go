// Package api implements the HTTP API server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

const (
	apiName    = "LaunchDeck API"
	apiVersion = "1.0.0"
)

// Options configures the API server.
type Options struct {
	IconsDir      string
	WallpapersDir string
	MaxUploadSize int64
	CORSOrigins   []string
}

// Server is the HTTP API server.
type Server struct {
	store     store.Store
	services  *Services
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
	maxUpload int64
}

// NewServer assembles the router, middleware, and routes.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(clientIPMiddleware)
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig(apiName, apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:     st,
		services:  services,
		router:    router,
		api:       humaAPI,
		logger:    logger,
		maxUpload: opts.MaxUploadSize,
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerSiteRoutes()
	s.registerCategoryRoutes()
	s.registerSettingsRoutes()
	s.registerWallpaperRoutes()
	s.registerFontRoutes()
	s.registerWidgetRoutes()
	s.registerSearchRoutes()
	s.registerPageMetaRoutes()
	s.registerBackupRoutes()

	// Stored media is served straight off disk.
	router.Handle("/assets/icons/*", http.StripPrefix("/assets/icons/",
		http.FileServer(http.Dir(opts.IconsDir))))
	router.Handle("/assets/wallpapers/*", http.StripPrefix("/assets/wallpapers/",
		http.FileServer(http.Dir(opts.WallpapersDir))))

	// Multipart upload sits outside huma.
	router.Post("/api/v1/wallpapers", s.handleWallpaperUpload)

	return s
}

// Handler returns the root http.Handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}
