package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myphoto-inc/myphoto/internal/interfaces/http/middleware"
	"github.com/myphoto-inc/myphoto/internal/interfaces/http/routes"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 120 * time.Second
)

// Router owns the gin engine and the HTTP server serving it.
type Router struct {
	*Container
	server *http.Server
}

// NewRouter wires every dependency and registers all routes.
func NewRouter(deps Dependencies) (*Router, error) {
	container, err := NewContainer(deps)
	if err != nil {
		return nil, err
	}

	r := &Router{Container: container}
	r.SetupRoutes()
	return r, nil
}

// SetupRoutes installs the global middleware chain and the route groups.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log.Named("http")))
	r.engine.Use(middleware.Recovery(r.log.Named("http")))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(r.accessGate.Handle())

	loginLimit := middleware.RateLimit(r.loginLimiter, r.log.Named("ratelimit"))

	r.engine.GET("/healthz", r.hdlrs.healthHandler.Check)

	api := r.engine.Group("/api")

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.authHandler,
		PasskeyHandler: r.hdlrs.passkeyHandler,
		LoginLimit:     loginLimit,
	})
	routes.SetupLibraryRoutes(api, &routes.LibraryRouteConfig{
		CategoryHandler: r.hdlrs.categoryHandler,
		PhotoHandler:    r.hdlrs.photoHandler,
		PasskeyHandler:  r.hdlrs.passkeyHandler,
	})
	routes.SetupGalleryRoutes(api, &routes.GalleryRouteConfig{
		GalleryHandler: r.hdlrs.galleryHandler,
		UploadHandler:  r.hdlrs.uploadHandler,
		UnlockLimit:    loginLimit,
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run serves on addr until Shutdown is called.
func (r *Router) Run(addr string) error {
	r.server = &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	r.log.Infow("http server listening", "addr", addr)
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (r *Router) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}
