package api

import (
	"github.com/akeshari98/wall-robot-control-system/api/i"
	"github.com/gin-gonic/gin"
)

// Router owns the HTTP surface: it mounts every controller's routes
// under a versioned base path, splitting them into a public group and a
// protected group guarded by the authorization middleware.
type Router struct {
	addr                    string
	baseURL                 string
	controllers             []i.Controller
	authorizationMiddleware gin.HandlerFunc
}

// Config holds the settings for creating a Router.
type Config struct {
	Addr    string // Address to listen on
	BaseURL string // Base URL for API routes
	// Controllers to mount; each registers its own public and
	// protected routes.
	Controllers []i.Controller
	// AuthorizationMiddleware guards the protected route group.
	AuthorizationMiddleware gin.HandlerFunc
}

// NewRouter creates a Router from the given configuration.
func NewRouter(config Config) *Router {
	return &Router{
		addr:                    config.Addr,
		baseURL:                 config.BaseURL,
		controllers:             config.Controllers,
		authorizationMiddleware: config.AuthorizationMiddleware,
	}
}

// Run registers every controller's routes and starts the HTTP server.
// Public routes need no credentials; protected routes pass through the
// authorization middleware first.
func (r *Router) Run() error {
	gin.ForceConsoleColor()
	router := gin.Default()

	// Setting up routes under baseURL
	api := router.Group(r.baseURL)

	{
		// Public routes (accessible without authentication)
		publicRoutes := api.Group("/v1")
		{
			for _, c := range r.controllers {
				c.RegisterPublic(publicRoutes)
			}
		}

		// Protected routes (authentication required)
		protectedRoutes := api.Group("/v1")
		protectedRoutes.Use(r.authorizationMiddleware)
		{
			for _, c := range r.controllers {
				c.RegisterProtected(protectedRoutes)
			}
		}
	}

	return router.Run(r.addr)
}
