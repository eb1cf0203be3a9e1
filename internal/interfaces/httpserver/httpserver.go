package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"web-mcp/internal/infrastructure/config"
	"web-mcp/internal/interfaces/httpserver/middlewares"
	"web-mcp/internal/interfaces/httpserver/routes/mcp"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	router   *gin.Engine
	config   *config.Config
	mcpRoute *mcp.MCPRoute
}

func NewHTTPServer(
	cfg *config.Config,
	mcpRoute *mcp.MCPRoute,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	// Paths match exactly; /sse/ is not /sse
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.CORS())
	router.Use(middlewares.MetricsRecorder())

	server := &HTTPServer{
		router:   router,
		config:   cfg,
		mcpRoute: mcpRoute,
	}
	server.setupRoutes()
	return server
}

func (s *HTTPServer) setupRoutes() {
	// Liveness probe used by hosting platforms
	s.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Health check endpoints
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "web-mcp"})
	})

	s.router.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "service": "web-mcp"})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register MCP routes
	s.mcpRoute.RegisterRouter(s.router)

	// Unknown paths get an empty 404
	s.router.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})
}

// Handler exposes the router for in-process serving.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Str("sse_path", s.config.SSEPath).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	// SSE sessions stay open until the client leaves, so a deadline bounds the drain
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP server did not shut down cleanly")
		return srv.Close()
	}
	return <-errCh
}
