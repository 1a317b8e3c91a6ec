package server

import (
	"context"
	"errors"
	"fmt"
	L "hourbox/logger"
	"hourbox/server/store"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

// Server is the remote session store: one whole-document session list per
// user, last write wins.
type Server struct {
	store       store.Store
	jwtSecret   string
	targetHours float64
	now         func() time.Time
	engine      *gin.Engine
}

func New(st store.Store, jwtSecret string, targetHours float64) *Server {
	if L.IsVerbose() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{store: st, jwtSecret: jwtSecret, targetHours: targetHours, now: time.Now}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), LoggerMiddleware(), MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", AuthMiddleware(s.jwtSecret))
	{
		api.GET("/data", s.getData)
		api.PUT("/data", s.putData)
		api.POST("/data", s.putData)
		api.GET("/export", s.export)
	}
	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on listen until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, listen string) error {
	srv := &http.Server{Addr: listen, Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		L.Info(fmt.Sprintf("hourbox serve listening on %s", listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		L.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SHUTDOWN_TIMEOUT)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
