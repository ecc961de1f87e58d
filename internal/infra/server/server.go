package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/insightflow/tasks-service/internal/infra/http/middleware"
)

// Options configura el engine HTTP.
type Options struct {
	ServiceName  string
	Version      string
	CORSOrigin   string
	ExposeErrors bool // detalle de los 500 en la respuesta (fuera de producción)
}

// NewEngine monta el engine de gin con el middleware global, las rutas del
// sistema (/, /health, /metrics, 404) y las rutas que registre cada dominio.
func NewEngine(opts Options, log *zap.Logger, endpoints map[string]string, register ...func(*gin.Engine)) *gin.Engine {
	r := gin.New()

	// Logger y métricas van por fuera de Recovery para ver también los 500 por panic.
	r.Use(
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.Recovery(log, opts.ExposeErrors),
		middleware.CORS(opts.CORSOrigin),
	)

	system := NewSystemHandler(opts.ServiceName, opts.Version, endpoints)
	r.GET("/", system.Banner)
	r.GET("/health", system.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	for _, fn := range register {
		fn(r)
	}

	r.NoRoute(system.NotFound)
	return r
}

// Run arranca el servidor y lo apaga ordenadamente al cancelar ctx.
func Run(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server exited")
	return nil
}
