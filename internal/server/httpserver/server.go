// Package httpserver is the REST transport of the pharmacy API: routing,
// the authorization gate, multipart handling and error mapping.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/logging"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/metrics"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/models"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/ratelimit"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/services"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/storage"
)

type UserService interface {
	Register(ctx context.Context, c services.Credentials) (*models.User, error)
	Login(ctx context.Context, c services.Credentials) (string, error)
	Authenticate(token string) (string, error)
}

type MedicineService interface {
	Create(ctx context.Context, in services.MedicineInput, a services.Attachments) (*models.MedicineItem, error)
	List(ctx context.Context) ([]*models.MedicineItem, error)
	Update(ctx context.Context, id int64, in services.MedicineInput, a services.Attachments) (*models.MedicineItem, error)
	Delete(ctx context.Context, id int64) error
}

// FileOpener serves stored attachments by key.
type FileOpener interface {
	Open(ctx context.Context, key string) (*storage.Object, error)
}

// Pinger reports database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Users        UserService
	Medicines    MedicineService
	Files        FileOpener
	DB           Pinger
	LoginLimiter ratelimit.Limiter
	Metrics      *metrics.Metrics
}

type Server struct {
	address         string
	maxUploadSize   int64
	shutdownTimeout time.Duration
	logger          logging.Logger

	users     UserService
	medicines MedicineService
	files     FileOpener
	db        Pinger
	limiter   ratelimit.Limiter
	metrics   *metrics.Metrics
}

func NewServer(address string, maxUploadSize int64, shutdownTimeout time.Duration, l logging.Logger, d Deps) *Server {
	limiter := d.LoginLimiter
	if limiter == nil {
		limiter = ratelimit.Disabled{}
	}
	m := d.Metrics
	if m == nil {
		m = metrics.New()
	}
	return &Server{
		address:         address,
		maxUploadSize:   maxUploadSize,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
		users:           d.Users,
		medicines:       d.Medicines,
		files:           d.Files,
		db:              d.DB,
		limiter:         limiter,
		metrics:         m,
	}
}

// Router builds the gin engine with every route and middleware installed.
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	r.Use(
		gin.CustomRecovery(s.recover),
		requestID(),
		s.requestLogger(),
		s.metrics.Middleware(),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:    []string{"Origin", "Content-Type", common.AuthorizationHeaderName},
			ExposeHeaders:   []string{requestIDHeader},
			MaxAge:          12 * time.Hour,
		}),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{common.UploadsURLPrefix, "/metrics"})),
	)

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.GET(common.UploadsURLPrefix+"/:name", s.serveUpload)

	api := r.Group("/api")
	{
		api.POST("/register", s.register)
		api.POST("/login", s.loginThrottle(), s.login)

		medicine := api.Group("/medicine", s.authGate())
		{
			medicine.POST("", s.createMedicine)
			medicine.GET("", s.listMedicines)
			medicine.PUT("/:id", s.updateMedicine)
			medicine.DELETE("/:id", s.deleteMedicine)
		}
	}
	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
