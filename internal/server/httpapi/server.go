// Package httpapi exposes the auth service over an HTTP JSON API with the
// uniform {status, content} response envelope.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/chenterphai/article-stack/internal/logging"
	"github.com/chenterphai/article-stack/internal/server/models"
	"github.com/chenterphai/article-stack/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// AuthService is the slice of the service layer the HTTP API depends on.
// *services.AuthService satisfies it; tests substitute fakes.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, usernameOrEmail, password string) (*models.User, *services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type Server struct {
	address              string
	logger               logging.Logger
	auth                 AuthService
	jwtSecret            []byte
	refreshTokenValidity time.Duration
}

func NewServer(address string, l logging.Logger, as AuthService, secretKey string, refreshTokenValidity time.Duration) *Server {
	return &Server{
		address:              address,
		logger:               l.With("module", "http_server"),
		auth:                 as,
		jwtSecret:            []byte(secretKey),
		refreshTokenValidity: refreshTokenValidity,
	}
}

// Routes builds the gin engine with all endpoints registered explicitly.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.Health)

	g := r.Group("/api/auth")
	{
		g.POST("/register", s.Register)
		g.POST("/login", s.Login)
		g.POST("/refresh", s.Refresh)
		g.POST("/logout", s.authRequired(), s.Logout)
		g.GET("/me", s.authRequired(), s.Me)
	}

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
