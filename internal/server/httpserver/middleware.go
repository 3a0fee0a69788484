package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/logging"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/auth"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/metrics"
)

type ctxKey string

const (
	userIDKey ctxKey = "userID"

	requestIDHeader = "X-Request-ID"
)

// UserIDFromContext returns the identity attached by the authorization gate.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// authGate rejects requests without a valid bearer token and attaches the
// token's user id to the request context otherwise.
func (s *Server) authGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			s.metrics.AuthFailure(metrics.ReasonNoToken)
			s.abortWithError(c, common.ErrMissingToken)
			return
		}

		token, ok := auth.ExtractBearer(header)
		if !ok {
			s.metrics.AuthFailure(metrics.ReasonInvalidToken)
			s.abortWithError(c, common.ErrInvalidToken)
			return
		}

		userID, err := s.users.Authenticate(token)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected", "error", err, "expired", auth.IsExpired(err))
			s.metrics.AuthFailure(metrics.ReasonInvalidToken)
			s.abortWithError(c, common.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// loginThrottle limits login attempts per client address.
func (s *Server) loginThrottle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ok, err := s.limiter.Allow(ctx, "login:"+c.ClientIP())
		if err != nil {
			// fail open
			s.logger.Warn(ctx, "login limiter failed", "error", err)
			c.Next()
			return
		}
		if !ok {
			s.metrics.AuthFailure(metrics.ReasonThrottled)
			s.abortWithError(c, common.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// requestLogger logs one line per request. Headers, bodies and query strings
// are never logged.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx := c.Request.Context()
		args := []any{
			"method", c.Request.Method,
			"route", route,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if uid, ok := UserIDFromContext(ctx); ok {
			args = append(args, "user_id", uid)
		}

		switch {
		case c.Writer.Status() >= 500:
			s.logger.Error(ctx, "request", args...)
		default:
			s.logger.Info(ctx, "request", args...)
		}
	}
}

func (s *Server) recover(c *gin.Context, rec any) {
	s.logger.Error(c.Request.Context(), "panic recovered", "panic", rec, "path", c.Request.URL.Path)
	s.abortWithError(c, errPanic)
}
