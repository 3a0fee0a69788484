package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
)

var (
	errPanic           = errors.New("panic")
	errPayloadTooLarge = errors.New("payload too large")
	errInvalidID       = errors.New("invalid id")
	errMalformedForm   = fmt.Errorf("%w: Malformed form", common.ErrorValidation)
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// statusFor maps an error to its HTTP status and the message shown to the
// client. Messages of unexpected errors never reach the client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrMissingToken):
		return http.StatusUnauthorized, "No token"
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, common.ErrTooManyRequests):
		return http.StatusTooManyRequests, "Too many login attempts, try again later"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "Username already exists"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, errInvalidID):
		return http.StatusBadRequest, "Invalid id"
	case errors.Is(err, errPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "Upload too large"
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// writeError sends the error envelope. Server-side failures are logged with
// their full text.
func (s *Server) writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError && !errors.Is(err, errPanic) {
		s.logger.Error(c.Request.Context(), "request failed", "route", c.FullPath(), "error", err)
	}
	c.JSON(status, errorResponse{Success: false, Error: msg})
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	s.writeError(c, err)
	c.Abort()
}
