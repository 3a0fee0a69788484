package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/metrics"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/models"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/services"
)

type registerResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type itemResponse struct {
	Success bool                 `json:"success"`
	Item    *models.MedicineItem `json:"item"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func bindCredentials(c *gin.Context) (services.Credentials, error) {
	var req services.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, fmt.Errorf("%w: malformed JSON body", common.ErrorValidation)
	}
	return req, nil
}

func (s *Server) register(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := bindCredentials(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	user, err := s.users.Register(ctx, req)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(ctx, "Registered", "username", user.UserName, "user_id", user.ID)
	c.JSON(http.StatusOK, registerResponse{Success: true, User: user})
}

func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := bindCredentials(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	token, err := s.users.Login(ctx, req)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.metrics.AuthFailure(metrics.ReasonBadLogin)
		}
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Success: true, Token: token})
}

func (s *Server) createMedicine(c *gin.Context) {
	ctx := c.Request.Context()

	in, att, err := s.bindMedicineForm(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	defer att.Close()

	item, err := s.medicines.Create(ctx, in, att.Attachments)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.countStored(att)

	s.logger.Info(ctx, "medicine created", "id", item.ID)
	c.JSON(http.StatusOK, itemResponse{Success: true, Item: item})
}

func (s *Server) listMedicines(c *gin.Context) {
	items, err := s.medicines.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) updateMedicine(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := pathID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	in, att, err := s.bindMedicineForm(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	defer att.Close()

	item, err := s.medicines.Update(ctx, id, in, att.Attachments)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.countStored(att)

	s.logger.Info(ctx, "medicine updated", "id", item.ID)
	c.JSON(http.StatusOK, itemResponse{Success: true, Item: item})
}

func (s *Server) deleteMedicine(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := pathID(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if err := s.medicines.Delete(ctx, id); err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(ctx, "medicine deleted", "id", id)
	c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) serveUpload(c *gin.Context) {
	obj, err := s.files.Open(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if !obj.LastModified.IsZero() {
		c.Header("Last-Modified", obj.LastModified.UTC().Format(http.TimeFormat))
	}
	c.DataFromReader(http.StatusOK, obj.ContentLength, contentType, obj.Body, nil)
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn(ctx, "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) countStored(att *openedAttachments) {
	for _, field := range att.fields() {
		s.metrics.AttachmentStored(field)
	}
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
