package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hourbox/database"
	L "hourbox/logger"
	"hourbox/session"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type pushRequest struct {
	Sessions *[]session.Session `json:"sessions"`
}

func (s *Server) load(ctx context.Context, userId string) (*session.Document, error) {
	stored, err := s.store.Get(ctx, userId)
	if err != nil {
		if errors.Is(err, database.ErrDoesNotExist) {
			return session.NewDocument(nil), nil
		}
		return nil, err
	}
	var doc session.Document
	err = json.Unmarshal([]byte(stored.Document), &doc)
	if err != nil {
		return nil, fmt.Errorf("stored document for %s is malformed: %w", userId, err)
	}
	return session.NewDocument(doc.Sessions), nil
}

func (s *Server) getData(c *gin.Context) {
	userId := c.GetString(CTX_USER_ID)
	doc, err := s.load(c.Request.Context(), userId)
	if err != nil {
		L.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load sessions"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// putData replaces the user's whole document; totalHours is recomputed.
func (s *Server) putData(c *gin.Context) {
	userId := c.GetString(CTX_USER_ID)
	var req pushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Sessions == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessions is required"})
		return
	}
	data, err := json.Marshal(session.NewDocument(*req.Sessions))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sessions"})
		return
	}
	err = s.store.Put(c.Request.Context(), userId, string(data))
	if err != nil {
		L.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store sessions"})
		return
	}
	L.Debug(fmt.Sprintf("stored %d sessions for %s", len(*req.Sessions), userId))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) export(c *gin.Context) {
	userId := c.GetString(CTX_USER_ID)
	doc, err := s.load(c.Request.Context(), userId)
	if err != nil {
		L.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load sessions"})
		return
	}
	now := s.now().UTC()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=hourbox-%s.json", now.Format("2006-01-02")))
	c.JSON(http.StatusOK, session.Snapshot{
		ExportDate: now.Format(time.RFC3339),
		Target:     s.targetHours,
		Sessions:   doc.Sessions,
	})
}
