package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/listing"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"engine_version": s.eval.Version(),
	})
}

// handleEvaluate scores a listing posted as JSON. ?save=true persists
// the result when a snapshot store is configured.
func (s *Server) handleEvaluate(c *gin.Context) {
	var l listing.Listing
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing payload: " + err.Error()})
		return
	}

	ev, err := s.eval.Evaluate(c.Request.Context(), &l)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.Query("save") == "true" {
		if s.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot store not configured"})
			return
		}
		if _, err := s.store.Save(ev); err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "persist snapshot: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, ev)
}

// handleKPIs publishes the active registry: the vector contract.
func (s *Server) handleKPIs(c *gin.Context) {
	reg := s.eval.KPIRegistry()
	c.JSON(http.StatusOK, gin.H{
		"version":     reg.Version,
		"families":    reg.Families,
		"definitions": reg.Definitions,
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot store not configured"})
		return
	}

	appID := c.Param("app_id")
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	records, err := s.store.History(appID, limit)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load history: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"app_id":  appID,
		"records": records,
	})
}
