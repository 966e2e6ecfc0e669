package web

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DurishettyAnirudh/memora/internal/model"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

type documentRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Source  string `json:"source"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "memora",
		"message": "Natural language task scheduling assistant",
		"endpoints": gin.H{
			"chat":      "POST /chat",
			"tasks":     "GET /tasks",
			"health":    "GET /health",
			"documents": "POST /documents",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	health := gin.H{"status": "ok"}

	if s.prober != nil {
		health["oracle_ready"] = s.prober.Ready(c.Request.Context())
		health["model"] = s.prober.Model()
	}
	if s.docs != nil {
		if n, err := s.docs.Count(c.Request.Context()); err == nil {
			health["documents"] = n
		}
	}

	c.JSON(http.StatusOK, health)
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "message is required",
		})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "message is required",
		})
		return
	}

	reply, err := s.assistant.Process(c.Request.Context(), message)
	if err != nil {
		// The reply is still user-facing; log the cause and return it.
		log.Printf("chat: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": reply,
	})
}

func (s *Server) handleTasks(c *gin.Context) {
	tasks, err := s.store.GetAllTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   tasks,
		"count":   len(tasks),
	})
}

func (s *Server) handleTasksToday(c *gin.Context) {
	today := s.now().Format(model.DateLayout)
	tasks, err := s.store.GetTasksByDate(c.Request.Context(), today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"date":    today,
		"tasks":   tasks,
		"count":   len(tasks),
	})
}

func (s *Server) handleTaskStats(c *gin.Context) {
	today := s.now().Format(model.DateLayout)
	stats, err := s.store.GetStats(c.Request.Context(), today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

func (s *Server) handleTaskSearch(c *gin.Context) {
	query := c.Param("query")
	tasks, err := s.store.SearchTasks(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   query,
		"tasks":   tasks,
		"count":   len(tasks),
	})
}

func (s *Server) handleAddDocument(c *gin.Context) {
	if s.docs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "document indexing is not configured",
		})
		return
	}

	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "title and content are required",
		})
		return
	}

	docID, chunks, err := s.docs.AddDocument(c.Request.Context(), req.Title, req.Content, req.Source)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"doc_id":  docID,
		"chunks":  chunks,
	})
}

func (s *Server) handleDocumentSearch(c *gin.Context) {
	if s.docs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "document indexing is not configured",
		})
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "q is required"})
		return
	}

	topK := 5
	if k := c.Query("k"); k != "" {
		if parsed, err := strconv.Atoi(k); err == nil && parsed > 0 {
			topK = parsed
		}
	}

	hits, err := s.docs.Search(c.Request.Context(), query, topK)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   query,
		"results": hits,
		"count":   len(hits),
	})
}
