// Package web is the HTTP surface of the assistant: one chat endpoint
// plus read-side task endpoints and document management.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DurishettyAnirudh/memora/internal/docs"
	"github.com/DurishettyAnirudh/memora/internal/store"
)

// Assistant handles one chat message end to end.
type Assistant interface {
	Process(ctx context.Context, utterance string) (string, error)
}

// DocIndex is the document management surface.
type DocIndex interface {
	AddDocument(ctx context.Context, title, content, source string) (string, int, error)
	Search(ctx context.Context, query string, topK int) ([]docs.Hit, error)
	Count(ctx context.Context) (int, error)
}

// Prober reports oracle liveness for the health endpoint.
type Prober interface {
	Ready(ctx context.Context) bool
	Model() string
}

// Server wires the HTTP routes to the assistant and its stores.
type Server struct {
	assistant Assistant
	store     store.Store
	docs      DocIndex
	prober    Prober
	now       func() time.Time
	origins   []string
}

// NewServer creates a Server. docs and prober may be nil; their
// endpoints then report the feature as unavailable.
func NewServer(
	assistant Assistant,
	taskStore store.Store,
	docIndex DocIndex,
	prober Prober,
	origins []string,
	now func() time.Time,
) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{
		assistant: assistant,
		store:     taskStore,
		docs:      docIndex,
		prober:    prober,
		now:       now,
		origins:   origins,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(s.corsMiddleware())

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.POST("/chat", s.handleChat)

	router.GET("/tasks", s.handleTasks)
	router.GET("/tasks/today", s.handleTasksToday)
	router.GET("/tasks/stats", s.handleTaskStats)
	router.GET("/tasks/search/:query", s.handleTaskSearch)

	router.POST("/documents", s.handleAddDocument)
	router.GET("/documents/search", s.handleDocumentSearch)

	return router
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

// corsMiddleware allows the configured origins. "*" allows any origin.
func (s *Server) corsMiddleware() gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]bool, len(s.origins))
	for _, o := range s.origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
