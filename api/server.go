// Package api exposes the polling store over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ukpolling/refresh"
	"ukpolling/store"
)

// Server wires the gin router to the store and the refresher.
type Server struct {
	router    *gin.Engine
	store     *store.Store
	refresher *refresh.Refresher
}

// NewServer builds the HTTP server. metricsRegistry may be nil to
// disable the /metrics endpoint.
func NewServer(st *store.Store, rf *refresh.Refresher, metricsRegistry *prometheus.Registry) *Server {
	s := &Server{
		router:    gin.New(),
		store:     st,
		refresher: rf,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes(metricsRegistry)
	return s
}

func (s *Server) setupRoutes(metricsRegistry *prometheus.Registry) {
	// CORS: the API is read-only and public.
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	s.router.GET("/", s.index)
	s.router.GET("/polls", s.getAllPolls)
	s.router.GET("/polls/latest", s.getLatestPolls)
	s.router.GET("/polls/summary", s.getSummary)
	s.router.GET("/polls/pollster/:name", s.getByPollster)
	s.router.GET("/polls/party/:name", s.getByParty)
	s.router.GET("/polls/trends", s.getTrends)
	s.router.GET("/polls/range", s.getDateRange)
	s.router.POST("/polls/refresh", s.triggerRefresh)
	s.router.GET("/status", s.getStatus)

	if metricsRegistry != nil {
		s.router.GET("/metrics", gin.WrapH(
			promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}),
		))
	}
}

// Handler returns the underlying HTTP handler for serving and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts listening on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
