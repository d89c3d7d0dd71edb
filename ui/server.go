// Package ui serves the dashboard HTTP API with gin.
package ui

import (
	"sync"

	"github.com/gin-gonic/gin"

	"salesdash/app"
	"salesdash/domain/core"
	"salesdash/domain/sales"
	"salesdash/internal"
)

// Server represents the dashboard API server
type Server struct {
	router      *gin.Engine
	dash        *app.Dashboard
	log         *internal.Logger
	maxUploadMB int

	mu     sync.RWMutex
	tables map[core.DatasetID]*sales.Table
}

// NewServer creates the API server and registers its routes.
func NewServer(dash *app.Dashboard, logger *internal.Logger, maxUploadMB int) *Server {
	s := &Server{
		router:      gin.Default(),
		dash:        dash,
		log:         logger,
		maxUploadMB: maxUploadMB,
		tables:      make(map[core.DatasetID]*sales.Table),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.MaxMultipartMemory = int64(s.maxUploadMB) << 20

	s.router.GET("/health", s.handleHealth)
	s.router.POST("/datasets", s.handleUpload)
	s.router.GET("/datasets/:id/snapshot", s.handleSnapshot)
	s.router.GET("/datasets/:id/export", s.handleExport)
	s.router.GET("/datasets/:id/report", s.handleReport)
}

// AddTable registers an already-loaded table, used for sample preload.
func (s *Server) AddTable(t *sales.Table) core.DatasetID {
	id := core.NewDatasetID()
	s.mu.Lock()
	s.tables[id] = t
	s.mu.Unlock()
	return id
}

func (s *Server) table(id core.DatasetID) (*sales.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[id]
	return t, ok
}

// Run starts the server on the given address, blocking until it exits.
func (s *Server) Run(addr string) error {
	s.log.Info("listening on %s", addr)
	return s.router.Run(addr)
}
