package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/verateam/vera-bot/config"
	"github.com/verateam/vera-bot/store"
	"github.com/verateam/vera-bot/utils"
)

// Server is the small operational HTTP surface next to the bot: a health
// probe, read-only booking views and CSV export, all behind a JWT issued to
// the single admin account.
type Server struct {
	cfg    *config.Config
	store  *store.Store
	engine *gin.Engine
}

func NewServer(cfg *config.Config, st *store.Store) *Server {
	s := &Server{cfg: cfg, store: st}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID())

	r.GET("/api/health", s.health)
	r.POST("/api/login", s.login)

	authorized := r.Group("/api", JWTAuth(cfg.JWTSecret))
	authorized.GET("/bookings", s.listBookings)
	authorized.GET("/bookings/future", s.futureBookings)
	authorized.GET("/users", s.listUsers)
	authorized.GET("/export/:kind", s.exportCSV)

	s.engine = r
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine { return s.engine }

func (s *Server) Run() error {
	utils.InfoLogger.Printf("HTTP API listening on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
