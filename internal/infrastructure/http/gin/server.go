package gin

import (
	"fmt"

	"github.com/gin-contrib/cors"
	ginlib "github.com/gin-gonic/gin"

	"github.com/farrdeeen/FastOrderLogic/internal/config"
	"github.com/farrdeeen/FastOrderLogic/internal/interfaces/http/middleware"
)

type Server struct {
	engine *ginlib.Engine
	addr   string
}

func NewEngine(cfg config.ServerConfig) *ginlib.Engine {
	r := ginlib.New()
	r.Use(ginlib.Recovery())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	return r
}

func NewServer(cfg config.ServerConfig, engine *ginlib.Engine) *Server {
	return &Server{
		engine: engine,
		addr:   cfg.Address(),
	}
}

func (s *Server) Run() error {
	if s.engine == nil {
		return fmt.Errorf("gin engine is nil")
	}
	return s.engine.Run(s.addr)
}
