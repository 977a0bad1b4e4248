// Package server exposes single-sequence predictions over HTTP.
package server

import (
	"sort"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/BigHat-Biosciences/NanoNet/internal/config"
	"github.com/BigHat-Biosciences/NanoNet/internal/log"
	"github.com/BigHat-Biosciences/NanoNet/internal/model"
	"github.com/BigHat-Biosciences/NanoNet/internal/predict"
)

// Chain types accepted by the predict endpoint.
const (
	TypeNanobody = "nanobody"
	TypeTCR      = "tcr"
)

// Server answers prediction requests from a model resolved once at boot.
type Server struct {
	cfg     *config.Config
	runner  predict.Runner
	weights map[string]string
	card    model.Card
	log     *log.Logger
}

// New resolves the model repository and weights up front, so a missing
// model aborts startup instead of failing requests later. The TCR weights
// are optional; when absent only nanobody predictions are served. A nil
// runner falls back to the configured external command.
func New(cfg *config.Config, runner predict.Runner, logger *log.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repoDir, err := model.Resolve(model.Source{
		Repository: cfg.Model.Repository,
		CommitSHA:  cfg.Model.CommitSHA,
	}, cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	weights := make(map[string]string)
	nb, err := model.WeightsDir(repoDir, cfg.Model.Weights)
	if err != nil {
		return nil, err
	}
	weights[TypeNanobody] = nb
	if tcr, err := model.WeightsDir(repoDir, cfg.Model.TCRWeights); err == nil {
		weights[TypeTCR] = tcr
	} else {
		logger.Printf("tcr weights unavailable: %v", err)
	}

	card, err := model.ReadCard(repoDir)
	if err != nil {
		// The card is informational only.
		logger.Printf("model card unavailable: %v", err)
	}

	if runner == nil {
		runner = &predict.ExecRunner{Command: cfg.Runner}
	}

	return &Server{
		cfg:     cfg,
		runner:  runner,
		weights: weights,
		card:    card,
		log:     logger,
	}, nil
}

// Engine builds the gin engine with all routes attached.
func (s *Server) Engine() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(s.corsConfig()))

	r.GET("/healthz", s.health)

	api := r.Group("/api/v1")
	{
		api.GET("/model", s.modelInfo)
		api.POST("/predict", s.predictHandler)
	}
	return r
}

// Run starts the listener on the configured address and blocks.
func (s *Server) Run() error {
	return s.Engine().Run(s.cfg.Server.Addr)
}

func (s *Server) corsConfig() cors.Config {
	c := cors.DefaultConfig()
	origins := s.cfg.Server.AllowOrigins
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type"}
	return c
}

// types lists the chain types this server can predict, stably ordered.
func (s *Server) types() []string {
	out := make([]string, 0, len(s.weights))
	for t := range s.weights {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
