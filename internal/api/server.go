// Package api exposes the HTTP control surface for triggering alert runs.
package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pricewatch/internal/alerts"
	"pricewatch/internal/errors"
)

// Server wires the HTTP endpoints around the alert runner.
type Server struct {
	Router *gin.Engine
	runner *alerts.Runner
	log    zerolog.Logger
}

// NewServer creates the HTTP server. triggerToken guards the trigger endpoint.
func NewServer(runner *alerts.Runner, triggerToken string, log zerolog.Logger) *Server {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLogger(log))
	r.Use(RateLimitMiddleware())

	s := &Server{
		Router: r,
		runner: runner,
		log:    log,
	}

	r.GET("/health", s.health)
	r.POST("/trigger-alerts", TriggerTokenMiddleware(triggerToken), s.triggerAlerts)

	return s
}

// Start runs the server on the given address, blocking until it stops.
func (s *Server) Start(addr string) error {
	return s.Router.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type triggerRequest struct {
	Force   bool     `json:"force"`
	Symbols []string `json:"symbols"`
}

// triggerAlerts runs one on-demand evaluation cycle. An absent or invalid
// JSON body is treated as an empty request, not an error.
func (s *Server) triggerAlerts(c *gin.Context) {
	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = triggerRequest{}
	}

	summary, err := s.runner.Run(c.Request.Context(), alerts.RunOptions{
		Symbols: req.Symbols,
		Force:   req.Force,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Triggered evaluation cycle failed")
		status := http.StatusInternalServerError
		var upstream *errors.UpstreamError
		if stderrors.As(err, &upstream) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
