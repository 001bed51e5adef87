package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/asaskevich/EventBus"
	"github.com/eladgl/jobscout/internal/clients/linkedin"
	"github.com/eladgl/jobscout/internal/events"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Server exposes the on-demand ingestion trigger. The trigger is asynchronous:
// the caller gets an immediate acknowledgment and the pipeline runs detached,
// since enrichment via browser automation outlives any interactive request.
type Server struct {
	bus    EventBus.Bus
	server *http.Server
}

type ingestRequestBody struct {
	Email            string   `json:"email" binding:"required,email"`
	Keyword          string   `json:"keyword" binding:"required"`
	Location         string   `json:"location"`
	ExperienceLevels []string `json:"experienceLevels"`
	ResumeURL        string   `json:"resumeUrl"`
}

func NewServer(bus EventBus.Bus, port int) *Server {

	s := &Server{bus: bus}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/api/ingestions", s.triggerIngestion)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	return s
}

func (s *Server) Run() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server failed: %v", err)
		}
	}()
	log.Infof("api server listening on %v", s.server.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) triggerIngestion(c *gin.Context) {

	var body ingestRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, ok := linkedin.ExtractSessionToken(c.GetHeader("Cookie"))
	if !ok || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session cookie"})
		return
	}

	s.bus.Publish(events.IngestRequestedTopic, events.IngestRequested{
		Email:            body.Email,
		Keyword:          body.Keyword,
		Location:         body.Location,
		ExperienceLevels: body.ExperienceLevels,
		ResumeURL:        body.ResumeURL,
		SessionToken:     token,
	})

	c.JSON(http.StatusAccepted, gin.H{"status": "ingestion started"})
}
