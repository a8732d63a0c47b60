// Package statusserver exposes recorder status and metrics over HTTP.
package statusserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/user/camrecord/pkg/adapters/logger"
	"github.com/user/camrecord/pkg/orchestrator"
	"github.com/user/camrecord/pkg/ports"
)

// Recorder is the part of orchestrator.DualRecorder the server reads.
type Recorder interface {
	Status() orchestrator.Status
	LastSession() (orchestrator.SessionResult, bool)
	StopRecording()
}

// PlaybackStatus reports the position of a stereo playback.
type PlaybackStatus interface {
	Status() string
}

// SideStatus holds the counters of one side.
type SideStatus struct {
	Frames  int `json:"frames"`
	Dropped int `json:"dropped"`
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Recording   bool       `json:"recording"`
	SessionID   string     `json:"session_id,omitempty"`
	Source      string     `json:"source,omitempty"`
	ElapsedSecs float64    `json:"elapsed_secs"`
	Left        SideStatus `json:"left"`
	Right       SideStatus `json:"right"`
	Playback    string     `json:"playback,omitempty"`
}

// SessionResponse is the body of GET /api/sessions/last.
type SessionResponse struct {
	ID           string     `json:"id"`
	Source       string     `json:"source"`
	OutputDir    string     `json:"output_dir"`
	FPS          int        `json:"fps"`
	Started      string     `json:"started"`
	DurationSecs float64    `json:"duration_secs"`
	Files        []string   `json:"files"`
	Left         SideStatus `json:"left"`
	Right        SideStatus `json:"right"`
	Errors       []string   `json:"errors,omitempty"`
}

// Server wraps the HTTP server with dependencies
type Server struct {
	router   *gin.Engine
	recorder Recorder
	playback PlaybackStatus
	gatherer prometheus.Gatherer
	logger   ports.Logger
}

// New creates a new status server. recorder and playback may be nil;
// gatherer defaults to the global registry.
func New(recorder Recorder, playback PlaybackStatus, gatherer prometheus.Gatherer, log ports.Logger) *Server {
	if recorder == nil {
		recorder = idle{}
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if log == nil {
		log = logger.NewNoop()
	}
	s := &Server{
		recorder: recorder,
		playback: playback,
		gatherer: gatherer,
		logger:   log.WithComponent("status"),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/ping", s.handlePing)
		api.GET("/status", s.handleStatus)
		api.GET("/sessions/last", s.handleLastSession)
		api.POST("/stop", s.handleStop)
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	s.router = router
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Status server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Handler implementations

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"time":    time.Now().Unix(),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	st := s.recorder.Status()
	resp := StatusResponse{
		Recording:   st.Recording,
		SessionID:   st.SessionID,
		Source:      st.Spec,
		ElapsedSecs: st.Elapsed.Seconds(),
		Left:        SideStatus{Frames: st.Frames[orchestrator.Left], Dropped: st.Dropped[orchestrator.Left]},
		Right:       SideStatus{Frames: st.Frames[orchestrator.Right], Dropped: st.Dropped[orchestrator.Right]},
	}
	if s.playback != nil {
		resp.Playback = s.playback.Status()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleLastSession(c *gin.Context) {
	r, ok := s.recorder.LastSession()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no finished session"})
		return
	}
	c.JSON(http.StatusOK, sessionToResponse(r))
}

func (s *Server) handleStop(c *gin.Context) {
	st := s.recorder.Status()
	if !st.Recording {
		c.JSON(http.StatusConflict, gin.H{"error": "not recording"})
		return
	}
	s.recorder.StopRecording()
	s.logger.Info("Stop requested by %s", c.ClientIP())
	c.JSON(http.StatusAccepted, gin.H{"session_id": st.SessionID})
}

// idle stands in for a recorder in playback-only runs.
type idle struct{}

func (idle) Status() orchestrator.Status { return orchestrator.Status{} }
func (idle) LastSession() (orchestrator.SessionResult, bool) {
	return orchestrator.SessionResult{}, false
}
func (idle) StopRecording() {}

func sessionToResponse(r orchestrator.SessionResult) SessionResponse {
	resp := SessionResponse{
		ID:           r.ID,
		Source:       r.Spec.String(),
		OutputDir:    r.OutputDir,
		FPS:          r.FPS,
		Started:      r.Started.Format(time.RFC3339),
		DurationSecs: r.Duration().Seconds(),
		Files:        []string{},
		Left:         SideStatus{Frames: r.Frames[orchestrator.Left], Dropped: r.Dropped[orchestrator.Left]},
		Right:        SideStatus{Frames: r.Frames[orchestrator.Right], Dropped: r.Dropped[orchestrator.Right]},
	}
	for _, m := range r.Recordings {
		resp.Files = append(resp.Files, m.Filename)
	}
	if r.Err != nil {
		resp.Errors = append(resp.Errors, r.Err.Error())
	}
	for _, err := range r.FinalizeErrors {
		resp.Errors = append(resp.Errors, err.Error())
	}
	return resp
}
