// Package gateway exposes the assistant over HTTP: a chat endpoint, CRUD for
// tasks/notes/reminders/events, and a websocket that pushes reminder and
// brief notifications.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amadeusai/amadeus/internal/dispatch"
	"github.com/amadeusai/amadeus/internal/store"
	"github.com/amadeusai/amadeus/internal/timeparse"
)

// Server is the HTTP face of the assistant.
type Server struct {
	dispatcher *dispatch.Dispatcher
	store      *store.Store
	hub        *Hub
	loc        *time.Location

	http *http.Server
}

// New builds the server. hub may be shared with the reminder service so due
// reminders reach websocket clients.
func New(d *dispatch.Dispatcher, st *store.Store, hub *Hub, loc *time.Location, port int) *Server {
	if loc == nil {
		loc = time.Local
	}
	s := &Server{dispatcher: d, store: st, hub: hub, loc: loc}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/api/health", s.handleHealth)
	r.GET("/ws", func(c *gin.Context) { hub.Serve(c.Writer, c.Request) })

	api := r.Group("/api")
	{
		api.POST("/chat", s.handleChat)
		api.DELETE("/sessions/:key", s.handleResetSession)

		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleAddTask)
		api.POST("/tasks/:id/complete", s.handleCompleteTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)

		api.GET("/notes", s.handleListNotes)
		api.POST("/notes", s.handleCreateNote)
		api.GET("/notes/:id", s.handleGetNote)
		api.DELETE("/notes/:id", s.handleDeleteNote)

		api.GET("/reminders", s.handleListReminders)
		api.POST("/reminders", s.handleAddReminder)
		api.DELETE("/reminders/:id", s.handleDeleteReminder)

		api.GET("/events", s.handleListEvents)
		api.POST("/events", s.handleAddEvent)
		api.DELETE("/events/:id", s.handleDeleteEvent)
	}

	s.http = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("gateway listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("gateway: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
		"time":    time.Now().In(s.loc).Format(time.RFC3339),
	})
}

func (s *Server) handleChat(c *gin.Context) {
	var req struct {
		Session string `json:"session"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if req.Session == "" {
		req.Session = "gateway"
	}
	resp := s.dispatcher.ProcessCommand(c.Request.Context(), req.Session, req.Message)
	s.hub.Broadcast("chat", resp.Text)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleResetSession(c *gin.Context) {
	if err := s.dispatcher.ResetSession(c.Param("key")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (s *Server) handleAddTask(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	t, err := s.store.AddTask(req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) handleCompleteTask(c *gin.Context) {
	t, err := s.store.CompleteTask(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	t, err := s.store.DeleteTask(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleListNotes(c *gin.Context) {
	notes, err := s.store.ListNotes(c.Query("tag"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (s *Server) handleCreateNote(c *gin.Context) {
	var req struct {
		Title   string   `json:"title" binding:"required"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	n, err := s.store.CreateNote(req.Title, req.Content, req.Tags)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (s *Server) handleGetNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := s.store.GetNote(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := s.store.DeleteNote(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) handleListReminders(c *gin.Context) {
	reminders, err := s.store.ListReminders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

func (s *Server) handleAddReminder(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		When        string `json:"when" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and when are required"})
		return
	}
	due, err := timeparse.Parse(req.When, time.Now(), s.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := s.store.AddReminder(req.Title, req.Description, due)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) handleDeleteReminder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	r, err := s.store.DeleteReminder(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) handleListEvents(c *gin.Context) {
	var from, to time.Time
	if v := c.Query("days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			from = time.Now()
			to = from.AddDate(0, 0, days)
		}
	}
	events, err := s.store.ListEvents(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) handleAddEvent(c *gin.Context) {
	var req struct {
		Title           string `json:"title" binding:"required"`
		Description     string `json:"description"`
		Location        string `json:"location"`
		When            string `json:"when" binding:"required"`
		DurationMinutes int    `json:"duration_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and when are required"})
		return
	}
	start, err := timeparse.Parse(req.When, time.Now(), s.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var end *time.Time
	if req.DurationMinutes > 0 {
		e := start.Add(time.Duration(req.DurationMinutes) * time.Minute)
		end = &e
	}
	ev, err := s.store.AddEvent(req.Title, req.Description, req.Location, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (s *Server) handleDeleteEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ev, err := s.store.DeleteEvent(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ev)
}
