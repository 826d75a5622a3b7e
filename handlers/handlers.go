package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/podforge/podforge/models"
	"github.com/podforge/podforge/pipeline"
	"github.com/podforge/podforge/storage"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	Pipeline *pipeline.Pipeline
	Store    *storage.Storage
}

func NewHandler(p *pipeline.Pipeline, store *storage.Storage) *Handler {
	return &Handler{Pipeline: p, Store: store}
}

// StartPodcast upgrades to a websocket, reads the topic as the first text
// message, streams progress events and the script as JSON text messages,
// and finishes with the assembled audio as one binary message.
func (h *Handler) StartPodcast(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("sessionID") == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No sessions found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	_, message, err := conn.ReadMessage()
	if err != nil {
		slog.Error("websocket read failed", "error", err)
		return
	}
	topic := string(message)
	jobID := uuid.New().String()

	progress := func(ev pipeline.Event) {
		if err := conn.WriteJSON(ev); err != nil {
			slog.Error("websocket write failed", "error", err)
		}
	}

	podcast, err := h.Pipeline.Run(c.Request.Context(), topic, jobID, progress)
	if err != nil {
		conn.WriteJSON(gin.H{"error": userMessage(err)})
		return
	}
	h.Store.Put(&models.Job{ID: jobID, Topic: topic, Podcast: podcast, CreatedAt: time.Now()})

	data, err := os.ReadFile(podcast.Path)
	if err != nil {
		conn.WriteJSON(gin.H{"error": "podcast artifact unreadable"})
		return
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		slog.Error("websocket binary write failed", "error", err)
	}
}

type generateRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// GeneratePodcast is the synchronous JSON variant: topic in, artifact
// (base64) and script out.
func (h *Handler) GeneratePodcast(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}

	jobID := uuid.New().String()
	podcast, err := h.Pipeline.Run(c.Request.Context(), req.Topic, jobID, nil)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": userMessage(err)})
		return
	}
	h.Store.Put(&models.Job{ID: jobID, Topic: req.Topic, Podcast: podcast, CreatedAt: time.Now()})

	data, err := os.ReadFile(podcast.Path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "podcast artifact unreadable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           jobID,
		"topic":        req.Topic,
		"format":       podcast.Format,
		"duration_ms":  podcast.Duration.Milliseconds(),
		"script":       podcast.Script,
		"audio_base64": base64.StdEncoding.EncodeToString(data),
	})
}

// DownloadAudio serves the assembled artifact for a finished job.
func (h *Handler) DownloadAudio(c *gin.Context) {
	job, ok := h.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}
	c.FileAttachment(job.Podcast.Path, fmt.Sprintf("podcast_%s.%s", job.ID[:8], job.Podcast.Format))
}

// DownloadScript serves the generated script as plain text.
func (h *Handler) DownloadScript(c *gin.Context) {
	job, ok := h.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}
	var body string
	for _, line := range job.Podcast.Script {
		body += fmt.Sprintf("%s: %s\n", line.Speaker, line.Text)
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

// userMessage keeps the stage visible and tells auth failures (fix your
// configuration) apart from transient ones (try again).
func userMessage(err error) string {
	var stageErr *models.StageError
	stage := "pipeline"
	if errors.As(err, &stageErr) {
		stage = stageErr.Stage
	}
	switch {
	case errors.Is(err, models.ErrSearchAuth), errors.Is(err, models.ErrLLMAuth):
		return fmt.Sprintf("%s failed: the API key was rejected, check your configuration", stage)
	case errors.Is(err, models.ErrSearchUnavailable), errors.Is(err, models.ErrLLMUnavailable), errors.Is(err, models.ErrTTSUnavailable):
		return fmt.Sprintf("%s failed: the provider is unavailable, try again later", stage)
	default:
		return fmt.Sprintf("%s failed: %v", stage, err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrSearchAuth), errors.Is(err, models.ErrLLMAuth):
		return http.StatusBadGateway
	case errors.Is(err, models.ErrSearchUnavailable), errors.Is(err, models.ErrLLMUnavailable), errors.Is(err, models.ErrTTSUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
