package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/podforge/podforge/handlers"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	store := cookie.NewStore([]byte(uuid.NewString()))
	r.Use(sessions.Sessions("podforge", store))

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"} // Change this to your frontend URL
	config.AllowMethods = []string{"GET", "POST"}
	config.AllowHeaders = []string{"Content-Type", "text/plain", "application/json"}
	config.AllowCredentials = true
	r.Use(cors.New(config))

	r.GET("/", func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("sessionID") == nil {
			session.Set("sessionID", uuid.New().String())
			session.Save()
		}
		c.JSON(http.StatusOK, gin.H{"message": "Podcast generator ready", "session_id": session.Get("sessionID")})
	})

	r.GET("/podcast", h.StartPodcast)
	r.POST("/podcast", h.GeneratePodcast)
	r.GET("/podcast/:id/audio", h.DownloadAudio)
	r.GET("/podcast/:id/script", h.DownloadScript)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
