package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/shivsh94/Video-backend/internal/adapters/signal"
	"github.com/shivsh94/Video-backend/internal/config"
	"github.com/shivsh94/Video-backend/internal/domain"
)

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	if cfg.ClientURL == "" {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = []string{cfg.ClientURL}
	}
	return c
}

func SetupRouter(ctx context.Context, cfg *config.Config, ctl *signal.SignalWSController) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})

	log.Info().Str("module", "adapters.http").Str("client_url", cfg.ClientURL).Msg("router setup")

	api := r.Group("/api")

	// GET /api/rooms — list live rooms with member counts
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": ctl.Registry.Rooms()})
	})

	// GET /api/rooms/:id/members — member snapshot in join order
	api.GET("/rooms/:id/members", func(c *gin.Context) {
		id := domain.RoomID(c.Param("id"))
		members, ok := ctl.Registry.MembersOf(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, members)
	})

	api.GET("/ws/signal", func(c *gin.Context) {
		ctl.HandleSignal(ctx, c)
	})

	return r
}
