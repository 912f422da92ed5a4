package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shreydevep/Quranatine-Workstation-Server/internal/adapters"
	"github.com/shreydevep/Quranatine-Workstation-Server/internal/adapters/spotify"
	"github.com/shreydevep/Quranatine-Workstation-Server/internal/app"
	"github.com/shreydevep/Quranatine-Workstation-Server/internal/config"
	"github.com/shreydevep/Quranatine-Workstation-Server/internal/domain"
)

func genClientToken() string {
	idStr := uuid.NewString()
	return idStr
}

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, gw *app.Gateway, sp *spotify.Handlers) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("QuranatineSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	// Spotify token proxy (original client expects these at the root).
	r.POST("/login", sp.Login)
	r.POST("/refresh", sp.Refresh)

	api := r.Group("/api")

	// GET /api/rooms — directory inspection
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": gw.Directory.Rooms()})
	})

	// GET /api/rooms/:id/members — current members of a room
	api.GET("/rooms/:id/members", func(c *gin.Context) {
		id := domain.RoomID(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"members": gw.Directory.MembersSnapshot(id)})
	})

	// GET /api/rtc-config — ICE/STUN handoff for the media transport
	api.GET("/rtc-config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rtcConfig": adapters.RTCConfig(cfg.StunURLs)})
	})

	ctrl := adapters.NewGatewayWSController(gw, cfg.ReadLimit, cfg.PingPeriod)
	api.GET("/ws/gateway", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("ct", c.GetString("client_token")).Msg("ws gateway endpoint hit")
		ctrl.HandleChannel(ctx, c)
	})

	return r
}
