// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"time"

	"github.com/PancyStudios/PancyDashGo/pkg/auth"
	"github.com/PancyStudios/PancyDashGo/pkg/database"
	"github.com/PancyStudios/PancyDashGo/pkg/discord"
	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"github.com/PancyStudios/PancyDashGo/pkg/notify"
	"github.com/gin-gonic/gin"
)

// API bundles the dependencies the route handlers need. Everything is
// injected; handlers never reach for globals.
type API struct {
	DB     *database.Database
	Guilds *database.GuildService
	Warns  *database.WarnService
	Bans   *database.BanService
	Logs   *database.LogService
	Stats  *database.StatsService

	Bot  *discord.Client
	Auth *auth.Service
	Sink notify.Sink
	Hub  *notify.Hub

	// Scraped once at startup; commands only change with a bot deploy
	Commands []models.Command

	FrontendURL string
	StartTime   time.Time
}

// SetupAPIRoutes registers every route on the server
func SetupAPIRoutes(s *Server, api *API) {
	s.GET("/health", api.healthHandler)

	if api.Hub != nil {
		s.GET("/ws", func(c *gin.Context) {
			api.Hub.HandleConnection(c.Writer, c.Request)
		})
	}

	root := s.Group("/api")

	guilds := root.Group("/guilds/:guildId")
	{
		guilds.GET("/config", api.getConfigHandler)
		guilds.PATCH("/config", api.updateConfigHandler)
		guilds.GET("/warnings", api.listWarningsHandler)
		guilds.GET("/warnings/:userId", api.userWarningsHandler)
		guilds.DELETE("/warnings/:warnId", api.deleteWarningHandler)
		guilds.GET("/bans", api.listBansHandler)
		guilds.GET("/bans/:userId", api.userBansHandler)
		guilds.GET("/stats", api.guildStatsHandler)
	}

	logs := root.Group("/logs/:guildId")
	{
		logs.GET("", api.logsPageHandler)
		logs.GET("/stats", api.logStatsHandler)
		logs.GET("/recent", api.recentLogsHandler)
		logs.GET("/activity", api.activityHandler)
	}

	bot := root.Group("/bot")
	{
		bot.GET("/stats", api.botStatsHandler)
		bot.GET("/commands", api.commandsHandler)
		bot.GET("/guilds/:guildId/channels", api.channelsHandler)
	}

	root.GET("/discord/guilds", api.discordGuildsHandler)

	oauth := root.Group("/auth")
	{
		oauth.GET("/login", api.loginHandler)
		oauth.GET("/callback", api.callbackHandler)
		oauth.GET("/me", api.meHandler)
	}
}

// healthHandler reports liveness plus the database connection state
func (api *API) healthHandler(c *gin.Context) {
	dbStatus, dbOnline := api.DB.GetStatus()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"uptime":    time.Since(api.StartTime).Seconds(),
		"timestamp": time.Now().Format(time.RFC3339),
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
	})
}
