package web

import (
	"fmt"
	"net/http"

	"github.com/PancyStudios/PancyDashGo/pkg/database"
	"github.com/PancyStudios/PancyDashGo/pkg/logger"
	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"github.com/PancyStudios/PancyDashGo/pkg/notify"
	"github.com/gin-gonic/gin"
)

// getConfigHandler returns a guild's configuration, creating the default
// document on first read
func (api *API) getConfigHandler(c *gin.Context) {
	cfg, err := api.Guilds.GetOrCreateConfig(c.Request.Context(), c.Param("guildId"))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load config: %v", err), "Guild")
		respondError(c, http.StatusInternalServerError, "Failed to load guild configuration")
		return
	}
	respondOK(c, cfg)
}

// updateConfigHandler applies a partial configuration update and notifies
// the bot. The database write decides the response; the notification is
// fire-and-forget.
func (api *API) updateConfigHandler(c *gin.Context) {
	var update database.ConfigUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	guildID := c.Param("guildId")
	cfg, err := api.Guilds.UpdateConfig(c.Request.Context(), guildID, update)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to update config: %v", err), "Guild")
		respondError(c, http.StatusInternalServerError, "Failed to update guild configuration")
		return
	}

	if api.Sink != nil {
		api.Sink.Publish(notify.EventConfigUpdated, models.ConfigBroadcast{
			GuildID: guildID,
			Config: models.ConfigBroadcastBody{
				LogChannel:  cfg.LogChannel,
				EnabledLogs: cfg.EnabledLogs,
				Prefix:      cfg.Prefix,
			},
		})
	}

	respondOK(c, cfg)
}

// listWarningsHandler returns all warnings of a guild grouped by user
func (api *API) listWarningsHandler(c *gin.Context) {
	grouped, err := api.Warns.ListGrouped(c.Request.Context(), c.Param("guildId"))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to list warnings: %v", err), "Warn")
		respondError(c, http.StatusInternalServerError, "Failed to load warnings")
		return
	}
	respondList(c, grouped, len(grouped))
}

// userWarningsHandler returns the warnings of one user
func (api *API) userWarningsHandler(c *gin.Context) {
	warnings, err := api.Warns.ListForUser(c.Request.Context(), c.Param("guildId"), c.Param("userId"))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load user warnings: %v", err), "Warn")
		respondError(c, http.StatusInternalServerError, "Failed to load warnings")
		return
	}
	respondOK(c, warnings)
}

// deleteWarningHandler removes a single warning scoped to the guild
func (api *API) deleteWarningHandler(c *gin.Context) {
	err := api.Warns.Delete(c.Request.Context(), c.Param("guildId"), c.Param("warnId"))
	if err == database.ErrWarnNotFound {
		respondError(c, http.StatusNotFound, "Warning not found")
		return
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to delete warning: %v", err), "Warn")
		respondError(c, http.StatusInternalServerError, "Failed to delete warning")
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// listBansHandler returns a guild's bans, active-only unless asked otherwise
func (api *API) listBansHandler(c *gin.Context) {
	bans, err := api.Bans.List(c.Request.Context(), c.Param("guildId"), c.Query("active"))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to list bans: %v", err), "Ban")
		respondError(c, http.StatusInternalServerError, "Failed to load bans")
		return
	}
	respondList(c, bans, len(bans))
}

// userBansHandler returns the bans of one user
func (api *API) userBansHandler(c *gin.Context) {
	bans, err := api.Bans.ListForUser(c.Request.Context(), c.Param("guildId"), c.Param("userId"))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load user bans: %v", err), "Ban")
		respondError(c, http.StatusInternalServerError, "Failed to load bans")
		return
	}
	respondList(c, bans, len(bans))
}

// guildStatsHandler returns the dashboard overview numbers
func (api *API) guildStatsHandler(c *gin.Context) {
	stats, err := api.Stats.GuildStats(c.Request.Context(), c.Param("guildId"))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to compute guild stats: %v", err), "Stats")
		respondError(c, http.StatusInternalServerError, "Failed to load guild stats")
		return
	}
	respondOK(c, stats)
}
