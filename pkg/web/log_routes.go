package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/PancyStudios/PancyDashGo/pkg/logger"
	"github.com/gin-gonic/gin"
)

// queryInt64 reads a numeric query parameter, falling back to def when
// absent or unparseable
func queryInt64(c *gin.Context, key string, def int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return def
	}
	return value
}

// logsPageHandler returns a filtered, paginated slice of the audit log
func (api *API) logsPageHandler(c *gin.Context) {
	limit := queryInt64(c, "limit", 100)
	skip := queryInt64(c, "skip", 0)

	page, err := api.Logs.Page(c.Request.Context(), c.Param("guildId"), c.Query("type"), limit, skip)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load logs: %v", err), "Log")
		respondError(c, http.StatusInternalServerError, "Failed to load logs")
		return
	}
	respondOK(c, page)
}

// logStatsHandler returns the log counters and the by-type breakdown
func (api *API) logStatsHandler(c *gin.Context) {
	stats, err := api.Logs.Stats(c.Request.Context(), c.Param("guildId"))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to compute log stats: %v", err), "Log")
		respondError(c, http.StatusInternalServerError, "Failed to load log stats")
		return
	}
	respondOK(c, stats)
}

// recentLogsHandler returns the newest entries for the activity feed
func (api *API) recentLogsHandler(c *gin.Context) {
	limit := queryInt64(c, "limit", 10)

	logs, err := api.Logs.Recent(c.Request.Context(), c.Param("guildId"), limit)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load recent logs: %v", err), "Log")
		respondError(c, http.StatusInternalServerError, "Failed to load recent logs")
		return
	}
	respondList(c, logs, len(logs))
}

// activityHandler returns the weekly activity chart data
func (api *API) activityHandler(c *gin.Context) {
	activity, err := api.Logs.Activity(c.Request.Context(), c.Param("guildId"))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to compute activity: %v", err), "Log")
		respondError(c, http.StatusInternalServerError, "Failed to load activity")
		return
	}
	respondOK(c, activity)
}
