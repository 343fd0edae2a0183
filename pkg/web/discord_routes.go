package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PancyStudios/PancyDashGo/pkg/auth"
	"github.com/PancyStudios/PancyDashGo/pkg/logger"
	"github.com/gin-gonic/gin"
)

// bearerToken extracts the session token from the Authorization header;
// empty when the header is missing or not a Bearer scheme
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// session resolves the request's session token; nil plus a written 401
// response when absent or invalid
func (api *API) session(c *gin.Context) *auth.Session {
	token := bearerToken(c)
	if token == "" {
		respondError(c, http.StatusUnauthorized, "Missing session token")
		return nil
	}

	session, err := api.Auth.ParseSession(token)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid session token")
		return nil
	}
	return session
}

// discordFailureStatus maps an upstream failure onto the response
// taxonomy: an expired provider token kills the session (401), everything
// else is the generic 500
func discordFailureStatus(err error) (int, string) {
	if auth.IsUnauthorized(err) {
		return http.StatusUnauthorized, "Discord session expired"
	}
	return http.StatusInternalServerError, "Failed to load guilds"
}

// discordGuildsHandler proxies the user's guild list from Discord,
// filtered down to the guilds they can manage
func (api *API) discordGuildsHandler(c *gin.Context) {
	session := api.session(c)
	if session == nil {
		return
	}

	guilds, err := api.Auth.FetchGuilds(c.Request.Context(), session.AccessToken)
	if err != nil {
		status, message := discordFailureStatus(err)
		if status != http.StatusUnauthorized {
			logger.Error(fmt.Sprintf("Failed to fetch guilds: %v", err), "Discord")
		}
		respondError(c, status, message)
		return
	}

	managed := auth.FilterManaged(guilds)
	respondList(c, managed, len(managed))
}
