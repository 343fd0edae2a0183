package web

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/PancyStudios/PancyDashGo/pkg/logger"
	"github.com/gin-gonic/gin"
)

// loginHandler redirects the browser to the Discord consent screen
func (api *API) loginHandler(c *gin.Context) {
	c.Redirect(http.StatusFound, api.Auth.AuthorizeURL(c.Query("state")))
}

// callbackHandler finishes the OAuth flow: trades the code for an access
// token, issues a session and hands the browser back to the frontend with
// the session token attached
func (api *API) callbackHandler(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		respondError(c, http.StatusBadRequest, "Missing authorization code")
		return
	}

	ctx := c.Request.Context()

	accessToken, err := api.Auth.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error(fmt.Sprintf("OAuth code exchange failed: %v", err), "Auth")
		respondError(c, http.StatusUnauthorized, "Authorization failed")
		return
	}

	user, err := api.Auth.FetchUser(ctx, accessToken)
	if err != nil {
		logger.Error(fmt.Sprintf("OAuth user lookup failed: %v", err), "Auth")
		respondError(c, http.StatusUnauthorized, "Authorization failed")
		return
	}

	session, err := api.Auth.IssueSession(user, accessToken)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to issue session: %v", err), "Auth")
		respondError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	logger.Success(fmt.Sprintf("User %s logged in", user.Username), "Auth")
	c.Redirect(http.StatusFound, api.FrontendURL+"/auth/success?token="+url.QueryEscape(session))
}

// meHandler returns the identity behind the session token
func (api *API) meHandler(c *gin.Context) {
	session := api.session(c)
	if session == nil {
		return
	}
	respondOK(c, session.User)
}
