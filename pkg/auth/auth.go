// Package auth delegates identity to Discord OAuth and issues a signed
// session token carrying the provider's access token. The API itself never
// stores credentials; the token is the session.
package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

const (
	discordAPIBase    = "https://discord.com/api"
	oauthScopes       = "identify guilds email"
	sessionLifetime   = 24 * time.Hour
	permAdministrator = 0x0000000000000008
	permManageGuild   = 0x0000000000000020
)

// User is the Discord identity snapshot carried in the session token
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
}

// Guild is one entry of the user's guild list from Discord
type Guild struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Owner       bool   `json:"owner"`
	Permissions string `json:"permissions"`
}

// Session is the decoded content of a session token
type Session struct {
	User        User
	AccessToken string
}

// Service performs the OAuth exchange and signs session tokens.
type Service struct {
	clientID     string
	clientSecret string
	redirectURI  string
	secret       []byte
	apiBase      string
	http         *http.Client
}

// NewService creates a Service for the configured OAuth application
func NewService(clientID, clientSecret, redirectURI, sessionSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		secret:       []byte(sessionSecret),
		apiBase:      discordAPIBase,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL builds the Discord consent URL the frontend redirects to
func (s *Service) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", s.clientID)
	q.Set("redirect_uri", s.redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", oauthScopes)
	if state != "" {
		q.Set("state", state)
	}
	return s.apiBase + "/oauth2/authorize?" + q.Encode()
}

// ExchangeCode trades an authorization code for an access token
func (s *Service) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", s.clientID)
	form.Set("client_secret", s.clientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", s.redirectURI)

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiBase+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed with status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token exchange returned no access token")
	}
	return body.AccessToken, nil
}

// FetchUser reads the identity behind an access token
func (s *Service) FetchUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.apiBase+"/users/@me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user lookup failed with status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// IssueSession signs a session token carrying the user snapshot and the
// provider access token
func (s *Service) IssueSession(user *User, accessToken string) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":           user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"accessToken":   accessToken,
		"exp":           time.Now().Add(sessionLifetime).Unix(),
	})
	return tok.SignedString(s.secret)
}

// ParseSession verifies a session token and returns its content
func (s *Service) ParseSession(tokenStr string) (*Session, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid session claims")
	}

	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}

	return &Session{
		User: User{
			ID:            str("sub"),
			Username:      str("username"),
			Discriminator: str("discriminator"),
			Avatar:        str("avatar"),
		},
		AccessToken: str("accessToken"),
	}, nil
}

// ErrUpstreamUnauthorized marks an invalid or expired provider token.
type upstreamError struct {
	status int
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("discord api returned status %d", e.status)
}

// IsUnauthorized reports whether err is an upstream 401
func IsUnauthorized(err error) bool {
	ue, ok := err.(*upstreamError)
	return ok && ue.status == http.StatusUnauthorized
}

// FetchGuilds proxies the user's guild list from Discord
func (s *Service) FetchGuilds(ctx context.Context, accessToken string) ([]Guild, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.apiBase+"/users/@me/guilds", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &upstreamError{status: resp.StatusCode}
	}

	var guilds []Guild
	if err := json.NewDecoder(resp.Body).Decode(&guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

// FilterManaged keeps only guilds where the user can administrate or
// manage the server; everything else is invisible to the dashboard
func FilterManaged(guilds []Guild) []Guild {
	managed := make([]Guild, 0)
	for _, g := range guilds {
		perms, err := strconv.ParseInt(g.Permissions, 10, 64)
		if err != nil {
			continue
		}
		if perms&permAdministrator == permAdministrator || perms&permManageGuild == permManageGuild {
			managed = append(managed, g)
		}
	}
	return managed
}
