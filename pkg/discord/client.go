// Package discord provides the read-only Discord client behind the bot
// endpoints. It wraps discordgo with just enough state to answer stats and
// channel queries; all moderation actions live in the bot process, not
// here.
package discord

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PancyStudios/PancyDashGo/pkg/logger"
	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// Route discordgo's own log output through the project logger.
// Note: discordgo.Logger is a function, not an interface.
func init() {
	discordgo.Logger = func(msgL int, caller int, format string, a ...interface{}) {
		logger.Info(fmt.Sprintf(format, a...), "DiscordGo")
	}
}

// Client wraps a discordgo session used only for reads.
type Client struct {
	Session   *discordgo.Session
	StartTime time.Time
	mu        sync.RWMutex
	isReady   bool
}

// NewClient creates a Client for the given bot token. Returns nil without
// error when the token is empty: the API then serves zeroed bot stats.
func NewClient(token string) (*Client, error) {
	if token == "" {
		logger.Warn("No bot token configured; bot endpoints will serve placeholder data", "Client")
		return nil, nil
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	// Guild state only; this process never reads messages or members
	session.Identify.Intents = discordgo.IntentsGuilds
	session.StateEnabled = true
	session.LogLevel = discordgo.LogWarning

	return &Client{Session: session}, nil
}

// Start opens the gateway connection
func (c *Client) Start() error {
	c.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		c.mu.Lock()
		c.isReady = true
		c.mu.Unlock()
		logger.Success("Connected to Discord as: "+r.User.Username, "Client")
	})

	c.StartTime = time.Now()
	return c.Session.Open()
}

// Stop closes the gateway connection
func (c *Client) Stop() error {
	c.mu.Lock()
	c.isReady = false
	c.mu.Unlock()
	return c.Session.Close()
}

// IsReady returns true once the gateway handshake completed
func (c *Client) IsReady() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// Stats snapshots the counters for /api/bot/stats
func (c *Client) Stats(commandCount int) models.BotStats {
	if !c.IsReady() {
		return models.BotStats{}
	}

	guilds := c.Session.State.Guilds
	users := 0
	for _, g := range guilds {
		users += g.MemberCount
	}

	return models.BotStats{
		Servers:  len(guilds),
		Users:    users,
		Commands: commandCount,
		Uptime:   time.Since(c.StartTime).Milliseconds(),
		Ping:     c.Session.HeartbeatLatency().Milliseconds(),
	}
}

// TextChannels lists a guild's text channels sorted by position, for the
// dashboard log-channel picker
func (c *Client) TextChannels(guildID string) ([]models.Channel, error) {
	if !c.IsReady() {
		return nil, fmt.Errorf("bot is not connected")
	}

	channels, err := c.Session.GuildChannels(guildID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Channel, 0, len(channels))
	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		out = append(out, models.Channel{
			ID:       ch.ID,
			Name:     ch.Name,
			Position: ch.Position,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}
