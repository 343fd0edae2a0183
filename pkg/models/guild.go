package models

import "time"

// EnabledLogs holds the per-category logging switches for a guild.
// Every key must always be present in a stored document; a missing key
// would make the bot fall back to its compiled-in default and drift from
// what the dashboard shows.
type EnabledLogs struct {
	Messages     bool `bson:"messages" json:"messages"`
	Members      bool `bson:"members" json:"members"`
	Roles        bool `bson:"roles" json:"roles"`
	Channels     bool `bson:"channels" json:"channels"`
	Voice        bool `bson:"voice" json:"voice"`
	Reactions    bool `bson:"reactions" json:"reactions"`
	Server       bool `bson:"server" json:"server"`
	Invites      bool `bson:"invites" json:"invites"`
	Webhooks     bool `bson:"webhooks" json:"webhooks"`
	Events       bool `bson:"events" json:"events"`
	Automod      bool `bson:"automod" json:"automod"`
	Integrations bool `bson:"integrations" json:"integrations"`
}

// DefaultEnabledLogs returns the switches used when a guild has no stored
// configuration yet: everything on.
func DefaultEnabledLogs() EnabledLogs {
	return EnabledLogs{
		Messages:     true,
		Members:      true,
		Roles:        true,
		Channels:     true,
		Voice:        true,
		Reactions:    true,
		Server:       true,
		Invites:      true,
		Webhooks:     true,
		Events:       true,
		Automod:      true,
		Integrations: true,
	}
}

// GuildConfig is the per-guild configuration document in the "guilds"
// collection. There is exactly one document per guildId; it is created
// lazily on first read and never deleted.
type GuildConfig struct {
	GuildID     string                 `bson:"guildId" json:"guildId"`
	LogChannel  *string                `bson:"logChannel" json:"logChannel"`
	EnabledLogs EnabledLogs            `bson:"enabledLogs" json:"enabledLogs"`
	Prefix      *string                `bson:"prefix" json:"prefix"`
	Settings    map[string]interface{} `bson:"settings,omitempty" json:"settings,omitempty"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// NewGuildConfig builds a complete default document for a guild.
func NewGuildConfig(guildID string) *GuildConfig {
	now := time.Now()
	return &GuildConfig{
		GuildID:     guildID,
		LogChannel:  nil,
		EnabledLogs: DefaultEnabledLogs(),
		Prefix:      nil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ConfigBroadcast is the subset of a guild configuration carried on the
// guild:config:updated notification.
type ConfigBroadcast struct {
	GuildID string              `json:"guildId"`
	Config  ConfigBroadcastBody `json:"config"`
}

// ConfigBroadcastBody mirrors the fields the bot hot-reloads.
type ConfigBroadcastBody struct {
	LogChannel  *string     `json:"logChannel"`
	EnabledLogs EnabledLogs `json:"enabledLogs"`
	Prefix      *string     `json:"prefix"`
}
