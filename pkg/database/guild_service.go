package database

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyDashGo/pkg/logger"
	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GuildService manages the per-guild configuration documents.
type GuildService struct {
	db *Database
}

// NewGuildService creates a GuildService backed by db
func NewGuildService(db *Database) *GuildService {
	return &GuildService{db: db}
}

// ConfigUpdate is a partial guild configuration update. Field presence is
// tracked separately from the value so that an explicit null clears
// logChannel or prefix while an omitted key leaves it untouched.
type ConfigUpdate struct {
	LogChannel    *string
	HasLogChannel bool
	EnabledLogs   map[string]bool
	Prefix        *string
	HasPrefix     bool
}

// UnmarshalJSON decodes the PATCH body, recording which keys were present
func (u *ConfigUpdate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["logChannel"]; ok {
		u.HasLogChannel = true
		if err := json.Unmarshal(v, &u.LogChannel); err != nil {
			return err
		}
	}
	if v, ok := raw["enabledLogs"]; ok {
		if err := json.Unmarshal(v, &u.EnabledLogs); err != nil {
			return err
		}
	}
	if v, ok := raw["prefix"]; ok {
		u.HasPrefix = true
		if err := json.Unmarshal(v, &u.Prefix); err != nil {
			return err
		}
	}
	return nil
}

// MergeEnabledLogs applies the supplied switches key by key. Keys absent
// from the update keep their prior value; unknown keys are ignored.
func MergeEnabledLogs(dst *models.EnabledLogs, updates map[string]bool) {
	for key, value := range updates {
		switch key {
		case "messages":
			dst.Messages = value
		case "members":
			dst.Members = value
		case "roles":
			dst.Roles = value
		case "channels":
			dst.Channels = value
		case "voice":
			dst.Voice = value
		case "reactions":
			dst.Reactions = value
		case "server":
			dst.Server = value
		case "invites":
			dst.Invites = value
		case "webhooks":
			dst.Webhooks = value
		case "events":
			dst.Events = value
		case "automod":
			dst.Automod = value
		case "integrations":
			dst.Integrations = value
		}
	}
}

// ApplyConfigUpdate merges a partial update into a configuration document
func ApplyConfigUpdate(cfg *models.GuildConfig, update ConfigUpdate) {
	if update.HasLogChannel {
		cfg.LogChannel = update.LogChannel
	}
	if update.EnabledLogs != nil {
		MergeEnabledLogs(&cfg.EnabledLogs, update.EnabledLogs)
	}
	if update.HasPrefix {
		cfg.Prefix = update.Prefix
	}
}

// GetOrCreateConfig returns the configuration for a guild, creating and
// persisting a default document when none exists. The response is always a
// complete configuration, never a partial document.
func (s *GuildService) GetOrCreateConfig(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	col := s.db.GetCollection(CollectionGuilds)
	if col == nil {
		return nil, fmt.Errorf("database not connected")
	}

	var cfg models.GuildConfig
	err := col.FindOne(ctx, bson.M{"guildId": guildID}).Decode(&cfg)
	if err == nil {
		return &cfg, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	created := models.NewGuildConfig(guildID)
	if _, err := col.InsertOne(ctx, created); err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Created default config for guild %s", guildID), "Guild")
	return created, nil
}

// UpdateConfig applies a partial update, creating the document seeded with
// the updates merged onto defaults when absent. Read-merge-save with no
// locking: concurrent updates to the same guild race last-write-wins per
// field.
func (s *GuildService) UpdateConfig(ctx context.Context, guildID string, update ConfigUpdate) (*models.GuildConfig, error) {
	col := s.db.GetCollection(CollectionGuilds)
	if col == nil {
		return nil, fmt.Errorf("database not connected")
	}

	var cfg models.GuildConfig
	err := col.FindOne(ctx, bson.M{"guildId": guildID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		created := models.NewGuildConfig(guildID)
		ApplyConfigUpdate(created, update)
		if _, err := col.InsertOne(ctx, created); err != nil {
			return nil, err
		}
		logger.Info(fmt.Sprintf("Created config for guild %s from update", guildID), "Guild")
		return created, nil
	}
	if err != nil {
		return nil, err
	}

	ApplyConfigUpdate(&cfg, update)
	cfg.UpdatedAt = time.Now()

	if _, err := col.ReplaceOne(ctx, bson.M{"guildId": guildID}, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
