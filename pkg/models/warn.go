package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Warn is a single moderation warning in the "warns" collection. Warns are
// written by the bot; the dashboard only reads and deletes them.
type Warn struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuildID     string             `bson:"guildId" json:"guildId"`
	UserID      string             `bson:"userId" json:"userId"`
	ModeratorID string             `bson:"moderatorId" json:"moderatorId"`
	Reason      string             `bson:"reason" json:"reason"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// UserWarnings groups a user's warnings for the moderation panel.
// Username is a placeholder; no Discord identity lookup is performed here.
type UserWarnings struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	Warnings   []Warn `json:"warnings"`
	TotalWarns int    `json:"totalWarns"`
}
