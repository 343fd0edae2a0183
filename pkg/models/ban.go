package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ban is a ban record in the "bans" collection. Records are created by the
// bot; the active flag is flipped there on unban. The dashboard treats the
// collection as read-only.
type Ban struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BanID        string             `bson:"banId" json:"banId"`
	GuildID      string             `bson:"guildId" json:"guildId"`
	UserID       string             `bson:"userId" json:"userId"`
	ModeratorID  *string            `bson:"moderatorId" json:"moderatorId"`
	Reason       string             `bson:"reason" json:"reason"`
	Username     string             `bson:"username" json:"username"`
	UserTag      *string            `bson:"userTag" json:"userTag"`
	ModeratorTag *string            `bson:"moderatorTag" json:"moderatorTag"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
