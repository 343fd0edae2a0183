package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogActor is a snapshot of the user that performed or received an action.
// Snapshots are stored because the user may have left the guild (or Discord)
// by the time the log is viewed.
type LogActor struct {
	ID       string `bson:"id,omitempty" json:"id,omitempty"`
	Username string `bson:"username,omitempty" json:"username,omitempty"`
	Avatar   string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
}

// Log is an append-only audit entry in the "logs" collection, one per
// observed Discord event. Written by the bot, queried and aggregated here.
type Log struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuildID   string             `bson:"guildId" json:"guildId"`
	Type      string             `bson:"type" json:"type"`
	Action    string             `bson:"action" json:"action"`
	Executor  *LogActor          `bson:"executor,omitempty" json:"executor,omitempty"`
	Target    *LogActor          `bson:"target,omitempty" json:"target,omitempty"`
	Changes   interface{}        `bson:"changes,omitempty" json:"changes,omitempty"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Metadata  interface{}        `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// TypeCount is one row of the count-by-type breakdown.
type TypeCount struct {
	Type  string `bson:"_id" json:"type"`
	Count int64  `bson:"count" json:"count"`
}

// LogStats is the aggregate view served by /api/logs/:guildId/stats.
type LogStats struct {
	Total   int64       `json:"total"`
	Last24h int64       `json:"last24h"`
	ByType  []TypeCount `json:"byType"`
}

// DayActivity is one calendar day of the weekly activity chart. Log types
// that match none of the four buckets are excluded from this view only.
type DayActivity struct {
	Date     string `json:"date"`
	Messages int64  `json:"messages"`
	Joins    int64  `json:"joins"`
	Warns    int64  `json:"warns"`
	Commands int64  `json:"commands"`
}

// GuildStats is the aggregate view behind the dashboard overview cards.
type GuildStats struct {
	TotalWarns      int64      `json:"totalWarns"`
	WarnsLast30Days int64      `json:"warnsLast30Days"`
	TotalBans       int64      `json:"totalBans"`
	TotalLogs       int64      `json:"totalLogs"`
	LogsToday       int64      `json:"logsToday"`
	Sparklines      Sparklines `json:"sparklines"`
}

// Sparklines carries the 7-day trend series, oldest day first.
type Sparklines struct {
	Logs  []int64 `json:"logs"`
	Warns []int64 `json:"warns"`
}
