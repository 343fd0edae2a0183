package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogService queries and aggregates the append-only audit log written by
// the bot.
type LogService struct {
	db *Database
}

// NewLogService creates a LogService backed by db
func NewLogService(db *Database) *LogService {
	return &LogService{db: db}
}

// LogPage is one page of the log viewer plus the total match count. The
// page and the count come from two separate queries, so the total can lag
// the page under concurrent writes; logs are append-only, so this is fine.
type LogPage struct {
	Logs  []models.Log `json:"logs"`
	Total int64        `json:"total"`
	Limit int64        `json:"limit"`
	Skip  int64        `json:"skip"`
}

// Page returns a filtered page of logs sorted newest-first
func (s *LogService) Page(ctx context.Context, guildID, logType string, limit, skip int64) (*LogPage, error) {
	col := s.db.GetCollection(CollectionLogs)
	if col == nil {
		return nil, fmt.Errorf("database not connected")
	}

	filter := bson.M{"guildId": guildID}
	if logType != "" {
		filter["type"] = logType
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	logs := make([]models.Log, 0)
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &LogPage{Logs: logs, Total: total, Limit: limit, Skip: skip}, nil
}

// Recent returns the newest entries for the activity feed
func (s *LogService) Recent(ctx context.Context, guildID string, limit int64) ([]models.Log, error) {
	col := s.db.GetCollection(CollectionLogs)
	if col == nil {
		return nil, fmt.Errorf("database not connected")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := col.Find(ctx, bson.M{"guildId": guildID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	logs := make([]models.Log, 0)
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Stats returns the total count, the trailing-24h count and the
// count-by-type breakdown sorted descending
func (s *LogService) Stats(ctx context.Context, guildID string) (*models.LogStats, error) {
	col := s.db.GetCollection(CollectionLogs)
	if col == nil {
		return nil, fmt.Errorf("database not connected")
	}

	total, err := col.CountDocuments(ctx, bson.M{"guildId": guildID})
	if err != nil {
		return nil, err
	}

	yesterday := time.Now().Add(-24 * time.Hour)
	last24h, err := col.CountDocuments(ctx, bson.M{
		"guildId":   guildID,
		"createdAt": bson.M{"$gte": yesterday},
	})
	if err != nil {
		return nil, err
	}

	pipeline := bson.A{
		bson.M{"$match": bson.M{"guildId": guildID}},
		bson.M{"$group": bson.M{"_id": "$type", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"count": -1}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	byType := make([]models.TypeCount, 0)
	if err := cursor.All(ctx, &byType); err != nil {
		return nil, err
	}

	return &models.LogStats{Total: total, Last24h: last24h, ByType: byType}, nil
}

// ActivityRow is one (day, type) cell of the weekly activity aggregation
type ActivityRow struct {
	Date  string `bson:"date"`
	Type  string `bson:"type"`
	Count int64  `bson:"count"`
}

// BucketForType maps a log type onto one of the four coarse activity
// buckets by substring match. Types matching none are excluded from the
// weekly view; the raw log list is unaffected.
func BucketForType(logType string) string {
	switch {
	case strings.Contains(logType, "message"):
		return "messages"
	case strings.Contains(logType, "Member"):
		return "joins"
	case strings.Contains(logType, "warn"):
		return "warns"
	case strings.Contains(logType, "command"):
		return "commands"
	default:
		return ""
	}
}

// BuildActivity folds aggregation rows into the trailing 7 calendar days,
// oldest first, labelled with short weekday names. Days are taken in UTC:
// the aggregation keys rows with $dateToString, which groups in UTC, so
// the fold must slice the week the same way whatever the server zone is.
func BuildActivity(now time.Time, rows []ActivityRow) []models.DayActivity {
	result := make([]models.DayActivity, 0, 7)

	for i := 6; i >= 0; i-- {
		day := now.UTC().AddDate(0, 0, -i)
		dateStr := day.Format("2006-01-02")

		entry := models.DayActivity{Date: day.Weekday().String()[:3]}

		for _, row := range rows {
			if row.Date != dateStr {
				continue
			}
			switch BucketForType(row.Type) {
			case "messages":
				entry.Messages += row.Count
			case "joins":
				entry.Joins += row.Count
			case "warns":
				entry.Warns += row.Count
			case "commands":
				entry.Commands += row.Count
			}
		}

		result = append(result, entry)
	}

	return result
}

// Activity returns the weekly activity chart data for a guild
func (s *LogService) Activity(ctx context.Context, guildID string) ([]models.DayActivity, error) {
	col := s.db.GetCollection(CollectionLogs)
	if col == nil {
		return nil, fmt.Errorf("database not connected")
	}

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)

	pipeline := bson.A{
		bson.M{"$match": bson.M{
			"guildId":   guildID,
			"createdAt": bson.M{"$gte": sevenDaysAgo},
		}},
		bson.M{"$group": bson.M{
			"_id": bson.M{
				"date": bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
				"type": "$type",
			},
			"count": bson.M{"$sum": 1},
		}},
		bson.M{"$project": bson.M{
			"_id":   0,
			"date":  "$_id.date",
			"type":  "$_id.type",
			"count": 1,
		}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	rows := make([]ActivityRow, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	return BuildActivity(time.Now(), rows), nil
}
