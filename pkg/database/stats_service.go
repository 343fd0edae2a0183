package database

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

// StatsService computes the aggregated dashboard overview across the warn,
// ban and log collections.
type StatsService struct {
	db *Database
}

// NewStatsService creates a StatsService backed by db
func NewStatsService(db *Database) *StatsService {
	return &StatsService{db: db}
}

// DayBounds returns the fixed day-boundary window (local midnight to
// 23:59:59.999) of the day daysAgo days before ref.
func DayBounds(ref time.Time, daysAgo int) (time.Time, time.Time) {
	day := ref.AddDate(0, 0, -daysAgo)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// GuildStats builds the overview card numbers and the two 7-day sparklines.
// The sparkline windows are queried one day at a time, sequentially; each
// query is independent and idempotent, so ordering does not matter.
func (s *StatsService) GuildStats(ctx context.Context, guildID string) (*models.GuildStats, error) {
	warns := s.db.GetCollection(CollectionWarns)
	bans := s.db.GetCollection(CollectionBans)
	logs := s.db.GetCollection(CollectionLogs)
	if warns == nil || bans == nil || logs == nil {
		return nil, fmt.Errorf("database not connected")
	}

	now := time.Now()

	totalWarns, err := warns.CountDocuments(ctx, bson.M{"guildId": guildID})
	if err != nil {
		return nil, err
	}

	thirtyDaysAgo := now.AddDate(0, 0, -30)
	warnsLast30Days, err := warns.CountDocuments(ctx, bson.M{
		"guildId":   guildID,
		"timestamp": bson.M{"$gte": thirtyDaysAgo},
	})
	if err != nil {
		return nil, err
	}

	totalBans, err := bans.CountDocuments(ctx, bson.M{"guildId": guildID, "active": true})
	if err != nil {
		return nil, err
	}

	totalLogs, err := logs.CountDocuments(ctx, bson.M{"guildId": guildID})
	if err != nil {
		return nil, err
	}

	todayStart, _ := DayBounds(now, 0)
	logsToday, err := logs.CountDocuments(ctx, bson.M{
		"guildId":   guildID,
		"createdAt": bson.M{"$gte": todayStart},
	})
	if err != nil {
		return nil, err
	}

	logsSparkline := make([]int64, 0, 7)
	for i := 6; i >= 0; i-- {
		start, end := DayBounds(now, i)
		count, err := logs.CountDocuments(ctx, bson.M{
			"guildId":   guildID,
			"createdAt": bson.M{"$gte": start, "$lte": end},
		})
		if err != nil {
			return nil, err
		}
		logsSparkline = append(logsSparkline, count)
	}

	warnsSparkline := make([]int64, 0, 7)
	for i := 6; i >= 0; i-- {
		start, end := DayBounds(now, i)
		count, err := warns.CountDocuments(ctx, bson.M{
			"guildId":   guildID,
			"timestamp": bson.M{"$gte": start, "$lte": end},
		})
		if err != nil {
			return nil, err
		}
		warnsSparkline = append(warnsSparkline, count)
	}

	return &models.GuildStats{
		TotalWarns:      totalWarns,
		WarnsLast30Days: warnsLast30Days,
		TotalBans:       totalBans,
		TotalLogs:       totalLogs,
		LogsToday:       logsToday,
		Sparklines: models.Sparklines{
			Logs:  logsSparkline,
			Warns: warnsSparkline,
		},
	}, nil
}
