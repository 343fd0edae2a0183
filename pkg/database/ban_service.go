package database

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BanService reads the ban records written by the bot. There are no create
// or delete operations on this side.
type BanService struct {
	db *Database
}

// NewBanService creates a BanService backed by db
func NewBanService(db *Database) *BanService {
	return &BanService{db: db}
}

// BanFilter builds the query filter for a guild's ban list. A missing
// parameter defaults to active-only; only an explicit value other than the
// literal string "true" widens to all records regardless of the active
// flag.
func BanFilter(guildID, active string) bson.M {
	if active == "" {
		active = "true"
	}

	filter := bson.M{"guildId": guildID}
	if active == "true" {
		filter["active"] = true
	}
	return filter
}

// List returns a guild's bans, newest first
func (s *BanService) List(ctx context.Context, guildID, active string) ([]models.Ban, error) {
	return s.find(ctx, BanFilter(guildID, active))
}

// ListForUser returns the bans of a single user in a guild
func (s *BanService) ListForUser(ctx context.Context, guildID, userID string) ([]models.Ban, error) {
	return s.find(ctx, bson.M{"guildId": guildID, "userId": userID})
}

func (s *BanService) find(ctx context.Context, filter bson.M) ([]models.Ban, error) {
	col := s.db.GetCollection(CollectionBans)
	if col == nil {
		return nil, fmt.Errorf("database not connected")
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	bans := make([]models.Ban, 0)
	if err := cursor.All(ctx, &bans); err != nil {
		return nil, err
	}
	return bans, nil
}
