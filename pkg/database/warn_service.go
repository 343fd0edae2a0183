package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrWarnNotFound is returned when a scoped delete matches no document.
var ErrWarnNotFound = errors.New("warning not found")

// WarnService reads and deletes the moderation warnings written by the bot.
type WarnService struct {
	db *Database
}

// NewWarnService creates a WarnService backed by db
func NewWarnService(db *Database) *WarnService {
	return &WarnService{db: db}
}

// GroupWarns groups warnings by user in first-appearance order. The
// username is a stand-in; no Discord identity lookup happens here.
func GroupWarns(warns []models.Warn) []models.UserWarnings {
	grouped := make([]models.UserWarnings, 0)
	index := make(map[string]int)

	for _, warn := range warns {
		if i, seen := index[warn.UserID]; seen {
			grouped[i].Warnings = append(grouped[i].Warnings, warn)
			grouped[i].TotalWarns++
			continue
		}
		index[warn.UserID] = len(grouped)
		grouped = append(grouped, models.UserWarnings{
			UserID:     warn.UserID,
			Username:   fmt.Sprintf("User %s", warn.UserID),
			Warnings:   []models.Warn{warn},
			TotalWarns: 1,
		})
	}

	return grouped
}

// ListGrouped returns all warnings of a guild, newest first, grouped by user
func (s *WarnService) ListGrouped(ctx context.Context, guildID string) ([]models.UserWarnings, error) {
	warns, err := s.find(ctx, bson.M{"guildId": guildID})
	if err != nil {
		return nil, err
	}
	return GroupWarns(warns), nil
}

// ListForUser returns the warnings of a single user in a guild
func (s *WarnService) ListForUser(ctx context.Context, guildID, userID string) (*models.UserWarnings, error) {
	warns, err := s.find(ctx, bson.M{"guildId": guildID, "userId": userID})
	if err != nil {
		return nil, err
	}

	return &models.UserWarnings{
		UserID:     userID,
		Username:   fmt.Sprintf("User %s", userID),
		Warnings:   warns,
		TotalWarns: len(warns),
	}, nil
}

// Delete removes one warning scoped by (id, guildId) so a request for the
// wrong guild cannot remove another guild's warning. Returns
// ErrWarnNotFound when nothing matches, including malformed ids.
func (s *WarnService) Delete(ctx context.Context, guildID, warnID string) error {
	col := s.db.GetCollection(CollectionWarns)
	if col == nil {
		return fmt.Errorf("database not connected")
	}

	oid, err := primitive.ObjectIDFromHex(warnID)
	if err != nil {
		return ErrWarnNotFound
	}

	result, err := col.DeleteOne(ctx, bson.M{"_id": oid, "guildId": guildID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrWarnNotFound
	}
	return nil
}

func (s *WarnService) find(ctx context.Context, filter bson.M) ([]models.Warn, error) {
	col := s.db.GetCollection(CollectionWarns)
	if col == nil {
		return nil, fmt.Errorf("database not connected")
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	warns := make([]models.Warn, 0)
	if err := cursor.All(ctx, &warns); err != nil {
		return nil, err
	}
	return warns, nil
}
