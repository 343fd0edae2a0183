package database

import (
	"testing"
	"time"

	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeWarn(userID, reason string) models.Warn {
	return models.Warn{
		ID:          primitive.NewObjectID(),
		GuildID:     "guild-1",
		UserID:      userID,
		ModeratorID: "mod-1",
		Reason:      reason,
		Timestamp:   time.Now(),
	}
}

func TestGroupWarns(t *testing.T) {
	warns := []models.Warn{
		makeWarn("a", "spam"),
		makeWarn("b", "links"),
		makeWarn("a", "caps"),
	}

	grouped := GroupWarns(warns)

	if len(grouped) != 2 {
		t.Fatalf("len(grouped) = %d, want 2", len(grouped))
	}

	// First-appearance order is preserved
	if grouped[0].UserID != "a" || grouped[1].UserID != "b" {
		t.Errorf("group order = [%s %s], want [a b]", grouped[0].UserID, grouped[1].UserID)
	}

	if grouped[0].TotalWarns != 2 || len(grouped[0].Warnings) != 2 {
		t.Errorf("user a: totalWarns = %d, warnings = %d, want 2/2",
			grouped[0].TotalWarns, len(grouped[0].Warnings))
	}

	if grouped[0].Username != "User a" {
		t.Errorf("Username = %q, want placeholder %q", grouped[0].Username, "User a")
	}
}

func TestGroupWarnsEmpty(t *testing.T) {
	grouped := GroupWarns(nil)
	if grouped == nil {
		t.Fatal("GroupWarns(nil) should return an empty slice, not nil")
	}
	if len(grouped) != 0 {
		t.Errorf("len = %d, want 0", len(grouped))
	}
}
