package database

import (
	"testing"

	"github.com/PancyStudios/PancyDashGo/pkg/models"
	"github.com/goccy/go-json"
)

func TestConfigUpdateUnmarshalTracksPresence(t *testing.T) {
	var update ConfigUpdate
	if err := json.Unmarshal([]byte(`{"prefix": "?"}`), &update); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !update.HasPrefix {
		t.Error("HasPrefix should be true when the key is present")
	}
	if update.Prefix == nil || *update.Prefix != "?" {
		t.Errorf("Prefix = %v, want ?", update.Prefix)
	}
	if update.HasLogChannel {
		t.Error("HasLogChannel should be false when the key is absent")
	}
	if update.EnabledLogs != nil {
		t.Error("EnabledLogs should be nil when the key is absent")
	}
}

func TestConfigUpdateUnmarshalNullClears(t *testing.T) {
	var update ConfigUpdate
	if err := json.Unmarshal([]byte(`{"logChannel": null}`), &update); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !update.HasLogChannel {
		t.Error("HasLogChannel should be true for an explicit null")
	}
	if update.LogChannel != nil {
		t.Errorf("LogChannel = %v, want nil", update.LogChannel)
	}
}

func TestMergeEnabledLogsPartial(t *testing.T) {
	logs := models.DefaultEnabledLogs()

	MergeEnabledLogs(&logs, map[string]bool{
		"messages": false,
		"voice":    false,
	})

	if logs.Messages {
		t.Error("messages should be disabled")
	}
	if logs.Voice {
		t.Error("voice should be disabled")
	}

	// Unspecified keys keep their prior values
	if !logs.Members || !logs.Roles || !logs.Channels || !logs.Reactions ||
		!logs.Server || !logs.Invites || !logs.Webhooks || !logs.Events ||
		!logs.Automod || !logs.Integrations {
		t.Error("unspecified keys must remain enabled")
	}
}

func TestMergeEnabledLogsIgnoresUnknownKeys(t *testing.T) {
	logs := models.DefaultEnabledLogs()
	MergeEnabledLogs(&logs, map[string]bool{"nonsense": false})

	if logs != models.DefaultEnabledLogs() {
		t.Error("unknown keys must not change anything")
	}
}

func TestApplyConfigUpdate(t *testing.T) {
	cfg := models.NewGuildConfig("123")
	channel := "456"
	prefix := "!"

	ApplyConfigUpdate(cfg, ConfigUpdate{
		LogChannel:    &channel,
		HasLogChannel: true,
		Prefix:        &prefix,
		HasPrefix:     true,
		EnabledLogs:   map[string]bool{"automod": false},
	})

	if cfg.LogChannel == nil || *cfg.LogChannel != "456" {
		t.Errorf("LogChannel = %v, want 456", cfg.LogChannel)
	}
	if cfg.Prefix == nil || *cfg.Prefix != "!" {
		t.Errorf("Prefix = %v, want !", cfg.Prefix)
	}
	if cfg.EnabledLogs.Automod {
		t.Error("automod should be disabled")
	}
	if !cfg.EnabledLogs.Messages {
		t.Error("messages should stay enabled")
	}
}

func TestApplyConfigUpdateAbsentKeysUntouched(t *testing.T) {
	cfg := models.NewGuildConfig("123")
	channel := "456"
	cfg.LogChannel = &channel

	ApplyConfigUpdate(cfg, ConfigUpdate{})

	if cfg.LogChannel == nil || *cfg.LogChannel != "456" {
		t.Error("an empty update must not touch logChannel")
	}
}

func TestNonOverlappingUpdatesMergeCleanly(t *testing.T) {
	cfg := models.NewGuildConfig("123")
	channel := "456"
	prefix := "?"

	// Two back-to-back updates touching different top-level fields
	ApplyConfigUpdate(cfg, ConfigUpdate{LogChannel: &channel, HasLogChannel: true})
	ApplyConfigUpdate(cfg, ConfigUpdate{Prefix: &prefix, HasPrefix: true})

	if cfg.LogChannel == nil || *cfg.LogChannel != "456" {
		t.Error("logChannel from the first update must survive the second")
	}
	if cfg.Prefix == nil || *cfg.Prefix != "?" {
		t.Error("prefix from the second update must be applied")
	}
}
