package database

import "testing"

func TestBanFilter(t *testing.T) {
	tests := []struct {
		name       string
		active     string
		wantActive bool
	}{
		{"explicit true narrows", "true", true},
		{"missing parameter defaults to active-only", "", true},
		{"false returns all", "false", false},
		{"arbitrary string returns all", "yes", false},
		{"case sensitive", "TRUE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := BanFilter("guild-1", tt.active)

			if filter["guildId"] != "guild-1" {
				t.Errorf("guildId = %v, want guild-1", filter["guildId"])
			}

			_, hasActive := filter["active"]
			if hasActive != tt.wantActive {
				t.Errorf("active key present = %v, want %v", hasActive, tt.wantActive)
			}
		})
	}
}
