package models

// Command is the scraped metadata of one bot command, used by the landing
// page command list. Extracted from source text, so every field beyond name
// and description is best-effort.
type Command struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Usage       string   `json:"usage,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
	Cooldown    int      `json:"cooldown,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// BotStats is served by /api/bot/stats for the landing page counters.
type BotStats struct {
	Servers  int   `json:"servers"`
	Users    int   `json:"users"`
	Commands int   `json:"commands"`
	Uptime   int64 `json:"uptime"`
	Ping     int64 `json:"ping"`
}

// Channel is a text channel entry for the log-channel picker.
type Channel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}
