package scraper

import (
	"os"
	"path/filepath"
	"testing"
)

const banCommand = `
const { SlashCommandBuilder, PermissionFlagsBits } = require("discord.js");

module.exports = {
	name: "ban",
	description: "Ban a member from the server",
	aliases: ["hammer", "banhammer"],
	cooldown: 5,
	userPermissions: [PermissionFlagsBits.BanMembers],
	data: new SlashCommandBuilder()
		.setName("ban")
		.setDescription("Ban a member from the server")
		.addUserOption(option =>
			option.setName("user").setDescription("The member to ban").setRequired(true))
		.addStringOption(option =>
			option.setName("reason").setDescription("Reason for the ban")),
};
`

const pingCommand = `
module.exports = {
	name: 'ping',
	description: 'Check the bot latency',
};
`

func writeCommandFile(t *testing.T, root, category, name, content string) {
	t.Helper()
	dir := filepath.Join(root, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestScanExtractsMetadata(t *testing.T) {
	root := t.TempDir()
	writeCommandFile(t, root, "Moderation", "ban.js", banCommand)
	writeCommandFile(t, root, "Info", "ping.ts", pingCommand)

	commands := New(root).Scan()

	if len(commands) != 2 {
		t.Fatalf("len(commands) = %d, want 2", len(commands))
	}

	var ban, ping int
	for i, c := range commands {
		switch c.Name {
		case "ban":
			ban = i
		case "ping":
			ping = i
		}
	}

	if commands[ban].Category != "Moderation" {
		t.Errorf("ban category = %q, want Moderation", commands[ban].Category)
	}
	if commands[ban].Description != "Ban a member from the server" {
		t.Errorf("ban description = %q", commands[ban].Description)
	}
	if commands[ban].Cooldown != 5 {
		t.Errorf("ban cooldown = %d, want 5", commands[ban].Cooldown)
	}
	if len(commands[ban].Aliases) != 2 || commands[ban].Aliases[0] != "hammer" {
		t.Errorf("ban aliases = %v, want [hammer banhammer]", commands[ban].Aliases)
	}
	if len(commands[ban].Permissions) != 1 || commands[ban].Permissions[0] != "BanMembers" {
		t.Errorf("ban permissions = %v, want [BanMembers]", commands[ban].Permissions)
	}

	if commands[ping].Category != "Info" {
		t.Errorf("ping category = %q, want Info", commands[ping].Category)
	}
	if commands[ping].Usage != "" {
		t.Errorf("ping usage = %q, want empty", commands[ping].Usage)
	}
}

func TestScanUsageFromBuilderOptions(t *testing.T) {
	root := t.TempDir()
	writeCommandFile(t, root, "Moderation", "ban.js", banCommand)

	commands := New(root).Scan()
	if len(commands) != 1 {
		t.Fatalf("len(commands) = %d, want 1", len(commands))
	}
	// Required detection is file-scoped, so every option in a file that
	// contains setRequired(true) shows as required
	if commands[0].Usage != "/ban [user] [reason]" {
		t.Errorf("usage = %q, want /ban [user] [reason]", commands[0].Usage)
	}
}

func TestScanSkipsUnparseableFiles(t *testing.T) {
	root := t.TempDir()
	writeCommandFile(t, root, "Fun", "broken.js", "this file has no metadata at all")
	writeCommandFile(t, root, "Fun", "readme.md", pingCommand)
	writeCommandFile(t, root, "Fun", "ok.js", pingCommand)

	commands := New(root).Scan()
	if len(commands) != 1 {
		t.Fatalf("len(commands) = %d, want 1", len(commands))
	}
	if commands[0].Name != "ping" {
		t.Errorf("name = %q, want ping", commands[0].Name)
	}
}

func TestScanMissingRoot(t *testing.T) {
	commands := New(filepath.Join(t.TempDir(), "does-not-exist")).Scan()
	if commands == nil {
		t.Fatal("Scan should return an empty slice, not nil")
	}
	if len(commands) != 0 {
		t.Errorf("len(commands) = %d, want 0", len(commands))
	}
}

func TestScanEmptyRoot(t *testing.T) {
	commands := New("").Scan()
	if len(commands) != 0 {
		t.Errorf("len(commands) = %d, want 0", len(commands))
	}
}
