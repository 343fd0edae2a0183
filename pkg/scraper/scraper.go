// Package scraper extracts command metadata from the sibling bot project's
// source tree by pattern matching on literal source text. This is
// best-effort documentation generation, not a parser: files that do not
// match are skipped, and a missing project path yields an empty list,
// which is the expected production state.
package scraper

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/PancyStudios/PancyDashGo/pkg/logger"
	"github.com/PancyStudios/PancyDashGo/pkg/models"
)

// The bot organizes its commands into these fixed category directories.
var categories = []string{"Fun", "Info", "Moderation"}

var (
	nameRe      = regexp.MustCompile(`name:\s*["'](.+?)["']`)
	descRe      = regexp.MustCompile(`description:\s*["'](.+?)["']`)
	aliasesRe   = regexp.MustCompile(`aliases:\s*\[(.*?)\]`)
	cooldownRe  = regexp.MustCompile(`cooldown:\s*(\d+)`)
	userPermsRe = regexp.MustCompile(`userPermissions:\s*\[(.*?)\]`)
	optionRe    = regexp.MustCompile(`\.setName\(["'](.+?)["']\)`)
)

// Scraper reads command metadata from a bot source tree.
type Scraper struct {
	root string
}

// New creates a Scraper rooted at the bot's commands directory. An empty
// root disables scanning.
func New(root string) *Scraper {
	return &Scraper{root: root}
}

// Scan walks the category directories and extracts every command that
// matches. Individual file failures are logged and skipped.
func (s *Scraper) Scan() []models.Command {
	commands := make([]models.Command, 0)

	if s.root == "" {
		return commands
	}
	if _, err := os.Stat(s.root); err != nil {
		logger.Warn(fmt.Sprintf("Bot commands path %s not found; serving an empty command list", s.root), "Scraper")
		return commands
	}

	for _, category := range categories {
		categoryPath := filepath.Join(s.root, category)

		entries, err := os.ReadDir(categoryPath)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := filepath.Ext(entry.Name())
			if ext != ".js" && ext != ".ts" {
				continue
			}

			content, err := os.ReadFile(filepath.Join(categoryPath, entry.Name()))
			if err != nil {
				logger.Warn(fmt.Sprintf("Failed to read command file %s: %v", entry.Name(), err), "Scraper")
				continue
			}

			if cmd := parseCommandFile(string(content), category); cmd != nil {
				commands = append(commands, *cmd)
			}
		}
	}

	return commands
}

// parseCommandFile scrapes one source file; nil when name or description
// cannot be found
func parseCommandFile(content, category string) *models.Command {
	nameMatch := nameRe.FindStringSubmatch(content)
	descMatch := descRe.FindStringSubmatch(content)
	if nameMatch == nil || descMatch == nil {
		return nil
	}

	cmd := &models.Command{
		Name:        nameMatch[1],
		Description: descMatch[1],
		Category:    category,
	}

	if m := aliasesRe.FindStringSubmatch(content); m != nil {
		cmd.Aliases = splitList(m[1])
	}

	if m := cooldownRe.FindStringSubmatch(content); m != nil {
		if cooldown, err := strconv.Atoi(m[1]); err == nil {
			cmd.Cooldown = cooldown
		}
	}

	if m := userPermsRe.FindStringSubmatch(content); m != nil {
		perms := splitList(m[1])
		for i, p := range perms {
			perms[i] = strings.ReplaceAll(p, "PermissionFlagsBits.", "")
		}
		if len(perms) > 0 {
			cmd.Permissions = perms
		}
	}

	cmd.Usage = extractUsage(content, cmd.Name)

	return cmd
}

// splitList splits a scraped "a", "b" style list into clean entries
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `'"`)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// extractUsage derives a usage string from the SlashCommandBuilder option
// calls; required options are wrapped in brackets, optional ones in
// parentheses
func extractUsage(content, commandName string) string {
	hasOptions := strings.Contains(content, "addStringOption") ||
		strings.Contains(content, "addUserOption") ||
		strings.Contains(content, "addIntegerOption") ||
		strings.Contains(content, "addBooleanOption")
	if !hasOptions {
		return ""
	}

	matches := optionRe.FindAllStringSubmatch(content, -1)
	options := make([]string, 0, len(matches))

	for _, m := range matches {
		// The first setName is the command itself
		if m[1] == commandName {
			continue
		}
		required := strings.Contains(content, fmt.Sprintf(`setName("%s")`, m[1])) &&
			strings.Contains(content, ".setRequired(true)")
		if required {
			options = append(options, fmt.Sprintf("[%s]", m[1]))
		} else {
			options = append(options, fmt.Sprintf("(%s)", m[1]))
		}
	}

	if len(options) == 0 {
		return ""
	}
	return fmt.Sprintf("/%s %s", commandName, strings.Join(options, " "))
}
