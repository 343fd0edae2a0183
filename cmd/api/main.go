// Package main is the entry point for the PancyDash Go API.
// It initializes all systems and starts the dashboard server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/PancyDashGo/pkg/auth"
	"github.com/PancyStudios/PancyDashGo/pkg/config"
	"github.com/PancyStudios/PancyDashGo/pkg/database"
	"github.com/PancyStudios/PancyDashGo/pkg/discord"
	"github.com/PancyStudios/PancyDashGo/pkg/errors"
	"github.com/PancyStudios/PancyDashGo/pkg/logger"
	"github.com/PancyStudios/PancyDashGo/pkg/mqtt"
	"github.com/PancyStudios/PancyDashGo/pkg/notify"
	"github.com/PancyStudios/PancyDashGo/pkg/scraper"
	"github.com/PancyStudios/PancyDashGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Starting PancyDash Go...", "Main")

	// Initialize error handler
	var bot *discord.Client
	errors.Init(cfg.ErrorWebhook, func() {
		if bot != nil {
			_ = bot.Stop()
		}
	})

	// Initialize database
	db := database.New()
	if err := db.Connect(cfg.MongoDBURL, cfg.DBName); err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database - it will attempt to reconnect
	}
	defer func() {
		_ = db.Disconnect()
	}()

	// Initialize Discord client
	bot, err = discord.NewClient(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}
	if bot != nil {
		if err := bot.Start(); err != nil {
			logger.Error(fmt.Sprintf("Error connecting to Discord: %v", err), "Main")
		}
		defer func() {
			_ = bot.Stop()
		}()
	}

	// Initialize MQTT
	mqttClientID := "pancydash"
	if !cfg.IsProd() {
		mqttClientID = "pancydash_canary"
	}

	mqttClient := mqtt.New(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Notification fan-out: local websocket subscribers plus the broker
	hub := notify.NewHub()
	defer hub.Close()
	sink := notify.MultiSink{hub, notify.NewMQTTSink(mqttClient, "pancydash")}

	// Scrape command metadata once; it only changes with a bot deploy
	commands := scraper.New(cfg.BotCommandsPath).Scan()
	logger.Info(fmt.Sprintf("Scraped %d commands from %s", len(commands), cfg.BotCommandsPath), "Main")

	// Initialize web server
	server := web.NewServer(cfg.AllowedOrigins())
	web.SetupAPIRoutes(server, &web.API{
		DB:          db,
		Guilds:      database.NewGuildService(db),
		Warns:       database.NewWarnService(db),
		Bans:        database.NewBanService(db),
		Logs:        database.NewLogService(db),
		Stats:       database.NewStatsService(db),
		Bot:         bot,
		Auth:        auth.NewService(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordRedirectURI, cfg.SessionSecret),
		Sink:        sink,
		Hub:         hub,
		Commands:    commands,
		FrontendURL: cfg.FrontendURL,
		StartTime:   time.Now(),
	})
	server.StartAsync(cfg.Port)

	logger.Success("PancyDash Go started successfully!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Shutting down PancyDash Go...", "Main")
}
