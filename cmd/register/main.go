package main

import (
	"flag"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-suite"
)

func main() {
	isProd := flag.Bool("prod", false, "load .env instead of .env.dev")
	guildID := flag.String("guild", "", "register to a single guild instead of globally")
	flag.Parse()

	cfg := pomomo.LoadConfig(*isProd)
	if err := cfg.RequireBotToken(); err != nil {
		log.Fatal(err)
	}

	bot, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatal("failed to create session", "err", err)
	}

	// Open a connection
	if err := bot.Open(); err != nil {
		log.Fatal("failed to open connection", "err", err)
	}
	defer bot.Close() //nolint

	app, err := bot.Application("@me")
	if err != nil {
		log.Fatal("failed to get application", "err", err)
	}

	created, err := bot.ApplicationCommandBulkOverwrite(app.ID, *guildID, pomomo.Commands)
	if err != nil {
		log.Fatal("failed to register commands", "err", err)
	}

	for _, cmd := range created {
		log.Info("registered", "name", cmd.Name, "description", cmd.Description)
	}
}
