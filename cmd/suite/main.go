package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/benjamonnguyen/pomomo-suite/discordgo"
	"github.com/benjamonnguyen/pomomo-suite/restapi"
	dg "github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

const (
	RepoURL = "https://github.com/benjamonnguyen/pomomo-suite"
	Version = "0.1.0"
)

func main() {
	isProd := flag.Bool("prod", false, "load .env instead of .env.dev")
	flag.Parse()
	topCtx, topCtxC := context.WithCancel(context.Background())

	// config
	cfg := pomomo.LoadConfig(*isProd)
	if err := cfg.RequireBotToken(); err != nil {
		log.Fatal(err)
	}

	// logger
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal("invalid log level", "level", cfg.LogLevel, "err", err)
	}
	log.SetLevel(level)
	log.SetReportCaller(!*isProd)

	durations, err := pomomo.LoadDurations(cfg.SettingsPath)
	if err != nil {
		log.Fatal("failed to load timer settings", "path", cfg.SettingsPath, "err", err)
	}
	log.Info("loaded timer settings", "work", durations.NominalDuration(pomomo.WorkSession), "break", durations.NominalDuration(pomomo.BreakSession))

	// set up discord cl
	cl, err := dg.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatal(err)
	}
	cl.ShouldRetryOnRateLimit = false
	cl.Client = &http.Client{Timeout: (20 * time.Second)}
	cl.UserAgent = fmt.Sprintf("%s (%s, v%s)", cfg.BotName, RepoURL, Version)
	cl.Identify.Intents = dg.IntentsGuilds

	dm := NewDiscordMessenger(cl)
	apiClient := restapi.NewClient(cfg.APIURL, log.Default().WithPrefix("restapi"))
	workspaces := NewWorkspaces(apiClient, log.Default())
	timers := NewTimerManager(durations, func(channelID pomomo.ChannelID) pomomo.Notifier {
		return discordgo.NewChannelNotifier(cl, channelID, log.Default())
	})
	displays := NewTimerDisplays(timers, dm)
	displays.Start(topCtx)

	// discord event hooks
	cl.AddHandler(func(s *dg.Session, r *dg.Ready) {
		log.Info("connected", "user", r.User.Username, "guilds", len(r.Guilds))
	})
	cl.AddHandler(func(s *dg.Session, c *dg.ChannelDelete) {
		channelID := pomomo.ChannelID(c.ID)
		timers.Remove(channelID)
		workspaces.Remove(channelID)
		displays.Forget(channelID)
		log.Debug("dropped channel state", "channelID", c.ID)
	})
	cl.AddHandler(func(s *dg.Session, m *dg.InteractionCreate) {
		_ = TimerCommand(timers, displays, dm, m) ||
			TimerButton(timers, displays, dm, m) ||
			TodoCommand(topCtx, workspaces, dm, m) ||
			NoteCommand(topCtx, workspaces, dm, m)
	})

	// open connection
	if err := cl.Open(); err != nil {
		log.Fatal("Error opening connection", "err", err)
	}
	log.Info(cfg.BotName + " running. Press CTRL-C to exit.")

	// graceful shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	log.Info("terminating " + cfg.BotName)
	topCtxC()
	shutdownTimeout, shutdownTimeoutC := context.WithTimeout(context.Background(), time.Minute)
	go func() {
		// to ensure proper shutdown ordering...
		timers.Shutdown()
		displays.Wait()
		if err := cl.Close(); err != nil {
			log.Error(err)
		}
		shutdownTimeoutC()
	}()
	<-shutdownTimeout.Done()
	if shutdownTimeout.Err() != context.Canceled {
		log.Error("failed to shut down gracefully", "err", shutdownTimeout.Err())
	}
}
