package main

import (
	"context"
	"errors"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/benjamonnguyen/pomomo-suite/cmd/suite/models"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

func toOptionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) optionMap {
	m := make(optionMap, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func (m optionMap) String(name string) string {
	if opt, ok := m[name]; ok && opt.Type == discordgo.ApplicationCommandOptionString {
		return opt.StringValue()
	}
	return ""
}

func (m optionMap) Int(name string) int64 {
	if opt, ok := m[name]; ok && opt.Type == discordgo.ApplicationCommandOptionInteger {
		return opt.IntValue()
	}
	return 0
}

func applyTimerAction(timer *SessionTimer, action string) (models.Session, bool) {
	switch action {
	case pomomo.StartAction:
		return timer.Start(), true
	case pomomo.PauseAction:
		return timer.Pause(), true
	case pomomo.ResetAction:
		return timer.Reset(), true
	case pomomo.SkipAction:
		return timer.Skip(), true
	case pomomo.StatusAction, "":
		return timer.Snapshot(), true
	default:
		return models.Session{}, false
	}
}

func TimerCommand(timers TimerManager, displays *TimerDisplays, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionApplicationCommand {
		return false
	}
	data := m.ApplicationCommandData()
	if data.Name != pomomo.TimerCommand.Name {
		return false
	}

	channelID := pomomo.ChannelID(m.ChannelID)
	action := toOptionMap(data.Options).String(pomomo.ActionOption)
	timer := timers.Get(channelID)
	s, ok := applyTimerAction(timer, action)
	if !ok {
		if _, err := dm.Respond(m.Interaction, false, EphemeralResponse("Unknown timer action.")); err != nil {
			log.Error(err)
		}
		return true
	}
	log.Debug("timer command", "channelID", channelID, "action", action, "state", s.State(), "remaining", s.Remaining)

	msg, err := dm.Respond(m.Interaction, true, TimerMessage(channelID, s, timer.Durations()))
	if err != nil {
		log.Error("failed to respond to timer command", "channelID", channelID, "err", err)
		return true
	}
	if msg != nil && displays != nil {
		displays.Track(channelID, msg.ID)
	}
	return true
}

func TimerButton(timers TimerManager, displays *TimerDisplays, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionMessageComponent {
		return false
	}
	id, err := FromCustomID(m.MessageComponentData().CustomID)
	if err != nil {
		return false
	}
	switch id.Type {
	case pomomo.StartAction, pomomo.PauseAction, pomomo.ResetAction, pomomo.SkipAction:
	default:
		return false
	}

	timer := timers.Get(id.ChannelID)
	s, _ := applyTimerAction(timer, id.Type)
	userID := ""
	if u := GetUser(m.Interaction); u != nil {
		userID = u.ID
	}
	log.Info("timer button", "channelID", id.ChannelID, "action", id.Type, "userID", userID, "state", s.State())

	if err := dm.UpdateMessage(m.Interaction, TimerMessage(id.ChannelID, s, timer.Durations())); err != nil {
		log.Error("failed to update timer message", "channelID", id.ChannelID, "err", err)
		return true
	}
	if m.Message != nil && displays != nil {
		displays.Track(id.ChannelID, m.Message.ID)
	}
	return true
}

func TodoCommand(ctx context.Context, workspaces *Workspaces, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionApplicationCommand {
		return false
	}
	data := m.ApplicationCommandData()
	if data.Name != pomomo.TodoCommand.Name || len(data.Options) == 0 {
		return false
	}

	followup, err := dm.DeferMessageCreate(m.Interaction)
	if err != nil {
		log.Error(err)
		return true
	}

	ws := workspaces.Get(pomomo.ChannelID(m.ChannelID))
	todos := ws.Todos
	sub := data.Options[0]
	opts := toOptionMap(sub.Options)
	id := pomomo.TodoID(opts.Int(pomomo.IDOption))

	if sub.Name == pomomo.ListSubcommand {
		err = todos.Load(ctx)
	} else if err, _ = ws.EnsureLoaded(ctx); err == nil {
		switch sub.Name {
		case pomomo.AddSubcommand:
			_, err = todos.Add(ctx, opts.String(pomomo.TitleOption))
		case pomomo.ToggleSubcommand:
			_, err = todos.Toggle(ctx, id)
		case pomomo.EditSubcommand:
			_, err = todos.Rename(ctx, id, opts.String(pomomo.TitleOption))
		case pomomo.DeleteSubcommand:
			err = todos.Delete(ctx, id)
		}
	}
	logListResult("todo", sub.Name, m.ChannelID, err)

	if _, err := followup(TextResponse(todos.Render())); err != nil {
		log.Error(err)
	}
	return true
}

func NoteCommand(ctx context.Context, workspaces *Workspaces, dm DiscordMessenger, m *discordgo.InteractionCreate) bool {
	if m.Type != discordgo.InteractionApplicationCommand {
		return false
	}
	data := m.ApplicationCommandData()
	if data.Name != pomomo.NoteCommand.Name || len(data.Options) == 0 {
		return false
	}

	followup, err := dm.DeferMessageCreate(m.Interaction)
	if err != nil {
		log.Error(err)
		return true
	}

	ws := workspaces.Get(pomomo.ChannelID(m.ChannelID))
	notes := ws.Notes
	sub := data.Options[0]
	opts := toOptionMap(sub.Options)
	id := pomomo.NoteID(opts.Int(pomomo.IDOption))

	if sub.Name == pomomo.ListSubcommand {
		err = notes.Load(ctx)
	} else if _, err = ws.EnsureLoaded(ctx); err == nil {
		switch sub.Name {
		case pomomo.AddSubcommand:
			_, err = notes.Add(ctx, opts.String(pomomo.ContentOption))
		case pomomo.EditSubcommand:
			_, err = notes.Edit(ctx, id, opts.String(pomomo.ContentOption))
		case pomomo.DeleteSubcommand:
			err = notes.Delete(ctx, id)
		}
	}
	logListResult("note", sub.Name, m.ChannelID, err)

	if _, err := followup(TextResponse(notes.Render())); err != nil {
		log.Error(err)
	}
	return true
}

func logListResult(noun, subcommand, channelID string, err error) {
	switch {
	case err == nil:
		log.Debug(noun+" command", "subcommand", subcommand, "channelID", channelID)
	case errors.Is(err, pomomo.ErrValidationSkip):
		log.Debug("skipped blank input", "command", noun, "subcommand", subcommand)
	default:
		log.Error(noun+" command failed", "subcommand", subcommand, "channelID", channelID, "err", err)
	}
}
