package pomomo

import (
	"github.com/bwmarrin/discordgo"
)

const (
	ActionOption  = "action"
	IDOption      = "id"
	TitleOption   = "title"
	ContentOption = "content"
)

const (
	StartAction  = "start"
	PauseAction  = "pause"
	ResetAction  = "reset"
	SkipAction   = "skip"
	StatusAction = "status"
)

const (
	ListSubcommand   = "list"
	AddSubcommand    = "add"
	ToggleSubcommand = "toggle"
	EditSubcommand   = "edit"
	DeleteSubcommand = "delete"
)

func float64Ptr(f float64) *float64 {
	return &f
}

func idOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        IDOption,
		Description: description,
		Required:    true,
		MinValue:    float64Ptr(1),
	}
}

var TimerCommand = discordgo.ApplicationCommand{
	Name:        "timer",
	Description: "control the pomodoro timer in this channel",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        ActionOption,
			Description: "timer action (Default: status)",
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "start", Value: StartAction},
				{Name: "pause", Value: PauseAction},
				{Name: "reset", Value: ResetAction},
				{Name: "skip", Value: SkipAction},
				{Name: "status", Value: StatusAction},
			},
		},
	},
}

var TodoCommand = discordgo.ApplicationCommand{
	Name:        "todo",
	Description: "manage todos",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        ListSubcommand,
			Description: "show todos",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        AddSubcommand,
			Description: "add a todo",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        TitleOption,
					Description: "todo title",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        ToggleSubcommand,
			Description: "mark a todo done or not done",
			Options:     []*discordgo.ApplicationCommandOption{idOption("todo id")},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        EditSubcommand,
			Description: "rename a todo",
			Options: []*discordgo.ApplicationCommandOption{
				idOption("todo id"),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        TitleOption,
					Description: "new title",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        DeleteSubcommand,
			Description: "delete a todo",
			Options:     []*discordgo.ApplicationCommandOption{idOption("todo id")},
		},
	},
}

var NoteCommand = discordgo.ApplicationCommand{
	Name:        "note",
	Description: "manage notes",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        ListSubcommand,
			Description: "show notes",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        AddSubcommand,
			Description: "write a note",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        ContentOption,
					Description: "note content",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        EditSubcommand,
			Description: "edit a note",
			Options: []*discordgo.ApplicationCommandOption{
				idOption("note id"),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        ContentOption,
					Description: "new content",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        DeleteSubcommand,
			Description: "delete a note",
			Options:     []*discordgo.ApplicationCommandOption{idOption("note id")},
		},
	},
}

// Commands lists every slash command the suite registers.
var Commands = []*discordgo.ApplicationCommand{
	&TimerCommand,
	&TodoCommand,
	&NoteCommand,
}
