package main

import (
	"fmt"
	"strings"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/benjamonnguyen/pomomo-suite/cmd/suite/models"
	"github.com/bwmarrin/discordgo"
)

type DiscordMessenger interface {
	// Respond returns the response message only when wait == true
	Respond(it *discordgo.Interaction, wait bool, data *discordgo.InteractionResponseData) (*discordgo.Message, error)
	UpdateMessage(it *discordgo.Interaction, data *discordgo.InteractionResponseData) error
	DeferMessageCreate(it *discordgo.Interaction) (followup, error)
	EditChannelMessage(channelID pomomo.ChannelID, messageID string, data *discordgo.InteractionResponseData) (*discordgo.Message, error)
}

func NewDiscordMessenger(client *discordgo.Session) DiscordMessenger {
	return &messenger{
		client: client,
	}
}

type messenger struct {
	client *discordgo.Session
}

func (m *messenger) Respond(it *discordgo.Interaction, wait bool, data *discordgo.InteractionResponseData) (*discordgo.Message, error) {
	if err := m.client.InteractionRespond(it, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		return nil, err
	}
	if wait {
		return m.client.InteractionResponse(it)
	}
	return nil, nil
}

func (m *messenger) UpdateMessage(it *discordgo.Interaction, data *discordgo.InteractionResponseData) error {
	return m.client.InteractionRespond(it, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

type followup func(data *discordgo.InteractionResponseData) (*discordgo.Message, error)

func (m *messenger) DeferMessageCreate(it *discordgo.Interaction) (followup, error) {
	if err := m.client.InteractionRespond(it, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return nil, err
	}
	return func(data *discordgo.InteractionResponseData) (*discordgo.Message, error) {
		return m.client.FollowupMessageCreate(it, true, &discordgo.WebhookParams{
			Content:    data.Content,
			Embeds:     data.Embeds,
			Components: data.Components,
			Flags:      data.Flags,
		})
	}, nil
}

func (m *messenger) EditChannelMessage(channelID pomomo.ChannelID, messageID string, data *discordgo.InteractionResponseData) (*discordgo.Message, error) {
	return m.client.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    string(channelID),
		ID:         messageID,
		Embeds:     &data.Embeds,
		Components: &data.Components,
	})
}

type InteractionID struct {
	Type      string
	ChannelID pomomo.ChannelID
}

func FromCustomID(customID string) (InteractionID, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return InteractionID{}, fmt.Errorf("invalid customID: %s", customID)
	}
	return InteractionID{
		Type:      parts[0],
		ChannelID: pomomo.ChannelID(parts[1]),
	}, nil
}

func (id InteractionID) ToCustomID() string {
	return fmt.Sprintf("%s:%s", id.Type, id.ChannelID)
}

type Color int

const (
	ColorGreen     Color = 0x57f287
	ColorBlue      Color = 0x3498db
	ColorLightGrey Color = 0xbcc0c0
	ColorRed       Color = 0xed4245
)

func TextResponse(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
	}
}

func EphemeralResponse(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

// TimerMessage renders the timer embed and its control buttons.
func TimerMessage(channelID pomomo.ChannelID, s models.Session, d pomomo.Durations) *discordgo.InteractionResponseData {
	color := ColorLightGrey
	if s.Running {
		color = ColorGreen
		if s.Kind == pomomo.BreakSession {
			color = ColorBlue
		}
	}

	status := "Idle"
	if s.Running {
		status = "Running"
	}
	description := strings.Join([]string{
		fmt.Sprintf("## %s %s", s.Kind, s.Clock()),
		s.TimerBar(d),
		fmt.Sprintf("%s | Completed work sessions: %d", status, s.CompletedWorkSessions),
	}, "\n")

	toggle := discordgo.Button{
		Label:    "Start",
		Style:    discordgo.SuccessButton,
		CustomID: InteractionID{Type: pomomo.StartAction, ChannelID: channelID}.ToCustomID(),
	}
	if s.Running {
		toggle = discordgo.Button{
			Label:    "Pause",
			Style:    discordgo.SecondaryButton,
			CustomID: InteractionID{Type: pomomo.PauseAction, ChannelID: channelID}.ToCustomID(),
		}
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Pomodoro",
				Description: description,
				Color:       int(color),
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					toggle,
					discordgo.Button{
						Label:    "Reset",
						Style:    discordgo.SecondaryButton,
						CustomID: InteractionID{Type: pomomo.ResetAction, ChannelID: channelID}.ToCustomID(),
					},
					discordgo.Button{
						Label:    "Skip",
						Style:    discordgo.PrimaryButton,
						CustomID: InteractionID{Type: pomomo.SkipAction, ChannelID: channelID}.ToCustomID(),
					},
				},
			},
		},
	}
}

func GetUser(it *discordgo.Interaction) *discordgo.User {
	if it.Member != nil {
		return it.Member.User
	}
	return it.User
}
