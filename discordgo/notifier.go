// Package discordgo provides Discord API adapters using package github.com/bwmarrin/discordgo
package discordgo

import (
	"context"
	"errors"
	"fmt"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

const notificationColor = 0x57f287

type messageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type permissionsFunc func(channelID string) (int64, error)

// channelNotifier posts timer notifications in one text channel.
type channelNotifier struct {
	channelID   string
	sender      messageSender
	permissions permissionsFunc
	l           *log.Logger
}

func NewChannelNotifier(cl *discordgo.Session, channelID pomomo.ChannelID, l *log.Logger) pomomo.Notifier {
	return newChannelNotifier(cl, sessionPermissions(cl), channelID, l)
}

func newChannelNotifier(sender messageSender, permissions permissionsFunc, channelID pomomo.ChannelID, l *log.Logger) *channelNotifier {
	if l == nil {
		l = log.Default()
	}
	return &channelNotifier{
		channelID:   string(channelID),
		sender:      sender,
		permissions: permissions,
		l:           l,
	}
}

func sessionPermissions(cl *discordgo.Session) permissionsFunc {
	return func(channelID string) (int64, error) {
		if cl.State == nil || cl.State.User == nil {
			return 0, errors.New("session state not ready")
		}
		return cl.State.UserChannelPermissions(cl.State.User.ID, channelID)
	}
}

// Permission is granted when the bot can send messages in the channel.
// Lookup failures leave it undecided.
func (n *channelNotifier) Permission(ctx context.Context) pomomo.Permission {
	if err := ctx.Err(); err != nil {
		return pomomo.PermissionDefault
	}
	perms, err := n.permissions(n.channelID)
	if err != nil {
		n.l.Debug("failed to look up channel permissions", "channelID", n.channelID, "err", err)
		return pomomo.PermissionDefault
	}
	if perms&discordgo.PermissionSendMessages == 0 {
		return pomomo.PermissionDenied
	}
	return pomomo.PermissionGranted
}

// RequestPermission re-queries the channel. Discord has no permission prompt.
func (n *channelNotifier) RequestPermission(ctx context.Context) pomomo.Permission {
	p := n.Permission(ctx)
	if p == pomomo.PermissionDenied {
		n.l.Info("missing send messages permission", "channelID", n.channelID)
	}
	return p
}

func (n *channelNotifier) Notify(ctx context.Context, title, body string) error {
	if n.Permission(ctx) == pomomo.PermissionDenied {
		return fmt.Errorf("notify channel %s: permission denied", n.channelID)
	}
	_, err := n.sender.ChannelMessageSendComplex(n.channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: body,
				Color:       notificationColor,
			},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("notify channel %s: %w", n.channelID, err)
	}
	return nil
}
