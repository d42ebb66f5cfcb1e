package discord

import (
	"context"

	"eueoeo/internal/core/snowflake"
	perr "eueoeo/internal/platform/errors"
	bdomain "eueoeo/internal/services/backfill/domain"
	ldomain "eueoeo/internal/services/ledger/domain"
)

// memberPageSize is the largest page the member list endpoint allows
const memberPageSize = 1000

// Source adapts the REST client to the backfill source port for one channel
type Source struct {
	c       *Client
	channel int64
}

// NewSource binds a client to a channel
func NewSource(c *Client, channelID int64) *Source {
	if c == nil {
		panic("discord.Source requires a non nil Client")
	}
	return &Source{c: c, channel: channelID}
}

// ListAfter implements the backfill source port
func (s *Source) ListAfter(ctx context.Context, after snowflake.ID, limit int) ([]bdomain.SourceMessage, error) {
	msgs, err := s.c.ChannelMessagesAfter(ctx, s.channel, int64(after), limit)
	if err != nil {
		return nil, err
	}

	out := make([]bdomain.SourceMessage, 0, len(msgs))
	for _, m := range msgs {
		id, err := parseID(m.ID)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "bad message id %q", m.ID)
		}
		author, err := parseID(m.Author.ID)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "bad author id %q", m.Author.ID)
		}
		out = append(out, bdomain.SourceMessage{
			ID:        snowflake.ID(id),
			AuthorID:  author,
			AuthorBot: m.Author.Bot,
			Content:   m.Content,
			Edited:    m.EditedTimestamp != nil,
		})
	}
	return out, nil
}

// Head implements the backfill source port via the channel's last message id
func (s *Source) Head(ctx context.Context) (snowflake.ID, bool, error) {
	ch, err := s.c.ChannelByID(ctx, s.channel)
	if err != nil {
		return 0, false, err
	}
	if ch.LastMessageID == nil || *ch.LastMessageID == "" {
		return 0, false, nil
	}
	id, err := parseID(*ch.LastMessageID)
	if err != nil {
		return 0, false, perr.Wrapf(err, perr.ErrorCodeUnknown, "bad last message id %q", *ch.LastMessageID)
	}
	return snowflake.ID(id), true, nil
}

// ListMembers walks the full member list of a guild, skipping bots
func (c *Client) ListMembers(ctx context.Context, guildID int64) ([]ldomain.Member, error) {
	var out []ldomain.Member
	after := int64(0)
	for {
		page, err := c.GuildMembers(ctx, guildID, after, memberPageSize)
		if err != nil {
			return nil, err
		}
		for _, gm := range page {
			id, err := parseID(gm.User.ID)
			if err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "bad member id %q", gm.User.ID)
			}
			if id > after {
				after = id
			}
			if gm.User.Bot {
				continue
			}
			out = append(out, ldomain.Member{ActorID: id, Name: gm.DisplayName()})
		}
		if len(page) < memberPageSize {
			return out, nil
		}
	}
}
