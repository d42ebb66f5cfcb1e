package discord

import (
	"context"
	json "encoding/json/v2"
	"fmt"
	"io"
	"net/http"
)

// ChannelMessagesAfter fetches up to limit messages strictly after the given id.
// Discord returns pages newest first; callers sort when order matters
func (c *Client) ChannelMessagesAfter(ctx context.Context, channelID, after int64, limit int) ([]Message, error) {
	path := fmt.Sprintf("/channels/%d/messages?after=%d&limit=%d", channelID, after, limit)
	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("discord close body failed")
		}
	}()

	var out []Message
	lim := io.LimitReader(resp.Body, 1<<20)
	b, err := io.ReadAll(lim)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChannelByID fetches a channel object
func (c *Client) ChannelByID(ctx context.Context, channelID int64) (Channel, error) {
	path := fmt.Sprintf("/channels/%d", channelID)
	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return Channel{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("discord close body failed")
		}
	}()

	var out Channel
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Channel{}, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return Channel{}, err
	}
	return out, nil
}

// GuildMembers fetches one page of the member list, paginated by user id
func (c *Client) GuildMembers(ctx context.Context, guildID, after int64, limit int) ([]GuildMember, error) {
	path := fmt.Sprintf("/guilds/%d/members?after=%d&limit=%d", guildID, after, limit)
	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("discord close body failed")
		}
	}()

	var out []GuildMember
	b, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
