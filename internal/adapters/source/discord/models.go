package discord

import "strconv"

// User is the author block on a message
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

// Message is the wire shape of a channel message
type Message struct {
	ID              string  `json:"id"`
	Author          User    `json:"author"`
	Content         string  `json:"content"`
	EditedTimestamp *string `json:"edited_timestamp"`
}

// Channel is the subset of the channel object the ingest loop needs
type Channel struct {
	ID            string  `json:"id"`
	LastMessageID *string `json:"last_message_id"`
}

// GuildMember pairs a user with its per-guild nickname
type GuildMember struct {
	User User    `json:"user"`
	Nick *string `json:"nick"`
}

// DisplayName prefers the guild nickname over the account name
func (m GuildMember) DisplayName() string {
	if m.Nick != nil && *m.Nick != "" {
		return *m.Nick
	}
	return m.User.Username
}

// parseID decodes a string snowflake; Discord sends ids as decimal strings
func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
