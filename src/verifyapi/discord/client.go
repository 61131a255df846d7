package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Client wraps a bot-authenticated Discord session. The session is only used
// for REST calls; no gateway connection is opened.
type Client struct {
	session *discordgo.Session
}

func NewClient(botToken string) (*Client, error) {
	s, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, err
	}
	return &Client{session: s}, nil
}

// Username returns the Discord username for a user id, "Unknown" on failure.
func (c *Client) Username(userID string) string {
	u, err := c.session.User(userID)
	if err != nil {
		log.Printf("Failed to fetch discord user %s: %v", userID, err)
		return "Unknown"
	}
	return u.Username
}

func (c *Client) GrantRole(guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		return fmt.Errorf("grant role %s: %s", roleID, restDetail(err))
	}
	return nil
}

func (c *Client) SetNickname(guildID, userID, nick string) error {
	if err := c.session.GuildMemberNickname(guildID, userID, nick); err != nil {
		return fmt.Errorf("set nickname: %s", restDetail(err))
	}
	return nil
}

// restDetail keeps the status code and response body visible in logs so an
// operator can tell a permissions problem from a bad request.
func restDetail(err error) string {
	if rerr, ok := err.(*discordgo.RESTError); ok && rerr.Response != nil {
		return fmt.Sprintf("status %d: %s", rerr.Response.StatusCode, rerr.ResponseBody)
	}
	return err.Error()
}
