package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// PublishMetadata writes the linked-account metadata to the user's
// role-connection for this application, using an app-scoped token from
// ClientCredentialsToken.
func (o *OAuth) PublishMetadata(token, robloxName, robloxID, accountAge string) error {
	s, err := discordgo.New("Bearer " + token)
	if err != nil {
		return err
	}

	conn := &discordgo.ApplicationRoleConnection{
		PlatformName:     "Roblox",
		PlatformUsername: robloxName,
		Metadata: map[string]string{
			"roblox_id":   robloxID,
			"account_age": accountAge,
		},
	}
	if _, err := s.UserApplicationRoleConnectionUpdate(o.clientID, conn); err != nil {
		return fmt.Errorf("publish metadata: %s", restDetail(err))
	}
	return nil
}
