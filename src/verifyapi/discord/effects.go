package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/siph-industry/discord-verify/src/verifyapi/data"
	"github.com/siph-industry/discord-verify/src/verifyapi/types"
	"gorm.io/gorm"
)

// ErrNotConfigured is returned when a guild has no verification settings
// row. It is an admin problem, not something the claiming user can fix.
var ErrNotConfigured = errors.New("verification is not configured for this server")

// MemberEditor is the slice of the bot client the effects need.
type MemberEditor interface {
	GrantRole(guildID, userID, roleID string) error
	SetNickname(guildID, userID, nick string) error
}

// MetadataPublisher obtains an app-scoped token and writes role-connection
// metadata with it.
type MetadataPublisher interface {
	Configured() bool
	ClientCredentialsToken(ctx context.Context) (string, error)
	PublishMetadata(token, robloxName, robloxID, accountAge string) error
}

// SettingsSource looks up per-guild verification settings.
type SettingsSource interface {
	GuildSettings(guildID string) (*types.VerificationSetting, error)
}

// GormSettings implements SettingsSource on the MySQL connection.
type GormSettings struct {
	DB *gorm.DB
}

func (g GormSettings) GuildSettings(guildID string) (*types.VerificationSetting, error) {
	return data.GetGuildSettings(g.DB, guildID)
}

// Effects applies the Discord-side consequences of a successful claim.
type Effects struct {
	settings SettingsSource
	bot      MemberEditor
	oauth    MetadataPublisher
	now      func() time.Time
}

func NewEffects(db *gorm.DB, bot *Client, oauth *OAuth) *Effects {
	e := &Effects{
		settings: GormSettings{DB: db},
		bot:      bot,
		now:      time.Now,
	}
	if oauth != nil {
		e.oauth = oauth
	}
	return e
}

// Apply grants the configured role, rewrites the member nickname from the
// guild template and publishes linked-role metadata, in that order. Each
// step aborts the rest on failure. Already-applied steps are not rolled
// back; re-running the claim re-applies everything.
func (e *Effects) Apply(ctx context.Context, guildID, discordID, robloxName, displayName, robloxID, createdAt string) error {
	settings, err := e.settings.GuildSettings(guildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotConfigured
		}
		return fmt.Errorf("load guild settings: %w", err)
	}

	// One clock sample, so the nickname's {account-age} and the published
	// metadata age cannot straddle a day boundary.
	now := e.now()

	if settings.RoleID != "" {
		if err := e.bot.GrantRole(guildID, discordID, settings.RoleID); err != nil {
			return err
		}
		log.Printf("Granted role %s to %s in guild %s", settings.RoleID, discordID, guildID)
	}

	if settings.UsernameFormat != "" {
		nick := RenderNickname(settings.UsernameFormat, displayName, robloxName, robloxID, createdAt, now)
		if err := e.bot.SetNickname(guildID, discordID, nick); err != nil {
			return err
		}
		log.Printf("Set nickname %q for %s in guild %s", nick, discordID, guildID)
	}

	if e.oauth != nil && e.oauth.Configured() {
		token, err := e.oauth.ClientCredentialsToken(ctx)
		if err != nil {
			return fmt.Errorf("metadata token: %w", err)
		}
		age := AccountAgeDays(createdAt, now)
		if err := e.oauth.PublishMetadata(token, robloxName, robloxID, age); err != nil {
			return err
		}
		log.Printf("Published role-connection metadata for %s", discordID)
	}

	return nil
}
