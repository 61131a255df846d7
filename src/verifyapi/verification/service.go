package verification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siph-industry/discord-verify/src/verifyapi/roblox"
	"github.com/siph-industry/discord-verify/src/verifyapi/types"
)

var (
	// ErrCodeNotFound is returned when no pending code matches the claim,
	// either because it expired or was never issued.
	ErrCodeNotFound = errors.New("code not found or expired")
	// ErrCodeNotInProfile is returned when the profile description does not
	// contain the code. The pending code stays valid so the user can edit
	// their profile and retry.
	ErrCodeNotInProfile = errors.New("code not found in Roblox profile")
)

// ProfileClient fetches public Roblox profiles.
type ProfileClient interface {
	User(ctx context.Context, id string) (*roblox.Profile, error)
}

// Effector applies the Discord-side effects after a successful proof.
type Effector interface {
	Apply(ctx context.Context, guildID, discordID, robloxName, displayName, robloxID, createdAt string) error
}

// CodeStore holds pending one-time codes until they expire or are consumed.
type CodeStore interface {
	Set(ctx context.Context, guildID, discordID, code string) error
	Has(ctx context.Context, guildID, discordID, code string) (bool, error)
	Del(ctx context.Context, guildID, discordID, code string) error
}

// RecordStore persists completed account links.
type RecordStore interface {
	Upsert(v *types.Verification) error
}

type Service struct {
	codes    CodeStore
	records  RecordStore
	profiles ProfileClient
	effects  Effector
	now      func() time.Time
}

func NewService(codes CodeStore, records RecordStore, profiles ProfileClient, effects Effector) *Service {
	return &Service{
		codes:    codes,
		records:  records,
		profiles: profiles,
		effects:  effects,
		now:      time.Now,
	}
}

// IssueCode creates a short one-time code the user places in their Roblox
// profile description. No external calls are made.
func (s *Service) IssueCode(ctx context.Context, discordID, guildID string) (string, error) {
	code := uuid.NewString()[:8]
	if err := s.codes.Set(ctx, guildID, discordID, code); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}
	log.Printf("Issued verification code for %s in guild %s", discordID, guildID)
	return code, nil
}

// Claim validates a submitted code against the live Roblox profile, persists
// the link and applies Discord effects. The pending code is consumed only
// once every effect succeeded; any earlier failure leaves it valid for a
// retry, and a retry after a partial failure re-applies everything on top of
// the already-committed record.
func (s *Service) Claim(ctx context.Context, discordID, guildID, robloxID, robloxName, code string) error {
	ok, err := s.codes.Has(ctx, guildID, discordID, code)
	if err != nil {
		return fmt.Errorf("code lookup: %w", err)
	}
	if !ok {
		return ErrCodeNotFound
	}

	profile, err := s.profiles.User(ctx, robloxID)
	if err != nil {
		return fmt.Errorf("roblox lookup failed: %w", err)
	}

	if !strings.Contains(profile.Description, code) {
		return ErrCodeNotInProfile
	}

	displayName := profile.DisplayName
	if displayName == "" {
		displayName = robloxName
	}

	rec := &types.Verification{
		DiscordID:      discordID,
		RobloxID:       robloxID,
		RobloxName:     robloxName,
		DisplayName:    displayName,
		RobloxAge:      accountAgeDays(profile.Created, s.now()),
		RobloxJoinDate: profile.Created,
		Status:         "verified",
	}
	if err := s.records.Upsert(rec); err != nil {
		return fmt.Errorf("persist verification: %w", err)
	}

	if err := s.effects.Apply(ctx, guildID, discordID, robloxName, displayName, robloxID, profile.Created); err != nil {
		return err
	}

	if err := s.codes.Del(ctx, guildID, discordID, code); err != nil {
		// The key will expire on its own; success already happened.
		log.Printf("Failed to delete used code for %s in guild %s: %v", discordID, guildID, err)
	}
	log.Printf("Verified %s as roblox user %s (%s) in guild %s", discordID, robloxName, robloxID, guildID)
	return nil
}

// accountAgeDays degrades to 0 on an unparseable creation date rather than
// failing the claim.
func accountAgeDays(created string, now time.Time) int {
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		t, err = time.Parse("2006-01-02", created)
	}
	if err != nil {
		return 0
	}

	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}
