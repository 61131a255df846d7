package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/siph-industry/discord-verify/src/verifyapi/roblox"
	"github.com/siph-industry/discord-verify/src/verifyapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stateful in-memory fakes for end-to-end flows that span several calls.

type memCodes struct {
	keys map[string]bool
}

func (m *memCodes) key(guildID, discordID, code string) string {
	return guildID + ":" + discordID + ":" + code
}
func (m *memCodes) Set(_ context.Context, guildID, discordID, code string) error {
	m.keys[m.key(guildID, discordID, code)] = true
	return nil
}
func (m *memCodes) Has(_ context.Context, guildID, discordID, code string) (bool, error) {
	return m.keys[m.key(guildID, discordID, code)], nil
}
func (m *memCodes) Del(_ context.Context, guildID, discordID, code string) error {
	delete(m.keys, m.key(guildID, discordID, code))
	return nil
}

type memRecords struct {
	byDiscordID map[string]types.Verification
}

func (m *memRecords) Upsert(v *types.Verification) error {
	m.byDiscordID[v.DiscordID] = *v
	return nil
}

type fakeProfiles struct {
	profile roblox.Profile
}

func (f *fakeProfiles) User(context.Context, string) (*roblox.Profile, error) {
	p := f.profile
	return &p, nil
}

type flakyEffects struct {
	failures int
	applied  int
}

func (f *flakyEffects) Apply(context.Context, string, string, string, string, string, string) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("grant role: status 502")
	}
	f.applied++
	return nil
}

// Issue a code, fail the first claim on effects, then retry with the same
// code: the retry must succeed, re-apply effects, consume the code and leave
// exactly one record.
func TestClaimRetryAfterEffectsFailure(t *testing.T) {
	codes := &memCodes{keys: map[string]bool{}}
	records := &memRecords{byDiscordID: map[string]types.Verification{}}
	effects := &flakyEffects{failures: 1}

	svc := NewService(codes, records, &fakeProfiles{}, effects)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	code, err := svc.IssueCode(context.Background(), "42", "7")
	require.NoError(t, err)

	profiles := &fakeProfiles{profile: roblox.Profile{
		ID:          1001,
		Name:        "siph",
		DisplayName: "Sip",
		Description: "verify: " + code,
		Created:     "2020-01-01T00:00:00Z",
	}}
	svc.profiles = profiles

	// First claim: record commits, effects fail, code survives.
	err = svc.Claim(context.Background(), "42", "7", "1001", "siph", code)
	require.Error(t, err)
	require.Len(t, records.byDiscordID, 1)
	ok, _ := codes.Has(context.Background(), "7", "42", code)
	assert.True(t, ok)

	// Retry with the same code: effects re-apply, code is consumed, the
	// record is overwritten rather than duplicated.
	err = svc.Claim(context.Background(), "42", "7", "1001", "siph", code)
	require.NoError(t, err)
	assert.Equal(t, 1, effects.applied)
	assert.Len(t, records.byDiscordID, 1)
	ok, _ = codes.Has(context.Background(), "7", "42", code)
	assert.False(t, ok)

	rec := records.byDiscordID["42"]
	assert.Equal(t, "verified", rec.Status)
	assert.Equal(t, "1001", rec.RobloxID)
	assert.Equal(t, 1461, rec.RobloxAge)
}

// Re-verifying against a different Roblox account replaces the prior record
// entirely.
func TestReverificationReplacesRecord(t *testing.T) {
	codes := &memCodes{keys: map[string]bool{}}
	records := &memRecords{byDiscordID: map[string]types.Verification{}}

	svc := NewService(codes, records, &fakeProfiles{}, &flakyEffects{})
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	code, err := svc.IssueCode(context.Background(), "42", "7")
	require.NoError(t, err)
	svc.profiles = &fakeProfiles{profile: roblox.Profile{
		ID: 1001, Name: "siph", DisplayName: "Sip",
		Description: "verify: " + code, Created: "2020-01-01T00:00:00Z",
	}}
	require.NoError(t, svc.Claim(context.Background(), "42", "7", "1001", "siph", code))

	code2, err := svc.IssueCode(context.Background(), "42", "7")
	require.NoError(t, err)
	svc.profiles = &fakeProfiles{profile: roblox.Profile{
		ID: 2002, Name: "other", DisplayName: "Other",
		Description: "verify: " + code2, Created: "garbage",
	}}
	require.NoError(t, svc.Claim(context.Background(), "42", "7", "2002", "other", code2))

	require.Len(t, records.byDiscordID, 1)
	rec := records.byDiscordID["42"]
	assert.Equal(t, "2002", rec.RobloxID)
	assert.Equal(t, "other", rec.RobloxName)
	assert.Equal(t, "Other", rec.DisplayName)
	assert.Equal(t, 0, rec.RobloxAge)
}
