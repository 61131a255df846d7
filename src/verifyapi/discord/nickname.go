package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Discord rejects nicknames longer than 32 characters.
const maxNicknameLen = 32

// AccountAgeDays returns the account age in whole days as a string, or "0"
// when the creation date cannot be parsed. Roblox reports RFC3339 timestamps
// but settings rows written by older tooling carried bare dates.
func AccountAgeDays(created string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		t, err = time.Parse("2006-01-02", created)
	}
	if err != nil {
		return "0"
	}

	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return strconv.Itoa(days)
}

// RenderNickname substitutes the guild template placeholders in a single
// pass (the placeholders are disjoint literals, so order does not matter)
// and caps the result at the Discord nickname limit. Unmatched template text
// passes through verbatim.
func RenderNickname(format, displayName, username, robloxID, created string, now time.Time) string {
	r := strings.NewReplacer(
		"{smart-name}", fmt.Sprintf("%s (@%s)", displayName, username),
		"{display-name}", displayName,
		"{user-id}", robloxID,
		"{account-age}", AccountAgeDays(created, now),
		"{player-name}", username,
	)

	nick := r.Replace(format)
	if runes := []rune(nick); len(runes) > maxNicknameLen {
		nick = string(runes[:maxNicknameLen])
	}
	return nick
}
