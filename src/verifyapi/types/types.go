package types

import "time"

// Completed account links. One row per Discord account; a Roblox account can
// back at most one row (unique constraint enforced by the database).
type Verification struct {
	DiscordID      string `gorm:"primaryKey;size:64"`
	RobloxID       string `gorm:"size:64;unique;not null"`
	RobloxName     string `gorm:"size:255;not null"`
	DisplayName    string `gorm:"size:255;not null"`
	RobloxAge      int    `gorm:"default:0"`
	RobloxJoinDate string `gorm:"size:64"`
	Status         string `gorm:"size:32;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Per-guild verification settings. Both fields are optional; a missing row
// means the guild is not configured at all.
type VerificationSetting struct {
	GuildID        string `gorm:"primaryKey;size:64"`
	RoleID         string `gorm:"size:64"`
	UsernameFormat string `gorm:"size:255"`
}

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}
