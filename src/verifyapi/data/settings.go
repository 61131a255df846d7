package data

import (
	"sync"

	"github.com/siph-industry/discord-verify/src/verifyapi/types"
	"gorm.io/gorm"
)

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings loads all settings from database into cache
func LoadSettings(db *gorm.DB) error {
	var settings []types.Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string)
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}

	return nil
}

// GetSetting retrieves a setting value by name
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}

// GetGuildSettings returns the verification settings row for a guild, or
// gorm.ErrRecordNotFound when the guild was never configured.
func GetGuildSettings(db *gorm.DB, guildID string) (*types.VerificationSetting, error) {
	var s types.VerificationSetting
	if err := db.First(&s, "guild_id = ?", guildID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
