package data

import (
	"github.com/siph-industry/discord-verify/src/verifyapi/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertVerification writes a link record, replacing every non-key field when
// the Discord account was verified before. The roblox_id unique constraint is
// the database's job; concurrent claims serialize on it.
func UpsertVerification(db *gorm.DB, v *types.Verification) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "discord_id"}},
		UpdateAll: true,
	}).Create(v).Error
}

func GetVerification(db *gorm.DB, discordID string) (*types.Verification, error) {
	var v types.Verification
	if err := db.First(&v, "discord_id = ?", discordID).Error; err != nil {
		return nil, err
	}
	return &v, nil
}
