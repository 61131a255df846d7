package verification

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/siph-industry/discord-verify/src/verifyapi/data"
	"github.com/siph-industry/discord-verify/src/verifyapi/types"
	"gorm.io/gorm"
)

// RedisCodes implements CodeStore on the shared redis client.
type RedisCodes struct {
	RDB *redis.Client
}

func (r RedisCodes) Set(ctx context.Context, guildID, discordID, code string) error {
	return data.SetVerifyCode(ctx, r.RDB, guildID, discordID, code)
}

func (r RedisCodes) Has(ctx context.Context, guildID, discordID, code string) (bool, error) {
	return data.HasVerifyCode(ctx, r.RDB, guildID, discordID, code)
}

func (r RedisCodes) Del(ctx context.Context, guildID, discordID, code string) error {
	return data.DelVerifyCode(ctx, r.RDB, guildID, discordID, code)
}

// GormRecords implements RecordStore on the MySQL connection.
type GormRecords struct {
	DB *gorm.DB
}

func (g GormRecords) Upsert(v *types.Verification) error {
	return data.UpsertVerification(g.DB, v)
}
