package data

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// codeTTL bounds how long an issued code stays claimable. Expiry is enforced
// by redis; an expired code is simply absent.
const codeTTL = time.Hour

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// The code is part of the key, so several pending codes can coexist for the
// same (guild, discord) pair and each expires on its own clock.
func codeKey(guildID, discordID, code string) string {
	return fmt.Sprintf("verify:code:%s:%s:%s", guildID, discordID, code)
}

func SetVerifyCode(ctx context.Context, rdb *redis.Client, guildID, discordID, code string) error {
	return rdb.Set(ctx, codeKey(guildID, discordID, code), time.Now().UTC().Format(time.RFC3339), codeTTL).Err()
}

// HasVerifyCode reports whether the code is still pending for the pair.
func HasVerifyCode(ctx context.Context, rdb *redis.Client, guildID, discordID, code string) (bool, error) {
	if err := rdb.Get(ctx, codeKey(guildID, discordID, code)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func DelVerifyCode(ctx context.Context, rdb *redis.Client, guildID, discordID, code string) error {
	return rdb.Del(ctx, codeKey(guildID, discordID, code)).Err()
}
