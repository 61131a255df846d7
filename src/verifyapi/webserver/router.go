package webserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/siph-industry/discord-verify/src/verifyapi/config"
	"github.com/siph-industry/discord-verify/src/verifyapi/discord"
	"github.com/siph-industry/discord-verify/src/verifyapi/roblox"
	"github.com/siph-industry/discord-verify/src/verifyapi/verification"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	bot, err := discord.NewClient(cfg.Token)
	if err != nil {
		log.Fatalf("discord: %v", err)
	}
	oauth := discord.NewOAuth(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURI)
	profiles := roblox.NewClient("")

	svc := verification.NewService(
		verification.RedisCodes{RDB: rdb},
		verification.GormRecords{DB: db},
		profiles,
		discord.NewEffects(db, bot, oauth),
	)

	verifyH := NewVerify(svc, db)
	oauthH := NewOAuthHandler(oauth, []byte(cfg.JWTSecret))
	proxyH := NewProxy(profiles)

	limiter := NewRateLimiter(5, time.Minute)

	api := r.Group("/api")
	{
		api.POST("/oauth/callback", oauthH.Callback)
		api.POST("/verify/code", RateLimitMiddleware(limiter), verifyH.IssueCode)
		api.POST("/verify/check", verifyH.Check)

		secured := api.Group("/verify")
		secured.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		secured.GET("/status", verifyH.Status)
	}

	r.GET("/proxy/roblox/user/:id", proxyH.RobloxUser)
}
