package webserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/siph-industry/discord-verify/src/verifyapi/data"
	"github.com/siph-industry/discord-verify/src/verifyapi/discord"
	"github.com/siph-industry/discord-verify/src/verifyapi/verification"
)

// Verifier is the part of the verification service the handlers use.
type Verifier interface {
	IssueCode(ctx context.Context, discordID, guildID string) (string, error)
	Claim(ctx context.Context, discordID, guildID, robloxID, robloxName, code string) error
}

type Verify struct {
	svc Verifier
	db  *gorm.DB
}

func NewVerify(svc Verifier, db *gorm.DB) Verify {
	return Verify{svc: svc, db: db}
}

func (v Verify) IssueCode(c *gin.Context) {
	var req struct {
		DiscordID string `json:"discord_id" binding:"required,numeric"`
		GuildID   string `json:"guild_id" binding:"required,numeric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing discord_id or guild_id"})
		return
	}

	code, err := v.svc.IssueCode(c.Request.Context(), req.DiscordID, req.GuildID)
	if err != nil {
		log.Printf("Failed to issue code for %s: %v", req.DiscordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to issue code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "code": code})
}

func (v Verify) Check(c *gin.Context) {
	var req struct {
		DiscordID  string `json:"discord_id" binding:"required,numeric"`
		GuildID    string `json:"guild_id" binding:"required,numeric"`
		RobloxID   string `json:"roblox_id" binding:"required,numeric"`
		RobloxName string `json:"roblox_name" binding:"required,max=255"`
		Code       string `json:"code" binding:"required,min=4,max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing or invalid fields"})
		return
	}

	err := v.svc.Claim(c.Request.Context(), req.DiscordID, req.GuildID, req.RobloxID, req.RobloxName, req.Code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "verification successful"})
	case errors.Is(err, verification.ErrCodeNotFound), errors.Is(err, verification.ErrCodeNotInProfile):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, discord.ErrNotConfigured):
		log.Printf("Claim for guild %s rejected: %v", req.GuildID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	default:
		log.Printf("Claim failed for %s in guild %s: %v", req.DiscordID, req.GuildID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "verification could not be completed"})
	}
}

// Status returns the caller's link record; identity comes from the session
// token, not the request body.
func (v Verify) Status(c *gin.Context) {
	discordID := c.GetString("uid")
	if discordID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no session"})
		return
	}

	rec, err := data.GetVerification(v.db, discordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": true, "verified": false})
			return
		}
		log.Printf("Status lookup failed for %s: %v", discordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"verified":     true,
		"roblox_id":    rec.RobloxID,
		"roblox_name":  rec.RobloxName,
		"display_name": rec.DisplayName,
		"status":       rec.Status,
	})
}
