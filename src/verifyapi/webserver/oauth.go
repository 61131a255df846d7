package webserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siph-industry/discord-verify/src/verifyapi/discord"
)

type OAuthHandler struct {
	oauth     *discord.OAuth
	jwtSecret []byte
}

func NewOAuthHandler(oauth *discord.OAuth, secret []byte) OAuthHandler {
	return OAuthHandler{oauth: oauth, jwtSecret: secret}
}

// Callback exchanges the authorization code the front-end received for an
// access token, resolves the user behind it and hands back a session token.
func (h OAuthHandler) Callback(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "code is required"})
		return
	}

	accessToken, err := h.oauth.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		log.Printf("OAuth exchange failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	user, err := h.oauth.BearerUser(accessToken)
	if err != nil {
		log.Printf("OAuth user fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch user"})
		return
	}

	token, err := issueJWT(user.ID, h.jwtSecret)
	if err != nil {
		log.Printf("Failed to issue session token for %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"access_token": accessToken,
		"user_id":      user.ID,
		"token":        token,
	})
}
