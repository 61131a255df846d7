package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siph-industry/discord-verify/src/verifyapi/roblox"
)

type Proxy struct {
	roblox *roblox.Client
}

func NewProxy(client *roblox.Client) Proxy {
	return Proxy{roblox: client}
}

// RobloxUser passes the Roblox profile response through to the web client
// unchanged, status code included; the front-end cannot call the Roblox API
// directly because of CORS.
func (p Proxy) RobloxUser(c *gin.Context) {
	status, body, err := p.roblox.UserRaw(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(status, "application/json", body)
}
