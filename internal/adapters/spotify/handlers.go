package spotify

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handlers exposes the token proxy over HTTP. Upstream failures map to
// 400 with a JSON error body, matching what call clients expect.
type Handlers struct {
	Client *Client
}

func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	tok, err := h.Client.Exchange(c.Request.Context(), req.Code)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.spotify").Msg("token exchange")
		c.JSON(http.StatusBadRequest, gin.H{"error": "token exchange failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  tok.AccessToken,
		"refreshToken": tok.RefreshToken,
		"expiresIn":    tok.ExpiresIn,
	})
}

func (h *Handlers) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing refreshToken"})
		return
	}

	tok, err := h.Client.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.spotify").Msg("token refresh")
		c.JSON(http.StatusBadRequest, gin.H{"error": "token refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": tok.AccessToken,
		"expiresIn":   tok.ExpiresIn,
	})
}
