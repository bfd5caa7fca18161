package handlers

import (
	"net/http"

	"irrigator/internal/models"

	"github.com/gin-gonic/gin"
)

// StatusResponse describes the running boot session.
type StatusResponse struct {
	Session   int    `json:"session" example:"1"`
	Outcome   string `json:"outcome" example:"connected"`
	Mode      string `json:"mode" example:"operational"`
	Network   string `json:"ssid" example:"MyNet"`
	Address   string `json:"ip" example:"192.168.1.200"`
	Published uint64 `json:"published" example:"12"`
	StartedAt string `json:"started_at" example:"2025-08-01T10:00:00Z"`
	Listeners int    `json:"listeners" example:"1"`
}

// @Summary      Device status
// @Tags         system
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /api/v1/status [get]
func (h *Handler) getStatus(s *models.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, StatusResponse{
			Session:   s.Number,
			Outcome:   s.Outcome.String(),
			Mode:      string(s.Mode),
			Network:   s.Credentials.NetworkName,
			Address:   s.LocalAddr,
			Published: s.Ticks(),
			StartedAt: s.StartedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Listeners: h.hub.Len(),
		})
	}
}
