package handlers

import (
	"net/http"

	"irrigator/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Current readings
// @Description  Sensor values as strings. Unavailable channels carry their fallback value.
// @Tags         readings
// @Produce      json
// @Success      200  {object}  map[string]string  "temperature, humidity, pressure"
// @Failure      500  {object}  map[string]string
// @Router       /readings [get]
func (h *Handler) getReadings(c *gin.Context) {
	body, err := service.EncodeReadings(h.services.Readings.Current(c.Request.Context()))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to encode readings", "readings_encode_failed", err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
