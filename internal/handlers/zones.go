package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"irrigator/internal/models"
	"irrigator/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errZoneID     = "zoneId must be an integer"
	errZoneStatus = "status must be 0 or 1"
	errZoneToggle = "failed to switch zone"
	errZoneList   = "failed to load zones"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Switch a zone
// @Description  Used by the dashboard buttons. Replies with plain text.
// @Tags         zones
// @Produce      plain
// @Param        zoneId  query  int  true  "Zone number, 1-based"  example(1)
// @Param        status  query  int  true  "1 = on, 0 = off"  Enums(0,1)
// @Success      200  {string}  string  "OK"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /toggleZone [get]
func (h *Handler) toggleZone(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("zoneId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errZoneID})
		return
	}
	var on bool
	switch c.Query("status") {
	case "1":
		on = true
	case "0":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": errZoneStatus})
		return
	}

	if err := h.services.Zones.Toggle(c.Request.Context(), id, on); err != nil {
		if errors.Is(err, service.ErrInvalidZone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errZoneToggle, "zone_toggle_failed", err, "zone", id)
		return
	}
	c.String(http.StatusOK, "OK")
}

// @Summary      List zones
// @Tags         zones
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, zones"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/zones [get]
func (h *Handler) getZones(c *gin.Context) {
	zones, err := h.services.Zones.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errZoneList, "zones_list_failed", err)
		return
	}
	if zones == nil {
		zones = []models.ZoneState{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(zones), "zones": zones})
}
