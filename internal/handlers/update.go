package handlers

import (
	"errors"
	"net/http"

	"irrigator/internal/service"

	"github.com/gin-gonic/gin"
)

const headerImageMD5 = "X-Image-MD5"

type updateAuthRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("update_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Start a firmware update
// @Description  Exchanges the shared secret for a short-lived upload token.
// @Tags         update
// @Accept       json
// @Produce      json
// @Param        body  body  updateAuthRequest  true  "Shared secret"
// @Success      200  {object}  map[string]string  "token"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /update/auth [post]
func (h *Handler) updateAuth(c *gin.Context) {
	var input updateAuthRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Firmware.Authenticate(input.Secret)
	if err != nil {
		if errors.Is(err, service.ErrUpdateDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "update channel disabled"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Upload a firmware image
// @Description  Raw image body. The image is committed only when it is complete and matches X-Image-MD5; the device then restarts.
// @Tags         update
// @Accept       application/octet-stream
// @Produce      json
// @Param        X-Image-MD5  header  string  true  "Hex md5 of the image"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /update [post]
// @Security     BearerAuth
func (h *Handler) updateUpload(c *gin.Context) {
	token := c.GetString(ctxUpdateToken)
	err := h.services.Firmware.Apply(c.Request.Context(), token, c.Request.Body, c.Request.ContentLength, c.GetHeader(headerImageMD5))
	if err != nil {
		code := http.StatusBadRequest
		var ue *service.UpdateError
		if errors.As(err, &ue) {
			switch ue.Phase {
			case service.PhaseAuth:
				code = http.StatusUnauthorized
			case service.PhaseConnect:
				code = http.StatusInternalServerError
			}
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
