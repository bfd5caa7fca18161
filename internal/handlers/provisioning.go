package handlers

import (
	"net/http"

	"irrigator/internal/models"

	"github.com/gin-gonic/gin"
)

const provisionedReply = "Done. ESP will restart, connect to your router and go to IP address: "

// submitCredentials stores the submitted form fields and restarts the
// device. Fields the form did not send keep their stored value.
func (h *Handler) submitCredentials(c *gin.Context) {
	submitted := make(map[models.Field]string, len(models.Fields))
	for _, f := range models.Fields {
		if v, ok := c.GetPostForm(string(f)); ok {
			submitted[f] = v
		}
	}
	if h.log != nil {
		h.log.Infow("provision_form_submitted", "fields", len(submitted), "remote", c.ClientIP())
	}

	creds := h.services.Provisioning.Apply(c.Request.Context(), submitted)
	c.String(http.StatusOK, provisionedReply+creds.StaticAddress)
	h.services.Provisioning.ScheduleReboot()
}
