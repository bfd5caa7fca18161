package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

// @Summary      Readings event stream
// @Description  Server-sent events. Each new_readings event carries the same body as GET /readings; its id is the publish count.
// @Tags         readings
// @Produce      text/event-stream
// @Param        Last-Event-ID  header  string  false  "Last message id seen by the client"
// @Success      200
// @Router       /events [get]
func (h *Handler) events(c *gin.Context) {
	if last, err := strconv.ParseUint(c.GetHeader("Last-Event-ID"), 10, 64); err == nil && last > 0 {
		if h.log != nil {
			h.log.Infow("sse_client_connected", "last_event_id", last, "remote", c.ClientIP())
		}
	}

	sub := h.hub.Subscribe()
	defer sub.Close()

	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-sub.C:
			if !ok {
				return false
			}
			c.Render(-1, sse.Event{
				Event: msg.Event,
				Id:    strconv.FormatUint(msg.ID, 10),
				Data:  string(msg.Data),
			})
			return true
		}
	})
}
