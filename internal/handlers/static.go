package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// page serves the page configured for role.
func (h *Handler) page(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, contentType, err := h.assets.Page(role)
		if err != nil {
			h.logAndJSONError(c, http.StatusInternalServerError, "page unavailable", "page_load_failed", err, "role", role)
			return
		}
		if h.log != nil {
			h.log.Debugw("page_served", "role", role, "remote", c.ClientIP())
		}
		c.Data(http.StatusOK, contentType, body)
	}
}

// registerStatic serves the asset files under / for every GET or HEAD no
// route matched.
func (h *Handler) registerStatic(r *gin.Engine) {
	files := http.FileServer(http.FS(h.assets.FS))
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.String(http.StatusNotFound, "Not found")
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})
}
