package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClearCache 清空全部缓存，下次请求重新读取试算表
// POST /api/cache/clear
func (h *Handler) ClearCache(c *gin.Context) {
	h.svc.ClearCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "cache": h.svc.Stats()})
}
