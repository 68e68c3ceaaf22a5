package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"maniboard/internal/model"
	"maniboard/internal/store"
)

const (
	defaultFetchLogLimit = 50
	maxFetchLogLimit     = 500
)

// ListFetchLogs 最近的分页读取记录
// GET /api/fetch-logs?limit=&sheet=&status=
func (h *Handler) ListFetchLogs(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"items": []model.FetchLog{}})
		return
	}

	opts := store.FetchLogQueryOptions{Limit: defaultFetchLogLimit}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit 必须为正整数"})
			return
		}
		if n > maxFetchLogLimit {
			n = maxFetchLogLimit
		}
		opts.Limit = n
	}
	if v := c.Query("sheet"); v != "" {
		opts.Sheet = &v
	}
	if v := c.Query("status"); v != "" {
		status := model.FetchStatus(v)
		opts.Status = &status
	}

	items, err := h.store.ListFetchLogs(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
