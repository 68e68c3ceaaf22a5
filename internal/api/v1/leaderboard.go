package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"maniboard/internal/service/dashboard"
)

// GetLeaderboard 业绩排行：store 为空或 ALL 时按門市排名，否则按人員排名
// GET /api/leaderboard?month=&store=&metric=&top=
func (h *Handler) GetLeaderboard(c *gin.Context) {
	q := dashboard.LeaderboardQuery{
		Month:  strings.TrimSpace(c.Query("month")),
		Store:  strings.TrimSpace(c.Query("store")),
		Metric: strings.TrimSpace(c.Query("metric")),
	}
	if v := c.Query("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top 必须为整数"})
			return
		}
		q.TopN = n
	}

	view, err := h.svc.Rank(c.Request.Context(), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListLeaderboardMonths 排行榜可选月份
// GET /api/leaderboard/months
func (h *Handler) ListLeaderboardMonths(c *gin.Context) {
	months, err := h.svc.Months(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": months})
}
