package v1

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"maniboard/internal/model"
	"maniboard/internal/service/dashboard"
	"maniboard/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	AuthRequired  bool                 `json:"authRequired"`  // 是否需要密码
	Authenticated bool                 `json:"authenticated"` // 当前请求是否已登录
	Branches      int                  `json:"branches"`      // 可选分店数
	Cache         dashboard.CacheStats `json:"cache"`
	FetchCount    int                  `json:"fetchCount"`          // 累计真实读取次数
	LastFetch     *model.FetchLog      `json:"lastFetch,omitempty"` // 最近一次读取
	Uptime        string               `json:"uptime"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		AuthRequired:  h.authEnabled(),
		Authenticated: h.authenticated(c),
		Uptime:        time.Since(h.started).Truncate(time.Second).String(),
	}
	if !resp.Authenticated {
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.Branches = len(h.svc.Branches())
	resp.Cache = h.svc.Stats()

	if h.store != nil {
		count, err := h.store.CountFetchLogs()
		if err != nil {
			log.Printf("统计读取记录失败: %v", err)
		}
		resp.FetchCount = count

		logs, err := h.store.ListFetchLogs(store.FetchLogQueryOptions{Limit: 1})
		if err == nil && len(logs) > 0 {
			resp.LastFetch = &logs[0]
		}
	}

	c.JSON(http.StatusOK, resp)
}
