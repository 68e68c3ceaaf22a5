package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"maniboard/internal/service/dashboard"
	"maniboard/internal/store"
)

// AuthOptions 戰情室密码设定
type AuthOptions struct {
	Password   string        // 为空表示不启用密码
	SessionTTL time.Duration // 登录有效期
}

// Handler API 处理器
type Handler struct {
	svc      *dashboard.Service
	store    *store.Store
	auth     AuthOptions
	sessions *sessionStore
	started  time.Time
}

// NewHandler 创建 API 处理器；store 为 nil 时读取记录接口返回空列表
func NewHandler(svc *dashboard.Service, st *store.Store, auth AuthOptions) *Handler {
	if auth.SessionTTL <= 0 {
		auth.SessionTTL = 12 * time.Hour
	}
	return &Handler{
		svc:      svc,
		store:    st,
		auth:     auth,
		sessions: newSessionStore(),
		started:  time.Now(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 登录
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
	// 系统状态
	router.GET("/status", h.GetStatus)

	authed := router.Group("", h.RequireAuth())
	{
		// 分店看板
		authed.GET("/branches", h.ListBranches)
		authed.GET("/dashboard", h.GetDashboard)
		authed.GET("/dashboard/export", h.ExportDashboard)

		// 业绩排行
		authed.GET("/leaderboard", h.GetLeaderboard)
		authed.GET("/leaderboard/months", h.ListLeaderboardMonths)

		// 强制重新读取
		authed.POST("/cache/clear", h.ClearCache)

		// 读取记录
		authed.GET("/fetch-logs", h.ListFetchLogs)
	}
}
