package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionCookie 登录凭证 cookie 名
const SessionCookie = "maniboard_session"

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string `json:"token,omitempty"`
	AuthRequired bool   `json:"authRequired"`
}

func (h *Handler) authEnabled() bool {
	return h.auth.Password != ""
}

// Login 校验戰情室密码并发放登录凭证
// POST /api/login
func (h *Handler) Login(c *gin.Context) {
	if !h.authEnabled() {
		c.JSON(http.StatusOK, loginResponse{AuthRequired: false})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.auth.Password)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "密碼錯誤"})
		return
	}

	token := h.sessions.put(h.auth.SessionTTL)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(h.auth.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, loginResponse{Token: token, AuthRequired: true})
}

// Logout 注销当前凭证
// POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	if token := sessionToken(c); token != "" {
		h.sessions.delete(token)
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RequireAuth 未登录时返回 401；未设定密码时直接放行
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.authenticated(c) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "請先輸入密碼"})
	}
}

func (h *Handler) authenticated(c *gin.Context) bool {
	return !h.authEnabled() || h.sessions.valid(sessionToken(c))
}

// sessionToken 优先取 Authorization: Bearer，其次取 cookie
func sessionToken(c *gin.Context) string {
	if v := c.GetHeader("Authorization"); strings.HasPrefix(v, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(v, "Bearer "))
	}
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}
