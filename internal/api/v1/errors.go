package v1

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"maniboard/internal/parser"
	"maniboard/internal/service/dashboard"
)

// writeServiceError 将看板服务的错误映射为 HTTP 状态
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dashboard.ErrUnknownBranch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, parser.ErrMalformedSheet), errors.Is(err, parser.ErrMissingColumn):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": dashboard.ErrNoData.Error(), "detail": err.Error()})
	case errors.Is(err, dashboard.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": dashboard.ErrNoData.Error()})
	case errors.Is(err, dashboard.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("读取试算表失败: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "讀取試算表失敗: " + err.Error()})
	}
}
