package v1

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"maniboard/internal/exporter"
	"maniboard/internal/model"
)

// ListBranches 可选分店
// GET /api/branches
func (h *Handler) ListBranches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.svc.Branches()})
}

// GetDashboard 分店看板（指标分组、日趋势、营收结构、明细）
// GET /api/dashboard?branch=
func (h *Handler) GetDashboard(c *gin.Context) {
	branch := strings.TrimSpace(c.Query("branch"))
	if branch == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 branch"})
		return
	}

	view, err := h.svc.Branch(c.Request.Context(), branch)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	roundIndicatorGroupsInPlace(view.Groups)
	c.JSON(http.StatusOK, view)
}

// ExportDashboard 下载分店明细（xlsx）
// GET /api/dashboard/export?branch=
func (h *Handler) ExportDashboard(c *gin.Context) {
	branch := strings.TrimSpace(c.Query("branch"))
	if branch == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 branch"})
		return
	}

	view, err := h.svc.Branch(c.Request.Context(), branch)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	table, err := h.svc.Table(c.Request.Context(), branch)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	file, err := exporter.ExportTable(table, branch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	defer file.Close()
	if err := exporter.AddSummarySheet(file, view.Groups); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(branch, table.Meta))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		log.Printf("写入导出文件失败: %v", err)
	}
}

// buildExportContentDisposition ASCII 文件名 + RFC 5987 的 UTF-8 文件名
func buildExportContentDisposition(branch string, meta model.SheetMetadata) string {
	ascii := fmt.Sprintf("branch-report-%d-%02d.xlsx", meta.Year, meta.Month)
	utf8Name := url.PathEscape(exporter.Filename(branch, meta))
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", ascii, utf8Name)
}
