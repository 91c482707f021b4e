package admin

import (
	"github.com/songgate/internal/http/handlers/shared"
	"github.com/songgate/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RecentSubmissions handles GET /api/admin/submissions.
func (h *Handler) RecentSubmissions(c *gin.Context) {
	rows, err := h.submissions.RecentSubmissions()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.admin_list_failed", err)
		return
	}
	todayTotal := int64(0)
	if stats, err := h.submissions.TodayStats(); err == nil {
		todayTotal = stats.Total
	} else {
		shared.RequestLog(c).Warnw("admin_today_count_failed", "error", err)
	}
	response.Success(c, gin.H{
		"submissions": rows,
		"count":       len(rows),
		"today_total": todayTotal,
	})
}

// TodayStats handles GET /api/admin/stats.
func (h *Handler) TodayStats(c *gin.Context) {
	stats, err := h.submissions.TodayStats()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.stats_failed", err)
		return
	}
	response.Success(c, stats)
}
