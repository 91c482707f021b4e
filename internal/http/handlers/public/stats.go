package public

import (
	"time"

	"github.com/songgate/internal/cache"
	"github.com/songgate/internal/http/handlers/shared"
	"github.com/songgate/internal/http/response"
	"github.com/songgate/internal/repository"

	"github.com/gin-gonic/gin"
)

const statsCacheKey = "stats:today"
const statsCacheTTL = 30 * time.Second

// TodayStats handles GET /api/stats.
func (h *Handler) TodayStats(c *gin.Context) {
	ctx := c.Request.Context()

	var cached repository.SubmissionStats
	if hit, err := cache.GetJSON(ctx, statsCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	} else if err != nil {
		shared.RequestLog(c).Warnw("stats_cache_read_failed", "error", err)
	}

	stats, err := h.submissions.TodayStats()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.stats_failed", err)
		return
	}
	if err := cache.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
		shared.RequestLog(c).Warnw("stats_cache_write_failed", "error", err)
	}
	response.Success(c, stats)
}
