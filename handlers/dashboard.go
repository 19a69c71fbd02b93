package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchellatte/church-konek-web-admin/models"
	"github.com/matchellatte/church-konek-web-admin/services"
)

type DashboardHandler struct {
	stats *services.StatsService
}

func NewDashboardHandler(stats *services.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// GetDashboard returns the status counts, the per-service distribution and
// the chart series derived from them, all recomputed on this request.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	stats, serviceStats, err := h.stats.LoadDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.Response{
			Success: false,
			Error:   "Failed to load dashboard",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: gin.H{
			"stats":          stats,
			"service_stats":  serviceStats,
			"services_chart": services.ServiceSeries(serviceStats),
			"status_chart":   services.StatusSeries(stats),
		},
	})
}
