package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/report"
	"github.com/meetingdesk/meeting-scheduler/internal/httpresp"
	usecase "github.com/meetingdesk/meeting-scheduler/internal/usecase/report"
)

type DashboardHandler struct {
	dashboard *usecase.Dashboard
}

func NewDashboardHandler(dashboard *usecase.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Widget answers GET /dashboard/widgets/:kind?days=30.
func (h *DashboardHandler) Widget(c *gin.Context) {
	kind := domain.WidgetKind(c.Param("kind"))

	days := 0
	if daysStr := c.Query("days"); daysStr != "" {
		days, _ = strconv.Atoi(daysStr)
	}

	data, err := h.dashboard.Widget(c.Request.Context(), kind, days)
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	httpresp.OK(c, data)
}
