package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchellatte/church-konek-web-admin/models"
	"github.com/matchellatte/church-konek-web-admin/services"
)

type AppointmentHandler struct {
	list *services.AppointmentList
}

func NewAppointmentHandler(list *services.AppointmentList) *AppointmentHandler {
	return &AppointmentHandler{list: list}
}

// GetAppointments reloads the appointment list and returns the filtered,
// sorted rows. A `sort` parameter selects that column and toggles the
// direction, exactly like the table's sort control.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	if err := h.list.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, models.Response{
			Success: false,
			Error:   "Failed to fetch appointments",
		})
		return
	}

	if query, ok := c.GetQuery("search"); ok {
		h.list.SetQuery(query)
	}
	if column, ok := c.GetQuery("sort"); ok {
		h.list.SortBy(column)
	}

	column, ascending := h.list.Sort()
	order := "asc"
	if !ascending {
		order = "desc"
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: gin.H{
			"total":        h.list.Total(),
			"appointments": h.list.Rows(),
			"sort":         column,
			"order":        order,
			"statuses":     models.Statuses(),
		},
	})
}

// UpdateStatus sets a new status on one appointment. The write goes to the
// backend first; the in-memory record is only touched on success.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	appointmentID := c.Param("id")

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := h.list.UpdateStatus(c.Request.Context(), appointmentID, req.Status); err != nil {
		c.JSON(http.StatusBadGateway, models.Response{
			Success: false,
			Error:   "Failed to update status",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Status updated",
	})
}
