package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchellatte/church-konek-web-admin/models"
	"github.com/matchellatte/church-konek-web-admin/services"
)

type ServiceFormsHandler struct {
	catalog *services.FormCatalog
}

func NewServiceFormsHandler(catalog *services.FormCatalog) *ServiceFormsHandler {
	return &ServiceFormsHandler{catalog: catalog}
}

// GetServiceRecords lists the intake form rows for one service. Columns are
// taken from the first row, since each form table has its own schema.
func (h *ServiceFormsHandler) GetServiceRecords(c *gin.Context) {
	slug := c.Param("serviceSlug")

	records, columns, err := h.catalog.LoadRecords(c.Request.Context(), slug)
	if errors.Is(err, services.ErrUnknownService) {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Unknown service",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, models.Response{
			Success: false,
			Error:   "Failed to fetch form records",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: gin.H{
			"total":   len(records),
			"columns": columns,
			"records": records,
		},
	})
}

// GetServiceRecord opens the detail view on one record by its position in
// the list.
func (h *ServiceFormsHandler) GetServiceRecord(c *gin.Context) {
	slug := c.Param("serviceSlug")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid record index",
		})
		return
	}

	records, _, err := h.catalog.LoadRecords(c.Request.Context(), slug)
	if errors.Is(err, services.ErrUnknownService) {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Unknown service",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, models.Response{
			Success: false,
			Error:   "Failed to fetch form records",
		})
		return
	}

	if index >= len(records) {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Record not found",
		})
		return
	}

	var viewer services.FormViewer
	viewer.Select(records[index])
	record, _ := viewer.Selected()

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    record,
	})
}

// GetCommunionForms lists the first communion intake forms with their named
// fields, for the dedicated communion view.
func (h *ServiceFormsHandler) GetCommunionForms(c *gin.Context) {
	forms, err := h.catalog.LoadCommunionForms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.Response{
			Success: false,
			Error:   "Failed to fetch communion forms",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: gin.H{
			"total": len(forms),
			"forms": forms,
		},
	})
}
