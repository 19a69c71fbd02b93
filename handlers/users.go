package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchellatte/church-konek-web-admin/models"
	"github.com/matchellatte/church-konek-web-admin/services"
)

type UserHandler struct {
	directory *services.UserDirectory
}

func NewUserHandler(directory *services.UserDirectory) *UserHandler {
	return &UserHandler{directory: directory}
}

// GetUsers lists registered users, optionally filtered by a search query
// and sorted by name or creation date. The total always reflects the full
// directory, not the filtered view.
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.directory.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.Response{
			Success: false,
			Error:   "Failed to fetch users",
		})
		return
	}

	filtered := h.directory.Filter(users, c.Query("search"))
	sorted := h.directory.Sorted(filtered, c.DefaultQuery("sort", services.UserSortByName))

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: gin.H{
			"total": len(users),
			"users": sorted,
		},
	})
}
