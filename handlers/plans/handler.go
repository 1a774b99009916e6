package plans

import (
	"net/http"

	"savoryflavors-backend/models"
	"savoryflavors-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// ListPlans returns the subscription catalog.
// @Summary List subscription plans
// @Tags plans
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	var plans []models.Plan
	if err := h.DB.WithContext(c.Request.Context()).Order("id").Find(&plans).Error; err != nil {
		utils.LogError(err, "Error listing plans")
		utils.SendError(c, http.StatusInternalServerError, "Could not load plans")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Plans retrieved", plans)
}
