package subscriptions

import (
	"errors"
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

// GetMySubscription returns the caller's subscription, if any.
// @Summary Get the current user's subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response "error: no subscription"
// @Router /subscriptions/me [get]
func (h *Handler) GetMySubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var sub models.Subscription
	err := h.DB.WithContext(c.Request.Context()).First(&sub, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.SendError(c, http.StatusNotFound, "No subscription for this user")
		return
	}
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error loading subscription in GetMySubscription")
		utils.SendError(c, http.StatusInternalServerError, "Could not load subscription")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Subscription retrieved", sub)
}
