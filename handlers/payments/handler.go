package payments

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"savoryflavors-backend/payment"
	"savoryflavors-backend/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	orchestrator *payment.Orchestrator
	activator    *payment.Activator
}

func NewHandler(orchestrator *payment.Orchestrator, activator *payment.Activator) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		activator:    activator,
	}
}

type cardDetailsBody struct {
	CardNumber string `json:"cardNumber"`
	ExpMonth   string `json:"expMonth"`
	ExpYear    string `json:"expYear"`
	CVC        string `json:"cvc"`
}

type createPaymentBody struct {
	Amount         float64                `json:"amount"`
	PlanID         interface{}            `json:"planId" binding:"required"`
	PaymentMethod  string                 `json:"paymentMethod" binding:"required"`
	BillingCycle   string                 `json:"billingCycle"`
	CardDetails    *cardDetailsBody       `json:"cardDetails"`
	BillingAddress map[string]interface{} `json:"billingAddress"`
}

// CreatePayment runs one subscription payment attempt.
// @Summary Pay for a subscription plan
// @Description Charges the submitted amount through the payment gateway. Card payments may complete synchronously or return a redirect URL for 3DS; wallet payments always return a redirect URL.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body createPaymentBody true "Payment request"
// @Security BearerAuth
// @Success 200 {object} utils.Response "paymentIntentId, requiresAction, redirectUrl?"
// @Failure 400 {object} utils.Response "error: validation failure"
// @Failure 404 {object} utils.Response "error: plan not found"
// @Failure 502 {object} utils.Response "error: payment rejected by gateway"
// @Failure 504 {object} utils.Response "error: gateway unreachable"
// @Failure 500 {object} utils.Response "error: payment recorded at gateway but not locally"
// @Router /payments [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	user, _ := userID.(string)

	var body createPaymentBody
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	input := payment.CheckoutInput{
		UserID:        user,
		Amount:        body.Amount,
		PlanID:        planIDString(body.PlanID),
		PaymentMethod: body.PaymentMethod,
		BillingCycle:  body.BillingCycle,
		Billing:       body.BillingAddress,
	}
	if body.CardDetails != nil {
		input.Card = &payment.CardInput{
			Number:   body.CardDetails.CardNumber,
			ExpMonth: body.CardDetails.ExpMonth,
			ExpYear:  body.CardDetails.ExpYear,
			CVC:      body.CardDetails.CVC,
		}
	}

	result, err := h.orchestrator.Checkout(c.Request.Context(), input)
	if err != nil {
		h.sendPaymentError(c, user, err)
		return
	}

	data := gin.H{
		"paymentIntentId": result.PaymentIntentID,
		"requiresAction":  result.Outcome == payment.OutcomeRequiresAction,
	}
	if result.RedirectURL != "" {
		data["redirectUrl"] = result.RedirectURL
	}

	if result.Outcome == payment.OutcomeSucceeded {
		activation, err := h.activator.Activate(c.Request.Context(), payment.ActivationInput{
			UserID:          user,
			PlanID:          result.Plan.ID,
			BillingCycle:    result.Plan.BillingCycle,
			AmountMinor:     result.AmountMinor,
			Currency:        result.Currency,
			GatewayIntentID: result.PaymentIntentID,
			PaymentMethod:   result.Method,
		})
		if err != nil {
			h.sendPaymentError(c, user, err)
			return
		}
		data["subscription"] = activation.Subscription
		data["payment"] = activation.Payment
		utils.LogSuccess("Subscription activated for user " + user + ", intent " + result.PaymentIntentID)
	}

	utils.SendSuccess(c, http.StatusOK, "Payment processed", data)
}

// sendPaymentError maps the payment error taxonomy onto HTTP statuses.
// Gateway details stay in the logs; users get a generic message.
func (h *Handler) sendPaymentError(c *gin.Context, userID string, err error) {
	var validationErr *payment.ValidationError
	if errors.As(err, &validationErr) {
		utils.SendError(c, http.StatusBadRequest, validationErr.Error())
		return
	}

	var notFoundErr *payment.PlanNotFoundError
	if errors.As(err, &notFoundErr) {
		utils.SendError(c, http.StatusNotFound, "No matching subscription plan")
		return
	}

	var lookupErr *payment.PlanLookupError
	if errors.As(err, &lookupErr) {
		// Nothing was charged yet; do not point the user at support.
		utils.LogErrorWithUser(userID, lookupErr, "Plan lookup failed in CreatePayment")
		utils.SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var gatewayErr *payment.GatewayError
	if errors.As(err, &gatewayErr) {
		utils.LogErrorWithUser(userID, gatewayErr, "Payment gateway error in CreatePayment")
		switch gatewayErr.Kind {
		case payment.GatewayTimeout, payment.GatewayUnreachable:
			utils.SendError(c, http.StatusGatewayTimeout, "The payment gateway did not respond, please try again")
		default:
			utils.SendError(c, http.StatusBadGateway, "The payment could not be processed")
		}
		return
	}

	var persistErr *payment.PersistenceError
	if errors.As(err, &persistErr) {
		// Already logged with full context by the activator.
		utils.SendError(c, http.StatusInternalServerError, "The payment was taken but could not be recorded, please contact support")
		return
	}

	utils.LogErrorWithUser(userID, err, "Unexpected error in CreatePayment")
	utils.SendError(c, http.StatusInternalServerError, "Internal server error")
}

// planIDString accepts the plan id as either a JSON number or a string.
func planIDString(v interface{}) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}
