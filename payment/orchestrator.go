package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"savoryflavors-backend/models"

	"github.com/google/uuid"
)

const defaultCurrency = "PHP"

const (
	MethodCard   = "card"
	MethodWallet = "gcash"
)

type Outcome string

const (
	OutcomeSucceeded      Outcome = "succeeded"
	OutcomeRequiresAction Outcome = "requires_action"
)

type CheckoutInput struct {
	UserID        string
	Amount        float64
	PlanID        string
	PaymentMethod string
	BillingCycle  string
	Card          *CardInput
	Billing       map[string]interface{}
}

type CheckoutResult struct {
	Outcome         Outcome
	PaymentIntentID string
	RedirectURL     string
	Plan            *models.Plan
	Method          string
	AmountMinor     int64
	Currency        string
}

// Orchestrator drives one payment attempt through the gateway's
// intent/method/attach sequence. Failed steps short-circuit; partially
// created gateway resources are left for the gateway to expire.
type Orchestrator struct {
	gateway   Gateway
	plans     *PlanResolver
	returnURL string
}

func NewOrchestrator(gateway Gateway, plans *PlanResolver, returnURL string) *Orchestrator {
	return &Orchestrator{
		gateway:   gateway,
		plans:     plans,
		returnURL: returnURL,
	}
}

// Checkout validates the request, resolves the plan and runs the gateway
// sequence. A returned error is the failed outcome; the result covers the
// succeeded and requires-action ones. Activation is the caller's decision.
func (o *Orchestrator) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	amount, err := NormalizeAmount(in.Amount)
	if err != nil {
		return nil, err
	}

	method, err := normalizeMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	// Card fields are checked before anything leaves the process so a bad
	// expiry never creates a dangling intent.
	var card CardDetails
	if method == MethodCard {
		if in.Card == nil {
			return nil, &ValidationError{Field: "cardDetails", Reason: "card details are required for card payments"}
		}
		card, err = NormalizeCard(*in.Card)
		if err != nil {
			return nil, err
		}
	}

	plan, err := o.plans.Resolve(ctx, in.PlanID, in.BillingCycle)
	if err != nil {
		return nil, err
	}

	intentID, err := o.gateway.CreateIntent(ctx, IntentInput{
		Amount:         amount,
		Currency:       defaultCurrency,
		AllowedMethods: []string{method},
		RequestThreeDS: method == MethodCard,
		Description:    fmt.Sprintf("%s subscription (%s)", plan.Name, plan.BillingCycle),
		Metadata: map[string]string{
			"user_id":   in.UserID,
			"plan_id":   strconv.FormatUint(uint64(plan.ID), 10),
			"reference": uuid.NewString(),
		},
	})
	if err != nil {
		return nil, err
	}

	methodInput := MethodInput{Kind: method}
	if method == MethodCard {
		methodInput.Card = &card
		methodInput.Billing = in.Billing
	} else {
		methodInput.Amount = amount
		methodInput.Currency = defaultCurrency
	}

	methodID, err := o.gateway.CreatePaymentMethod(ctx, methodInput)
	if err != nil {
		return nil, err
	}

	attach, err := o.gateway.AttachMethod(ctx, intentID, methodID, o.returnURL)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{
		PaymentIntentID: intentID,
		Plan:            plan,
		Method:          method,
		AmountMinor:     amount,
		Currency:        defaultCurrency,
	}

	if method == MethodWallet {
		// Wallet charges always complete on the provider's page; a missing
		// redirect means the gateway answered something we cannot act on.
		if attach.RedirectURL == "" {
			return nil, &GatewayError{Kind: GatewayMalformedResponse, Detail: "no redirect url in wallet attach response"}
		}
		result.Outcome = OutcomeRequiresAction
		result.RedirectURL = attach.RedirectURL
		return result, nil
	}

	switch {
	case attach.RedirectURL != "":
		result.Outcome = OutcomeRequiresAction
		result.RedirectURL = attach.RedirectURL
		return result, nil
	case attach.Status == IntentStatusSucceeded:
		result.Outcome = OutcomeSucceeded
		return result, nil
	default:
		return nil, &GatewayError{Kind: GatewayRejected, Detail: "payment not completed, intent status " + attach.Status}
	}
}

func normalizeMethod(method string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "card":
		return MethodCard, nil
	case "wallet", "gcash", "ewallet", "e-wallet":
		return MethodWallet, nil
	default:
		return "", &ValidationError{Field: "paymentMethod", Reason: "payment method must be card or wallet"}
	}
}
