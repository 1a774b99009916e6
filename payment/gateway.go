package payment

import (
	"context"
)

// Gateway statuses this core branches on. Anything else is a failure.
const (
	IntentStatusSucceeded          = "succeeded"
	IntentStatusAwaitingNextAction = "awaiting_next_action"
)

type IntentInput struct {
	Amount         int64
	Currency       string
	AllowedMethods []string
	RequestThreeDS bool
	Description    string
	Metadata       map[string]string
}

// MethodInput describes the payment method to create. Card is set for card
// payments; wallet methods carry the amount and currency instead.
type MethodInput struct {
	Kind     string
	Card     *CardDetails
	Billing  map[string]interface{}
	Amount   int64
	Currency string
}

type AttachResult struct {
	Status      string
	RedirectURL string
}

// Gateway is the three-call surface of the payment provider. Each call is a
// single attempt; there are no retries at this layer or below.
type Gateway interface {
	CreateIntent(ctx context.Context, in IntentInput) (string, error)
	CreatePaymentMethod(ctx context.Context, in MethodInput) (string, error)
	AttachMethod(ctx context.Context, intentID, methodID, returnURL string) (*AttachResult, error)
}
