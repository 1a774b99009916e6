// Package paymongo is a thin client for the PayMongo payment-intent API.
// It issues the three calls the checkout flow needs and maps responses into
// the payment package's result and error types. Retry policy, if any, is
// the caller's concern.
package paymongo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"savoryflavors-backend/payment"
)

const defaultAPIBase = "https://api.paymongo.com"

type Client struct {
	apiBase    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(apiBase, secretKey string) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &Client{
		apiBase:   apiBase,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// envelope is PayMongo's {"data": {...}} wrapper.
type envelope struct {
	Data resource `json:"data"`
}

type resource struct {
	ID         string     `json:"id"`
	Attributes attributes `json:"attributes"`
}

type attributes struct {
	Status     string      `json:"status"`
	NextAction *nextAction `json:"next_action"`
}

type nextAction struct {
	Type     string `json:"type"`
	Redirect struct {
		URL string `json:"url"`
	} `json:"redirect"`
}

type apiError struct {
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (c *Client) CreateIntent(ctx context.Context, in payment.IntentInput) (string, error) {
	attrs := map[string]interface{}{
		"amount":                 in.Amount,
		"currency":               in.Currency,
		"payment_method_allowed": in.AllowedMethods,
		"description":            in.Description,
		"metadata":               in.Metadata,
	}
	if in.RequestThreeDS {
		attrs["payment_method_options"] = map[string]interface{}{
			"card": map[string]string{"request_three_d_secure": "any"},
		}
	}

	res, err := c.post(ctx, "/v1/payment_intents", attrs)
	if err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", &payment.GatewayError{Kind: payment.GatewayMalformedResponse, Detail: "payment intent response has no id"}
	}
	return res.ID, nil
}

func (c *Client) CreatePaymentMethod(ctx context.Context, in payment.MethodInput) (string, error) {
	attrs := map[string]interface{}{
		"type": in.Kind,
	}
	if in.Card != nil {
		attrs["details"] = map[string]interface{}{
			"card_number": in.Card.Number,
			"exp_month":   in.Card.ExpMonth,
			"exp_year":    in.Card.ExpYear,
			"cvc":         in.Card.CVC,
		}
		if in.Billing != nil {
			attrs["billing"] = in.Billing
		}
	} else {
		attrs["details"] = map[string]interface{}{
			"amount":   in.Amount,
			"currency": in.Currency,
		}
	}

	res, err := c.post(ctx, "/v1/payment_methods", attrs)
	if err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", &payment.GatewayError{Kind: payment.GatewayMalformedResponse, Detail: "payment method response has no id"}
	}
	return res.ID, nil
}

func (c *Client) AttachMethod(ctx context.Context, intentID, methodID, returnURL string) (*payment.AttachResult, error) {
	attrs := map[string]interface{}{
		"payment_method": methodID,
		"return_url":     returnURL,
	}

	res, err := c.post(ctx, "/v1/payment_intents/"+intentID+"/attach", attrs)
	if err != nil {
		return nil, err
	}
	if res.Attributes.Status == "" {
		return nil, &payment.GatewayError{Kind: payment.GatewayMalformedResponse, Detail: "attach response has no status"}
	}

	result := &payment.AttachResult{Status: res.Attributes.Status}
	if na := res.Attributes.NextAction; na != nil && na.Type == "redirect" {
		result.RedirectURL = na.Redirect.URL
	}
	return result, nil
}

// post sends one request and maps every failure mode to a GatewayError.
func (c *Client) post(ctx context.Context, path string, attrs map[string]interface{}) (*resource, error) {
	body, err := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{"attributes": attrs},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &payment.GatewayError{Kind: payment.GatewayMalformedResponse, Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.Unmarshal(raw, &apiErr); err == nil && len(apiErr.Errors) > 0 {
			return nil, &payment.GatewayError{
				Kind:   payment.GatewayRejected,
				Detail: apiErr.Errors[0].Code + ": " + apiErr.Errors[0].Detail,
			}
		}
		return nil, &payment.GatewayError{
			Kind:   payment.GatewayRejected,
			Detail: fmt.Sprintf("status %d: %s", resp.StatusCode, string(raw)),
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &payment.GatewayError{Kind: payment.GatewayMalformedResponse, Detail: err.Error()}
	}
	return &env.Data, nil
}

func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &payment.GatewayError{Kind: payment.GatewayTimeout, Detail: err.Error()}
	}
	return &payment.GatewayError{Kind: payment.GatewayUnreachable, Detail: err.Error()}
}
