package paymongo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"savoryflavors-backend/payment"

	"github.com/stretchr/testify/assert"
)

func intentInput() payment.IntentInput {
	return payment.IntentInput{
		Amount:         19900,
		Currency:       "PHP",
		AllowedMethods: []string{"card"},
		RequestThreeDS: true,
		Description:    "Premium subscription (monthly)",
		Metadata:       map[string]string{"user_id": "user-1"},
	}
}

func TestCreateIntent(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test_123", user)

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"pi_abc","attributes":{"status":"awaiting_payment_method"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_123")
	intentID, err := client.CreateIntent(context.Background(), intentInput())

	assert.NoError(t, err)
	assert.Equal(t, "pi_abc", intentID)

	attrs := gotBody["data"].(map[string]interface{})["attributes"].(map[string]interface{})
	assert.Equal(t, float64(19900), attrs["amount"])
	assert.Equal(t, "PHP", attrs["currency"])
	assert.Equal(t, []interface{}{"card"}, attrs["payment_method_allowed"])

	options := attrs["payment_method_options"].(map[string]interface{})
	card := options["card"].(map[string]interface{})
	assert.Equal(t, "any", card["request_three_d_secure"])
}

func TestCreatePaymentMethod_Card(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_methods", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"data":{"id":"pm_def","attributes":{"status":""}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_123")
	methodID, err := client.CreatePaymentMethod(context.Background(), payment.MethodInput{
		Kind: "card",
		Card: &payment.CardDetails{
			Number:   "4343434343434345",
			ExpMonth: 12,
			ExpYear:  2030,
			CVC:      "123",
		},
		Billing: map[string]interface{}{"name": "Juan dela Cruz"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "pm_def", methodID)

	attrs := gotBody["data"].(map[string]interface{})["attributes"].(map[string]interface{})
	assert.Equal(t, "card", attrs["type"])
	details := attrs["details"].(map[string]interface{})
	assert.Equal(t, "4343434343434345", details["card_number"])
	assert.Equal(t, float64(12), details["exp_month"])
	billing := attrs["billing"].(map[string]interface{})
	assert.Equal(t, "Juan dela Cruz", billing["name"])
}

func TestCreatePaymentMethod_Wallet(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"data":{"id":"pm_gcash","attributes":{}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_123")
	methodID, err := client.CreatePaymentMethod(context.Background(), payment.MethodInput{
		Kind:     "gcash",
		Amount:   19900,
		Currency: "PHP",
	})

	assert.NoError(t, err)
	assert.Equal(t, "pm_gcash", methodID)

	attrs := gotBody["data"].(map[string]interface{})["attributes"].(map[string]interface{})
	assert.Equal(t, "gcash", attrs["type"])
	details := attrs["details"].(map[string]interface{})
	assert.Equal(t, float64(19900), details["amount"])
}

func TestAttachMethod_RedirectExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents/pi_abc/attach", r.URL.Path)
		w.Write([]byte(`{"data":{"id":"pi_abc","attributes":{"status":"awaiting_next_action","next_action":{"type":"redirect","redirect":{"url":"https://gateway.example/authorize/pi_abc"}}}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_123")
	result, err := client.AttachMethod(context.Background(), "pi_abc", "pm_def", "https://app.example/confirm")

	assert.NoError(t, err)
	assert.Equal(t, "awaiting_next_action", result.Status)
	assert.Equal(t, "https://gateway.example/authorize/pi_abc", result.RedirectURL)
}

func TestAttachMethod_SucceededWithoutNextAction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":"pi_abc","attributes":{"status":"succeeded"}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_123")
	result, err := client.AttachMethod(context.Background(), "pi_abc", "pm_def", "")

	assert.NoError(t, err)
	assert.Equal(t, "succeeded", result.Status)
	assert.Empty(t, result.RedirectURL)
}

func TestRejectedResponseMapsToGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"code":"card_declined","detail":"The card was declined"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_123")
	_, err := client.CreateIntent(context.Background(), intentInput())

	var gatewayErr *payment.GatewayError
	assert.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, payment.GatewayRejected, gatewayErr.Kind)
	assert.Contains(t, gatewayErr.Detail, "card_declined")
}

func TestMalformedBodyMapsToGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_123")
	_, err := client.CreateIntent(context.Background(), intentInput())

	var gatewayErr *payment.GatewayError
	assert.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, payment.GatewayMalformedResponse, gatewayErr.Kind)
}

func TestUnreachableGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "sk_test_123")
	_, err := client.CreateIntent(context.Background(), intentInput())

	var gatewayErr *payment.GatewayError
	assert.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, payment.GatewayUnreachable, gatewayErr.Kind)
}

func TestTimeoutClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_123")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.CreateIntent(ctx, intentInput())

	var gatewayErr *payment.GatewayError
	assert.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, payment.GatewayTimeout, gatewayErr.Kind)
}
