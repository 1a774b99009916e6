package payment

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	nonDigits  = regexp.MustCompile(`[^0-9]`)
	cardNumber = regexp.MustCompile(`^[0-9]{12,19}$`)
	cardCVC    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// CardInput is the card block exactly as submitted by the client.
type CardInput struct {
	Number   string
	ExpMonth string
	ExpYear  string
	CVC      string
}

// CardDetails is the validated form handed to the gateway.
type CardDetails struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

// NormalizeAmount converts a price into the gateway's minor unit
// (centavos), rounding half up.
func NormalizeAmount(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, &ValidationError{Field: "amount", Reason: "amount must be a positive number"}
	}
	return int64(math.Floor(amount*100 + 0.5)), nil
}

// NormalizeCard validates and canonicalizes raw card fields. Sandbox test
// numbers are substituted before the format check so either form passes.
func NormalizeCard(in CardInput) (CardDetails, error) {
	number := aliasCardNumber(nonDigits.ReplaceAllString(in.Number, ""))
	if !cardNumber.MatchString(number) {
		return CardDetails{}, &ValidationError{Field: "cardNumber", Reason: "card number must be 12 to 19 digits"}
	}

	month, err := strconv.Atoi(strings.TrimSpace(in.ExpMonth))
	if err != nil || month < 1 || month > 12 {
		return CardDetails{}, &ValidationError{Field: "expMonth", Reason: "expiry month must be between 1 and 12"}
	}

	year, err := strconv.Atoi(strings.TrimSpace(in.ExpYear))
	if err != nil {
		return CardDetails{}, &ValidationError{Field: "expYear", Reason: "expiry year is not a number"}
	}
	if year < 100 {
		year += 2000
	}
	currentYear := time.Now().Year()
	if year < currentYear || year > currentYear+20 {
		return CardDetails{}, &ValidationError{Field: "expYear", Reason: "expiry year is out of range"}
	}

	cvc := strings.TrimSpace(in.CVC)
	if !cardCVC.MatchString(cvc) {
		return CardDetails{}, &ValidationError{Field: "cvc", Reason: "cvc must be 3 or 4 digits"}
	}

	return CardDetails{
		Number:   number,
		ExpMonth: month,
		ExpYear:  year,
		CVC:      cvc,
	}, nil
}

// NormalizeBillingCycle folds the spellings the form has produced over time
// ("Yearly", "YEAR", "months") into the two canonical values. Unknown
// values pass through for the caller to judge.
func NormalizeBillingCycle(cycle string) string {
	c := strings.ToLower(strings.TrimSpace(cycle))
	switch {
	case strings.HasPrefix(c, "year"):
		return "yearly"
	case strings.HasPrefix(c, "month"):
		return "monthly"
	default:
		return cycle
	}
}
