package payment

// sandboxCardAliases maps the test card numbers people copy from other
// processors' docs to the equivalent numbers the PayMongo sandbox accepts.
// Lookup happens after the number has been reduced to digits.
var sandboxCardAliases = map[string]string{
	"4242424242424242": "4343434343434345", // Visa, approved
	"4000056655665556": "4571736000000075", // Visa debit, approved
	"5555555555554444": "5240460000001466", // Mastercard, approved
	"4000000000003220": "4120000000000007", // Visa, 3DS challenge required
}

func aliasCardNumber(digits string) string {
	if aliased, ok := sandboxCardAliases[digits]; ok {
		return aliased
	}
	return digits
}
