package money

import "strings"

// DefaultCurrency is used when a bill or balance carries no currency code.
const DefaultCurrency = "USD"

// Currency describes a supported currency.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// Currencies lists the currencies the application offers.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
}

var symbols = func() map[string]string {
	m := make(map[string]string, len(Currencies))
	for _, c := range Currencies {
		m[c.Code] = c.Symbol
	}
	return m
}()

// IsSupported reports whether code is one of Currencies.
func IsSupported(code string) bool {
	_, ok := symbols[strings.ToUpper(code)]
	return ok
}

// NormalizeCurrency upper-cases code and falls back to DefaultCurrency when blank.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}
