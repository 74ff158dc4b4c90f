// Currency code listings, display symbols, and popular conversion pairs.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Pair is a commonly requested conversion, shown as a shortcut.
type Pair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

var popularPairs = []Pair{
	{From: "USD", To: "EUR"},
	{From: "USD", To: "GBP"},
	{From: "USD", To: "JPY"},
	{From: "EUR", To: "GBP"},
	{From: "USD", To: "CAD"},
	{From: "USD", To: "AUD"},
}

// PopularPairs returns the conversion shortcuts.
func PopularPairs() []Pair {
	out := make([]Pair, len(popularPairs))
	copy(out, popularPairs)
	return out
}

// Currencies returns supported currency codes mapped to their full names.
// With an API key it asks the /codes endpoint; without one, or when that
// call fails in any way, it falls back to the built-in list.
func (c *Client) Currencies(ctx context.Context) map[string]string {
	if c.config.APIKey == "" {
		return DefaultCurrencies()
	}

	codes, err := c.fetchCodes(ctx)
	if err != nil {
		c.log.Warnw("fetching currency codes, using built-in list", "error", err)
		return DefaultCurrencies()
	}
	return codes
}

func (c *Client) fetchCodes(ctx context.Context) (map[string]string, error) {
	url := fmt.Sprintf("%s/%s/codes", c.config.KeyedURL, c.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building codes request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting codes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requesting codes: unexpected status %s", resp.Status)
	}

	// supported_codes is a list of [code, name] pairs
	var payload struct {
		SupportedCodes [][]string `json:"supported_codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding codes response: %w", err)
	}
	if payload.SupportedCodes == nil {
		return nil, ErrBadResponse
	}

	codes := make(map[string]string, len(payload.SupportedCodes))
	for _, pair := range payload.SupportedCodes {
		if len(pair) < 2 {
			continue
		}
		codes[pair[0]] = pair[1]
	}
	return codes, nil
}

// DefaultCurrencies returns the built-in list of common currencies.
func DefaultCurrencies() map[string]string {
	out := make(map[string]string, len(defaultCurrencyNames))
	for code, name := range defaultCurrencyNames {
		out[code] = name
	}
	return out
}

// Symbol returns the display symbol for a currency code, or the code
// itself when no symbol is known.
func Symbol(code string) string {
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code
}

var defaultCurrencyNames = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound Sterling",
	"JPY": "Japanese Yen",
	"AUD": "Australian Dollar",
	"CAD": "Canadian Dollar",
	"CHF": "Swiss Franc",
	"CNY": "Chinese Yuan",
	"SEK": "Swedish Krona",
	"NZD": "New Zealand Dollar",
	"MXN": "Mexican Peso",
	"SGD": "Singapore Dollar",
	"HKD": "Hong Kong Dollar",
	"NOK": "Norwegian Krone",
	"TRY": "Turkish Lira",
	"RUB": "Russian Ruble",
	"INR": "Indian Rupee",
	"BRL": "Brazilian Real",
	"ZAR": "South African Rand",
	"KRW": "South Korean Won",
	"DKK": "Danish Krone",
	"PLN": "Polish Zloty",
	"TWD": "Taiwan New Dollar",
	"THB": "Thai Baht",
	"MYR": "Malaysian Ringgit",
	"IDR": "Indonesian Rupiah",
	"CZK": "Czech Republic Koruna",
	"HUF": "Hungarian Forint",
	"ILS": "Israeli New Sheqel",
	"CLP": "Chilean Peso",
	"PHP": "Philippine Peso",
	"AED": "UAE Dirham",
	"COP": "Colombian Peso",
	"SAR": "Saudi Riyal",
	"RON": "Romanian Leu",
	"BGN": "Bulgarian Lev",
	"HRK": "Croatian Kuna",
	"ISK": "Icelandic Krona",
	"UAH": "Ukrainian Hryvnia",
}

var currencySymbols = map[string]string{
	"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥", "INR": "₹",
	"CNY": "¥", "KRW": "₩", "RUB": "₽", "BRL": "R$", "CAD": "C$",
	"AUD": "A$", "CHF": "CHF", "SEK": "kr", "NOK": "kr", "DKK": "kr",
	"PLN": "zł", "CZK": "Kč", "HUF": "Ft", "TRY": "₺", "ILS": "₪",
	"THB": "฿", "MYR": "RM", "SGD": "S$", "HKD": "HK$", "NZD": "NZ$",
	"ZAR": "R", "MXN": "$", "AED": "د.إ", "SAR": "﷼",
}
