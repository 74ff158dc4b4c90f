// Currency endpoints: the supported code list and conversion.
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cofferhq/coffer/internal/rates"
)

type currencyCodesResponse struct {
	Currencies   map[string]string `json:"currencies"`
	PopularPairs []rates.Pair      `json:"popular_pairs"`
}

// handleCurrencyCodes is open: the code list is public data and the
// client falls back to a built-in list when the upstream is unreachable.
func (s *Server) handleCurrencyCodes(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, currencyCodesResponse{
		Currencies:   s.rates.Currencies(r.Context()),
		PopularPairs: rates.PopularPairs(),
	})
}

type convertRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
}

type convertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      float64         `json:"rate"`
	Converted decimal.Decimal `json:"converted"`
	Symbol    string          `json:"symbol"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !s.decode(w, r, &req) {
		return
	}

	var problems []string
	if req.Amount.IsNegative() {
		problems = append(problems, "Amount must not be negative")
	}
	from := strings.ToUpper(strings.TrimSpace(req.From))
	to := strings.ToUpper(strings.TrimSpace(req.To))
	if from == "" || to == "" {
		problems = append(problems, "Both from and to currencies are required")
	}
	if len(problems) > 0 {
		s.failValidation(w, problems)
		return
	}

	converted, rate, err := s.rates.Convert(r.Context(), req.Amount, from, to)
	if errors.Is(err, rates.ErrUnknownCurrency) {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.fail(w, http.StatusBadGateway, "exchange rate service unavailable")
		return
	}

	s.respond(w, http.StatusOK, convertResponse{
		Amount:    req.Amount,
		From:      from,
		To:        to,
		Rate:      rate,
		Converted: converted,
		Symbol:    rates.Symbol(to),
	})
}
