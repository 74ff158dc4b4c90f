// Tests for currency listings and symbols.
package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCurrencies_BuiltInWithoutKey(t *testing.T) {
	c := NewClient(Config{}, nil)

	codes := c.Currencies(context.Background())
	if len(codes) != 39 {
		t.Errorf("expected 39 built-in currencies, got %d", len(codes))
	}
	if codes["USD"] != "US Dollar" {
		t.Errorf("expected USD name, got %q", codes["USD"])
	}
	if codes["UAH"] != "Ukrainian Hryvnia" {
		t.Errorf("expected UAH name, got %q", codes["UAH"])
	}
}

func TestCurrencies_KeyedEndpoint(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"supported_codes":[["AED","UAE Dirham"],["AFN","Afghan Afghani"]]}`))
	}))
	defer ts.Close()

	c := NewClient(Config{APIKey: "k123", KeyedURL: ts.URL}, nil)
	codes := c.Currencies(context.Background())

	if gotPath != "/k123/codes" {
		t.Errorf("expected path /k123/codes, got %s", gotPath)
	}
	if len(codes) != 2 {
		t.Errorf("expected 2 codes, got %d", len(codes))
	}
	if codes["AFN"] != "Afghan Afghani" {
		t.Errorf("expected AFN name, got %q", codes["AFN"])
	}
}

func TestCurrencies_FallsBackOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(Config{APIKey: "k123", KeyedURL: ts.URL}, nil)
	codes := c.Currencies(context.Background())
	if len(codes) != 39 {
		t.Errorf("expected built-in list on upstream failure, got %d codes", len(codes))
	}
}

func TestCurrencies_FallsBackOnMissingCodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer ts.Close()

	c := NewClient(Config{APIKey: "k123", KeyedURL: ts.URL}, nil)
	codes := c.Currencies(context.Background())
	if len(codes) != 39 {
		t.Errorf("expected built-in list for a payload without codes, got %d", len(codes))
	}
}

func TestSymbol(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"USD", "$"},
		{"EUR", "€"},
		{"JPY", "¥"},
		{"CHF", "CHF"},
		{"XXX", "XXX"}, // unknown codes come back verbatim
	}
	for _, tc := range cases {
		if got := Symbol(tc.code); got != tc.want {
			t.Errorf("Symbol(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestPopularPairs(t *testing.T) {
	pairs := PopularPairs()
	if len(pairs) != 6 {
		t.Fatalf("expected 6 pairs, got %d", len(pairs))
	}
	if pairs[0] != (Pair{From: "USD", To: "EUR"}) {
		t.Errorf("expected USD/EUR first, got %+v", pairs[0])
	}

	// Callers get their own slice
	pairs[0] = Pair{From: "AAA", To: "BBB"}
	if PopularPairs()[0].From != "USD" {
		t.Error("caller mutation leaked into the package list")
	}
}
