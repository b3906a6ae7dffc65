package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hogar-conectado/internal/money"
	"hogar-conectado/internal/pricing"
	"hogar-conectado/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newCotizadorRouter wires the handler with the public cotizador routes only.
// The stateless endpoints never touch the repositories, so they stay nil.
func newCotizadorRouter(t *testing.T) *chi.Mux {
	t.Helper()

	svc := service.NewQuotationService(
		nil, nil, nil,
		pricing.NewCalculator(pricing.DefaultFactors()),
		money.NewARSFormatter(),
		10,
	)
	handler := NewQuotationHandler(svc, money.NewARSFormatter(), zap.NewNop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router, func(next http.Handler) http.Handler { return next })
	return router
}

func postJSON(t *testing.T, router http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCalculate_ReturnsFormattedPrices(t *testing.T) {
	router := newCotizadorRouter(t)

	w := postJSON(t, router, "/api/cotizador/calcular", map[string]interface{}{
		"base_price":     100000,
		"markup_percent": 10,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp QuoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling response: %v", err)
	}

	if resp.Cash != 110000 {
		t.Errorf("cash = %v, want 110000", resp.Cash)
	}
	if resp.CashFormatted != "$110.000" {
		t.Errorf("cash_formatted = %q, want %q", resp.CashFormatted, "$110.000")
	}
	if resp.ThreeFormatted != "$41.426" {
		t.Errorf("three_installment_formatted = %q, want %q", resp.ThreeFormatted, "$41.426")
	}
	if resp.SixFormatted != "$22.253" {
		t.Errorf("six_installment_formatted = %q, want %q", resp.SixFormatted, "$22.253")
	}
}

func TestCalculate_RejectsNonPositiveBasePrice(t *testing.T) {
	router := newCotizadorRouter(t)

	w := postJSON(t, router, "/api/cotizador/calcular", map[string]interface{}{
		"base_price": -500,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
}

func TestCalculate_RejectsMissingBasePrice(t *testing.T) {
	router := newCotizadorRouter(t)

	w := postJSON(t, router, "/api/cotizador/calcular", map[string]interface{}{
		"markup_percent": 10,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
}

func TestQuoteMessage_RendersTemplate(t *testing.T) {
	router := newCotizadorRouter(t)

	w := postJSON(t, router, "/api/cotizador/mensaje", map[string]interface{}{
		"category":       "Heladeras",
		"brand":          "Samsung",
		"model":          "RT38K",
		"detail":         "No Frost 382L",
		"base_price":     100000,
		"markup_percent": 10,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string        `json:"message"`
		Quote   QuoteResponse `json:"quote"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling response: %v", err)
	}

	want := "🏠 *Hogar Conectado* \n" +
		"\n" +
		"*Cotización*\n" +
		"📦 HELADERAS\n" +
		"🏷️ SAMSUNG - RT38K\n" +
		"✏️ NO FROST 382L\n" +
		"\n" +
		"💰 *Precios:*\n" +
		"💵 Contado: *$110.000*\n" +
		"🗓️ 3 Cuotas: *$41.426* c/u\n" +
		"🗓️ 6 Cuotas: *$22.253* c/u\n" +
		"\n" +
		"📞 ¡Consultá por stock y disponibilidad!"

	if resp.Message != want {
		t.Errorf("message mismatch:\ngot:\n%s\nwant:\n%s", resp.Message, want)
	}
	if resp.Quote.Cash != 110000 {
		t.Errorf("quote.cash = %v, want 110000", resp.Quote.Cash)
	}
}

func TestStockInquiryMessage(t *testing.T) {
	router := newCotizadorRouter(t)

	w := postJSON(t, router, "/api/consultas-stock/mensaje", map[string]interface{}{
		"product_id": "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		"category":   "Heladeras",
		"brand":      "Samsung",
		"model":      "RT38K",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling response: %v", err)
	}

	want := "Me confirmas si hay stock de:\n" +
		"🆔 ID: 3f2504e0-4f89-41d3-9a0c-0305e82c3301\n" +
		"📦 Categoría: Heladeras\n" +
		"🏷️ Marca: Samsung\n" +
		"📱 Modelo: RT38K"

	if resp["message"] != want {
		t.Errorf("message mismatch:\ngot:\n%s\nwant:\n%s", resp["message"], want)
	}
}

func TestStockInquiryMessage_RequiresIdentityFields(t *testing.T) {
	router := newCotizadorRouter(t)

	w := postJSON(t, router, "/api/consultas-stock/mensaje", map[string]interface{}{
		"category": "Heladeras",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
}
