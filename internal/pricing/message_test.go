package pricing

import (
	"strings"
	"testing"

	"hogar-conectado/internal/money"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBuildQuoteMessage_FullTemplate(t *testing.T) {
	formatter := money.NewARSFormatter()
	input := QuoteInput{
		Category: "Heladeras",
		Brand:    "Samsung",
		Model:    "RT38K",
		Detail:   "No Frost 382L",
	}
	quote := Quote{
		Cash:                 110000,
		ThreeInstallmentUnit: 41426,
		SixInstallmentUnit:   22253,
	}

	got := BuildQuoteMessage(input, quote, formatter)

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

	if got != want {
		t.Errorf("BuildQuoteMessage mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildQuoteMessage_BlankDetailOmitsLine(t *testing.T) {
	formatter := money.NewARSFormatter()
	quote := Quote{Cash: 50000, ThreeInstallmentUnit: 18830, SixInstallmentUnit: 10115}

	for _, detail := range []string{"", "   ", "\t\n"} {
		input := QuoteInput{Category: "Televisores", Brand: "LG", Model: "OLED55", Detail: detail}
		got := BuildQuoteMessage(input, quote, formatter)

		if strings.Contains(got, "✏️") {
			t.Errorf("detail %q: message should not contain a detail line:\n%s", detail, got)
		}
	}
}

// Feature: quotation-platform, Property 5: Quote messages contain exactly one detail line when detail is set
// Validates: Requirements 3.2
func TestProperty_DetailLineAppearsOnceWhenSet(t *testing.T) {
	properties := gopter.NewProperties(nil)
	formatter := money.NewARSFormatter()
	quote := Quote{Cash: 75000, ThreeInstallmentUnit: 28245, SixInstallmentUnit: 15172}

	properties.Property("non-blank detail renders exactly one detail line", prop.ForAll(
		func(detail string) bool {
			input := QuoteInput{Category: "Lavarropas", Brand: "Drean", Model: "Next 8.12", Detail: detail}
			got := BuildQuoteMessage(input, quote, formatter)

			count := strings.Count(got, "✏️")
			if strings.TrimSpace(detail) == "" {
				return count == 0
			}
			return count == 1
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Feature: quotation-platform, Property 6: Message rendering is deterministic
// Validates: Requirements 3.4
func TestProperty_QuoteMessageIsDeterministic(t *testing.T) {
	properties := gopter.NewProperties(nil)
	formatter := money.NewARSFormatter()

	properties.Property("equal inputs render byte-identical messages", prop.ForAll(
		func(category, brand, model string, cash float64) bool {
			input := QuoteInput{Category: category, Brand: brand, Model: model}
			quote := Quote{Cash: cash, ThreeInstallmentUnit: cash / 3, SixInstallmentUnit: cash / 6}

			return BuildQuoteMessage(input, quote, formatter) == BuildQuoteMessage(input, quote, formatter)
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Float64Range(1, 10_000_000),
	))

	properties.TestingRun(t)
}

func TestBuildStockInquiryMessage_WithProductID(t *testing.T) {
	input := StockInquiryInput{
		ProductID: "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		Category:  "Heladeras",
		Brand:     "Samsung",
		Model:     "RT38K",
	}

	got := BuildStockInquiryMessage(input)

	want := "Me confirmas si hay stock de:\n" +
		"🆔 ID: 3f2504e0-4f89-41d3-9a0c-0305e82c3301\n" +
		"📦 Categoría: Heladeras\n" +
		"🏷️ Marca: Samsung\n" +
		"📱 Modelo: RT38K"

	if got != want {
		t.Errorf("BuildStockInquiryMessage mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildStockInquiryMessage_WithoutProductID(t *testing.T) {
	input := StockInquiryInput{
		Category: "Televisores",
		Brand:    "LG",
		Model:    "OLED55",
	}

	got := BuildStockInquiryMessage(input)

	if strings.Contains(got, "🆔") {
		t.Errorf("message should not contain an ID line:\n%s", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("message should not end with a newline:\n%q", got)
	}
	if !strings.HasSuffix(got, "📱 Modelo: OLED55") {
		t.Errorf("message should end with the model line:\n%s", got)
	}
}
