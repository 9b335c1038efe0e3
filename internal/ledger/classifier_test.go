package ledger

import "testing"

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AB*AMAZON*MARKETPLACE", "AMAZONMARKETPLACE"},
		{"PAG*RestauranteDaMaria", "RESTAURANTEDAMARIA"},
		{"  ifood *IFD  ", "IFOOD IFD"},
		{"POSTO SHELL 1234", "POSTO SHELL 1234"},
		{"ÁGUA & LUZ", "GUA  LUZ"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeMerchant(tt.in); got != tt.want {
			t.Errorf("NormalizeMerchant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	rules := []Rule{
		{Keyword: "IFOOD", Subcategory: "Alimentação"},
		{Keyword: "AMAZON", Subcategory: "Varejo Online"},
		{Keyword: "AMAZON PRIME", Subcategory: "Assinaturas"},
		{Keyword: "UBER", Subcategory: "Transporte"},
	}

	tests := []struct {
		name     string
		merchant string
		want     string
	}{
		{"prefixed processor tag", "AB*AMAZON*MARKETPLACE", "Varejo Online"},
		{"plain keyword", "UBER TRIP SAO PAULO", "Transporte"},
		{"longest keyword wins", "AMAZON PRIME BR", "Assinaturas"},
		{"lowercase input", "ifood *restaurante", "Alimentação"},
		{"no match falls back", "FARMACIA CENTRAL", DefaultSubcategory},
		{"empty input falls back", "", DefaultSubcategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.merchant, rules); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.merchant, got, tt.want)
			}
		})
	}
}

func TestClassifyEmptyRules(t *testing.T) {
	if got := Classify("AMAZON", nil); got != DefaultSubcategory {
		t.Errorf("Classify with no rules = %q, want %q", got, DefaultSubcategory)
	}
}

func TestClassifyTieGoesToFirstRule(t *testing.T) {
	rules := []Rule{
		{Keyword: "MERCADO", Subcategory: "Supermercado"},
		{Keyword: "PADARIA", Subcategory: "Padaria"}, // same length as MERCADO
	}
	if got := Classify("MERCADO PADARIA CENTRAL", rules); got != "Supermercado" {
		t.Errorf("tie-break = %q, want first rule's %q", got, "Supermercado")
	}
}
