package dto

// LookupItem Eintrag für Dropdowns: Display = "CODE - Name".
type LookupItem struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Display string `json:"display"`
}

// CurrencyLookupItem Währungseintrag, zusätzlich mit Symbol.
type CurrencyLookupItem struct {
	LookupItem
	Symbol string `json:"symbol"`
}

// PriceTypeLookupItem Preisarteneintrag, zusätzlich mit Standard-Einheit.
type PriceTypeLookupItem struct {
	LookupItem
	DefaultUnit string `json:"defaultUnit"`
}

// EnumItem statischer Enum-Eintrag (Status, Vertragsart).
type EnumItem struct {
	Value   int    `json:"value"`
	Display string `json:"display"`
}
