package entity

// Currency Währung (ISO-Code, Symbol).
type Currency struct {
	ID       string
	Code     string // z.B. EUR
	Name     string
	Symbol   string // z.B. €
	IsActive bool
	Audit
}
