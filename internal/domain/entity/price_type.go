package entity

// PriceType Preisart (Arbeitspreis, Grundpreis, Netznutzung, ...).
type PriceType struct {
	ID          string
	Code        string
	Name        string
	Description string
	DefaultUnit string // z.B. kWh
	IsActive    bool
	Audit
}
