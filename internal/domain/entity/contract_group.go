package entity

// ContractGroup Vertragsgruppe zur Kategorisierung (z.B. Sonderkunden).
type ContractGroup struct {
	ID          string
	Code        string
	Name        string
	Description string
	IsActive    bool
	Audit
}
