package entity

// Mandant rechtliche Einheit, unter der Verträge geführt werden.
type Mandant struct {
	ID          string
	Code        string
	Name        string
	Description string
	IsActive    bool
	Audit
}
