package entity

// Customer Kunde/EVU.
type Customer struct {
	ID             string
	CustomerNumber string
	Name           string
	Address        string
	PostalCode     string
	City           string
	Email          string
	Phone          string
	IsActive       bool
	Audit
}
