package entity

import "time"

// Audit gemeinsame Felder aller Entitäten: wer hat wann angelegt bzw. zuletzt geändert.
type Audit struct {
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
}

// Touch setzt die Änderungsfelder auf jetzt/actor.
func (a *Audit) Touch(actor string, now time.Time) {
	a.UpdatedAt = now
	a.UpdatedBy = actor
}

// Stamp setzt Anlage- und Änderungsfelder für neue Datensätze.
func (a *Audit) Stamp(actor string, now time.Time) {
	a.CreatedAt = now
	a.CreatedBy = actor
	a.UpdatedAt = now
	a.UpdatedBy = actor
}
