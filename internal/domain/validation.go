package domain

import (
	"sort"
	"strings"
)

// ValidationError sammelt feldbezogene Prüffehler (Feld -> Meldungen).
// Wird als Wert durchgereicht und an der HTTP-Grenze auf 400 abgebildet;
// kein Kontrollfluss über panics.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError leerer Sammler.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add hängt eine Meldung an ein Feld an.
func (v *ValidationError) Add(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

// HasErrors meldet, ob mindestens eine Prüfung fehlgeschlagen ist.
func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// ErrOrNil gibt den Sammler als error zurück, oder nil wenn alles sauber ist.
func (v *ValidationError) ErrOrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

// Error fasst alle Meldungen deterministisch (Felder sortiert) zusammen.
func (v *ValidationError) Error() string {
	fields := make([]string, 0, len(v.Fields))
	for f := range v.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(v.Fields[f], ", "))
	}
	return b.String()
}

// AsValidationError entpackt einen error zu *ValidationError, falls er einer ist.
func AsValidationError(err error) (*ValidationError, bool) {
	ve, ok := err.(*ValidationError)
	return ve, ok
}
