package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vertragswerk/contracts-api/internal/domain"
)

func TestValidationError_ErrOrNil(t *testing.T) {
	ve := domain.NewValidationError()
	assert.NoError(t, ve.ErrOrNil())

	ve.Add("contractNumber", "Vertragsnummer ist erforderlich")
	assert.Error(t, ve.ErrOrNil())
	assert.True(t, ve.HasErrors())
}

func TestValidationError_SammeltMehrereMeldungenProFeld(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("endDate", "Vertragsende ist bei befristeten Verträgen erforderlich")
	ve.Add("endDate", "Vertragsende muss nach dem Vertragsbeginn liegen")

	assert.Len(t, ve.Fields["endDate"], 2)
}

// Die Fehlermeldung ist über Läufe hinweg stabil (Felder sortiert).
func TestValidationError_DeterministischeMeldung(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("mandantId", "Mandant ist erforderlich")
	ve.Add("customerId", "Kunde ist erforderlich")

	assert.Equal(t, "customerId: Kunde ist erforderlich; mandantId: Mandant ist erforderlich", ve.Error())
}

func TestAsValidationError(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("notes", "Bemerkungen dürfen maximal 2000 Zeichen lang sein")

	got, ok := domain.AsValidationError(ve.ErrOrNil())
	assert.True(t, ok)
	assert.Same(t, ve, got)

	_, ok = domain.AsValidationError(domain.ErrNotFound)
	assert.False(t, ok)
}
