package usecase_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertragswerk/contracts-api/internal/application/dto"
	"github.com/vertragswerk/contracts-api/internal/application/usecase"
	"github.com/vertragswerk/contracts-api/internal/domain"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test-Helfer
// ──────────────────────────────────────────────────────────────────────────────

const testActor = "m.mustermann"

// buildUseCase baut den Anwendungsfall über einem frisch geseedeten Store.
func buildUseCase(t *testing.T, rules usecase.ValidationRules) *usecase.ContractUseCase {
	t.Helper()
	store := memory.NewStore()
	store.Seed()

	contracts := memory.NewContractRepository(store)
	validator := usecase.NewContractValidator(
		contracts,
		memory.NewCustomerRepository(store),
		memory.NewMandantRepository(store),
		memory.NewContractGroupRepository(store),
		memory.NewCurrencyRepository(store),
		memory.NewPriceTypeRepository(store),
		rules,
	)
	return usecase.NewContractUseCase(contracts, validator, usecase.PageDefaults{Default: 25, Max: 200})
}

// validInput liefert eine vollständige, gültige Vertragseingabe.
func validInput(number string) dto.ContractInput {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return dto.ContractInput{
		ContractNumber:     number,
		CustomerID:         memory.SeedCustomerEVU,
		MandantID:          memory.SeedMandant1,
		ContractGroupID:    memory.SeedGroupSK,
		CurrencyID:         memory.SeedCurrencyEUR,
		ContractType:       int(entity.TypeSale),
		StartDate:          start,
		IsUnlimited:        true,
		NoticePeriodMonths: 3,
		BillingStartDate:   start,
		ResponsibleSales:   "m.mustermann",
	}
}

func fieldMessages(t *testing.T, err error, field string) []string {
	t.Helper()
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "Fehler muss ein ValidationError sein, war: %v", err)
	return ve.Fields[field]
}

// ──────────────────────────────────────────────────────────────────────────────
// Anlegen
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_LegtVertragMitDefaultsAn(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	out, err := uc.Create(testActor, validInput("V-2024-001"))
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "V-2024-001", out.ContractNumber)
	assert.Equal(t, int(entity.StatusActive), out.Status, "ohne Status-Angabe gilt Aktiv")
	assert.Equal(t, "Aktiv", out.StatusDisplay)
	assert.Equal(t, "Verkauf", out.ContractTypeDisplay)
	assert.Equal(t, "EVU Musterkunde GmbH", out.CustomerName)
	assert.Equal(t, "EUR", out.CurrencyCode)
	assert.Equal(t, testActor, out.CreatedBy)
	assert.Equal(t, testActor, out.UpdatedBy)
}

func TestCreate_ExpliziterStatusWirdUebernommen(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	in := validInput("V-2024-002")
	status := int(entity.StatusInNegotiation)
	in.Status = &status

	out, err := uc.Create(testActor, in)
	require.NoError(t, err)
	assert.Equal(t, status, out.Status)
	assert.Equal(t, "In Verhandlung", out.StatusDisplay)
}

func TestCreate_PflichtfelderFehlen(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	_, err := uc.Create(testActor, dto.ContractInput{})
	require.Error(t, err)

	assert.Contains(t, fieldMessages(t, err, "contractNumber"), "Vertragsnummer ist erforderlich")
	assert.Contains(t, fieldMessages(t, err, "customerId"), "Kunde ist erforderlich")
	assert.Contains(t, fieldMessages(t, err, "mandantId"), "Mandant ist erforderlich")
	assert.Contains(t, fieldMessages(t, err, "contractGroupId"), "Vertragsgruppe ist erforderlich")
	assert.Contains(t, fieldMessages(t, err, "currencyId"), "Währung ist erforderlich")
	assert.Contains(t, fieldMessages(t, err, "startDate"), "Vertragsbeginn ist erforderlich")
}

func TestCreate_UnbekannteReferenzen(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	in := validInput("V-2024-003")
	in.CustomerID = "99999999-9999-9999-9999-999999999999"
	in.CurrencyID = "99999999-9999-9999-9999-999999999998"

	_, err := uc.Create(testActor, in)
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "customerId"), "Kunde nicht gefunden")
	assert.Contains(t, fieldMessages(t, err, "currencyId"), "Währung nicht gefunden")
}

func TestCreate_DoppelteVertragsnummer(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	_, err := uc.Create(testActor, validInput("V-2024-010"))
	require.NoError(t, err)

	_, err = uc.Create(testActor, validInput("V-2024-010"))
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "contractNumber"), "Vertragsnummer V-2024-010 existiert bereits")
}

func TestCreate_KuendigungsfristAusserhalbDerGrenzen(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	in := validInput("V-2024-011")
	in.NoticePeriodMonths = 121

	_, err := uc.Create(testActor, in)
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "noticePeriodMonths"), "Kündigungsfrist muss zwischen 0 und 120 Monaten liegen")
}

func TestCreate_DateRangeRegelNurWennAktiviert(t *testing.T) {
	in := validInput("V-2024-012")
	in.IsUnlimited = false
	in.EndDate = nil

	// Regel aus: befristet ohne Ende ist erlaubt (Verhalten des Altbestands).
	uc := buildUseCase(t, usecase.ValidationRules{})
	_, err := uc.Create(testActor, in)
	require.NoError(t, err)

	// Regel an: Ende ist Pflicht.
	uc = buildUseCase(t, usecase.ValidationRules{DateRange: true})
	_, err = uc.Create(testActor, in)
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "endDate"), "Vertragsende ist bei befristeten Verträgen erforderlich")

	// Regel an: Ende vor Beginn wird abgelehnt.
	ende := in.StartDate.AddDate(0, -1, 0)
	in.EndDate = &ende
	_, err = uc.Create(testActor, in)
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "endDate"), "Vertragsende muss nach dem Vertragsbeginn liegen")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lesen
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_UnbekannteIDLiefertNil(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	out, err := uc.GetByID("99999999-9999-9999-9999-999999999999")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestGetByID_UnbefristetUnterdruecktEnddatum(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	in := validInput("V-2024-020")
	ende := in.StartDate.AddDate(2, 0, 0)
	in.EndDate = &ende // gespeichert, aber wegen IsUnlimited nicht ausgegeben
	created, err := uc.Create(testActor, in)
	require.NoError(t, err)

	out, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.IsUnlimited)
	assert.Nil(t, out.EndDate, "bei unbefristeten Verträgen wird kein Enddatum ausgegeben")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listen
// ──────────────────────────────────────────────────────────────────────────────

func TestList_SuchtUndFiltert(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	_, err := uc.Create(testActor, validInput("V-2024-100"))
	require.NoError(t, err)

	in := validInput("SW-2024-001")
	in.CustomerID = memory.SeedCustomerStadt
	beendet := int(entity.StatusEnded)
	in.Status = &beendet
	_, err = uc.Create(testActor, in)
	require.NoError(t, err)

	// Suche über die Vertragsnummer.
	items, total, err := uc.List("SW-2024", nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "SW-2024-001", items[0].ContractNumber)

	// Suche über den Kundennamen.
	items, total, err = uc.List("Stadtwerke", nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Stadtwerke Beispielstadt AG", items[0].CustomerName)

	// Exakter Statusfilter.
	status := entity.StatusEnded
	items, total, err = uc.List("", &status, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, int(entity.StatusEnded), items[0].Status)
}

func TestList_PaginiertUndOrdnetNeuesteZuerst(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	for i := 1; i <= 5; i++ {
		_, err := uc.Create(testActor, validInput(fmt.Sprintf("V-2024-%03d", i)))
		require.NoError(t, err)
	}

	items, total, err := uc.List("", nil, dto.PageRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total, "totalCount zählt vor der Paginierung")
	require.Len(t, items, 2)

	// Stabile Gesamtordnung ohne Dubletten über alle Seiten.
	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		pageItems, _, err := uc.List("", nil, dto.PageRequest{Page: page, PageSize: 2})
		require.NoError(t, err)
		for _, it := range pageItems {
			assert.False(t, seen[it.ID], "Vertrag %s darf nur auf einer Seite erscheinen", it.ContractNumber)
			seen[it.ID] = true
		}
	}
	assert.Len(t, seen, 5)

	// Seite jenseits des Endes: leer, aber mit korrektem totalCount.
	items, total, err = uc.List("", nil, dto.PageRequest{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aktualisieren
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ErsetztFelderUndStempeltAkteur(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	created, err := uc.Create(testActor, validInput("V-2024-200"))
	require.NoError(t, err)

	in := validInput("V-2024-200")
	in.Notes = "Konditionen nachverhandelt"
	gekuendigt := int(entity.StatusTerminated)
	in.Status = &gekuendigt

	out, err := uc.Update("a.admin", created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Konditionen nachverhandelt", out.Notes)
	assert.Equal(t, "Gekündigt", out.StatusDisplay)
	assert.Equal(t, testActor, out.CreatedBy, "CreatedBy bleibt unverändert")
	assert.Equal(t, "a.admin", out.UpdatedBy)
}

func TestUpdate_UnbekannteIDLiefertNotFound(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	_, err := uc.Update(testActor, "99999999-9999-9999-9999-999999999999", validInput("V-2024-201"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_NummernwechselAufVergebeneNummer(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	_, err := uc.Create(testActor, validInput("V-2024-210"))
	require.NoError(t, err)
	second, err := uc.Create(testActor, validInput("V-2024-211"))
	require.NoError(t, err)

	in := validInput("V-2024-210")
	_, err = uc.Update(testActor, second.ID, in)
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "contractNumber"), "Vertragsnummer V-2024-210 existiert bereits")

	// Die eigene Nummer unverändert zu lassen ist kein Duplikat.
	in = validInput("V-2024-211")
	_, err = uc.Update(testActor, second.ID, in)
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Löschen
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_EntferntVertragMitAbhaengigen(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	created, err := uc.Create(testActor, validInput("V-2024-300"))
	require.NoError(t, err)

	_, err = uc.SetPrices(testActor, created.ID, []dto.ContractPriceInput{{
		PriceTypeID: memory.SeedPriceTypeAP,
		ValidFrom:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromFloat(0.2890),
		Unit:        "kWh",
	}})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))

	out, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, out)

	assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Preise und Vertragskunden
// ──────────────────────────────────────────────────────────────────────────────

func TestSetPrices_ErsetztKomplett(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	created, err := uc.Create(testActor, validInput("V-2024-400"))
	require.NoError(t, err)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err := uc.SetPrices(testActor, created.ID, []dto.ContractPriceInput{
		{PriceTypeID: memory.SeedPriceTypeAP, ValidFrom: from, Amount: decimal.NewFromFloat(0.2890), Unit: "kWh"},
		{PriceTypeID: memory.SeedPriceTypeGP, ValidFrom: from, Amount: decimal.NewFromFloat(12.50), Unit: "Monat"},
	})
	require.NoError(t, err)
	require.Len(t, out.Prices, 2)

	// Zweiter Aufruf ersetzt statt anzuhängen.
	out, err = uc.SetPrices(testActor, created.ID, []dto.ContractPriceInput{
		{PriceTypeID: memory.SeedPriceTypeAP, ValidFrom: from, Amount: decimal.NewFromFloat(0.3110), Unit: "kWh"},
	})
	require.NoError(t, err)
	require.Len(t, out.Prices, 1)
	assert.True(t, decimal.NewFromFloat(0.3110).Equal(out.Prices[0].Amount))
}

func TestSetPrices_UnbekanntePreisartUndNegativerBetrag(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	created, err := uc.Create(testActor, validInput("V-2024-401"))
	require.NoError(t, err)

	_, err = uc.SetPrices(testActor, created.ID, []dto.ContractPriceInput{{
		PriceTypeID: "99999999-9999-9999-9999-999999999999",
		ValidFrom:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(-1),
	}})
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "prices[0].priceTypeId"), "Preisart nicht gefunden")
	assert.Contains(t, fieldMessages(t, err, "prices[0].amount"), "Betrag darf nicht negativ sein")
}

func TestSetPrices_UeberlappungNurMitRegel(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	overlapping := []dto.ContractPriceInput{
		{PriceTypeID: memory.SeedPriceTypeAP, ValidFrom: from, ValidTo: &to, Amount: decimal.NewFromFloat(0.28)},
		{PriceTypeID: memory.SeedPriceTypeAP, ValidFrom: from.AddDate(0, 3, 0), Amount: decimal.NewFromFloat(0.31)},
	}

	// Regel aus: Überlappung wird durchgelassen (Verhalten des Altbestands).
	uc := buildUseCase(t, usecase.ValidationRules{})
	created, err := uc.Create(testActor, validInput("V-2024-402"))
	require.NoError(t, err)
	_, err = uc.SetPrices(testActor, created.ID, overlapping)
	require.NoError(t, err)

	// Regel an: Überlappung derselben Preisart wird abgelehnt.
	uc = buildUseCase(t, usecase.ValidationRules{PriceOverlap: true})
	created, err = uc.Create(testActor, validInput("V-2024-403"))
	require.NoError(t, err)
	_, err = uc.SetPrices(testActor, created.ID, overlapping)
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "prices[1].validFrom"),
		"Gültigkeitszeitraum überschneidet sich mit einem Preis derselben Preisart")
}

func TestSetContractCustomers_ErsetztUndValidiert(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	created, err := uc.Create(testActor, validInput("V-2024-410"))
	require.NoError(t, err)

	out, err := uc.SetContractCustomers(testActor, created.ID, []dto.ContractCustomerInput{{
		CustomerID:           memory.SeedCustomerStadt,
		CustomerNumber:       "K-67890",
		Role:                 int(entity.RoleBoth),
		AdvancePaymentAmount: decimal.NewFromInt(150),
		AdvancePaymentCycle:  1,
	}})
	require.NoError(t, err)
	require.Len(t, out.ContractCustomers, 1)
	assert.Equal(t, "Beides", out.ContractCustomers[0].RoleDisplay)

	_, err = uc.SetContractCustomers(testActor, created.ID, []dto.ContractCustomerInput{{
		CustomerID:          memory.SeedCustomerStadt,
		Role:                7,
		AdvancePaymentCycle: 0,
	}})
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "contractCustomers[0].role"), "Unbekannte Rolle 7")
	assert.Contains(t, fieldMessages(t, err, "contractCustomers[0].advancePaymentCycle"), "Abschlagszyklus muss mindestens 1 Monat sein")
}

func TestCreate_LaengenZaehlenZeichenNichtBytes(t *testing.T) {
	uc := buildUseCase(t, usecase.ValidationRules{})

	// 2000 Umlaute sind 4000 Bytes, aber genau am Limit erlaubt.
	in := validInput("V-2024-500")
	in.Notes = strings.Repeat("ü", 2000)
	_, err := uc.Create(testActor, in)
	assert.NoError(t, err, "2000 Zeichen Bemerkungen müssen angenommen werden")

	in = validInput("V-2024-501")
	in.Notes = strings.Repeat("ü", 2001)
	_, err = uc.Create(testActor, in)
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "notes"), "Bemerkungen dürfen maximal 2000 Zeichen lang sein")

	in = validInput(strings.Repeat("Ä", 50))
	in.Notes = ""
	_, err = uc.Create(testActor, in)
	assert.NoError(t, err, "50 Zeichen Vertragsnummer müssen angenommen werden")

	in = validInput(strings.Repeat("Ä", 51))
	_, err = uc.Create(testActor, in)
	require.Error(t, err)
	assert.Contains(t, fieldMessages(t, err, "contractNumber"), "Vertragsnummer darf maximal 50 Zeichen lang sein")

	in = validInput("V-2024-502")
	in.ResponsibleSales = strings.Repeat("ö", 100)
	_, err = uc.Create(testActor, in)
	assert.NoError(t, err, "100 Zeichen Verantwortliche müssen angenommen werden")
}
