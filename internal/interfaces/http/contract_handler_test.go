package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertragswerk/contracts-api/internal/application/dto"
	"github.com/vertragswerk/contracts-api/internal/application/usecase"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/infrastructure/erpxml"
	infraexcel "github.com/vertragswerk/contracts-api/internal/infrastructure/excel"
	"github.com/vertragswerk/contracts-api/internal/infrastructure/memory"
	infrapdf "github.com/vertragswerk/contracts-api/internal/infrastructure/pdf"
	apphttp "github.com/vertragswerk/contracts-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test-Helfer
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp verdrahtet die komplette API über einem geseedeten Memory-Store,
// so wie es cmd/api tut.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := memory.NewStore()
	store.Seed()

	contracts := memory.NewContractRepository(store)
	customers := memory.NewCustomerRepository(store)
	mandants := memory.NewMandantRepository(store)
	groups := memory.NewContractGroupRepository(store)
	currencies := memory.NewCurrencyRepository(store)
	priceTypes := memory.NewPriceTypeRepository(store)

	validator := usecase.NewContractValidator(
		contracts, customers, mandants, groups, currencies, priceTypes,
		usecase.ValidationRules{},
	)
	contractUC := usecase.NewContractUseCase(contracts, validator, usecase.PageDefaults{Default: 25, Max: 200})
	lookupUC := usecase.NewLookupUseCase(customers, mandants, groups, currencies, priceTypes)
	exportUC := usecase.NewExportUseCase(
		contracts,
		infrapdf.NewContractPDFGenerator(),
		infraexcel.NewContractExcelGenerator(),
		erpxml.NewContractXMLBuilder(),
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ContractUC: contractUC,
		LookupUC:   lookupUC,
		ExportUC:   exportUC,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func contractBody(number string) map[string]any {
	return map[string]any{
		"contractNumber":     number,
		"customerId":         memory.SeedCustomerEVU,
		"mandantId":          memory.SeedMandant1,
		"contractGroupId":    memory.SeedGroupSK,
		"currencyId":         memory.SeedCurrencyEUR,
		"contractType":       int(entity.TypeSale),
		"startDate":          "2024-01-01T00:00:00Z",
		"isUnlimited":        true,
		"noticePeriodMonths": 3,
		"billingStartDate":   "2024-01-01T00:00:00Z",
		"responsibleSales":   "m.mustermann",
	}
}

func createContract(t *testing.T, app *fiber.App, number string) dto.ContractResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/contracts", contractBody(number), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ContractResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verträge: CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestPostContract_Liefert201MitLocation(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/contracts", contractBody("V-2024-001"), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	out := decode[dto.ContractResponse](t, resp)
	assert.Equal(t, "V-2024-001", out.ContractNumber)
	assert.Equal(t, "EVU Musterkunde GmbH", out.CustomerName)
	assert.Equal(t, "Aktiv", out.StatusDisplay)
	assert.Equal(t, fmt.Sprintf("/api/contracts/%s", out.ID), resp.Header.Get("Location"))
	assert.Equal(t, "System", out.CreatedBy, "ohne Authentifizierung stempelt System")
}

func TestPostContract_ValidierungsfehlerMitFeldern(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/contracts", map[string]any{}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Fields["contractNumber"], "Vertragsnummer ist erforderlich")
	assert.Contains(t, out.Fields["customerId"], "Kunde ist erforderlich")
}

func TestPostContract_DoppelteNummerIst400(t *testing.T) {
	app := buildTestApp(t)
	createContract(t, app, "V-2024-002")

	resp := doJSON(t, app, http.MethodPost, "/api/contracts", contractBody("V-2024-002"), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, out.Fields["contractNumber"], "Vertragsnummer V-2024-002 existiert bereits")
}

func TestPostContract_XActorHeaderStempeltAkteur(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/contracts", contractBody("V-2024-003"),
		map[string]string{"X-Actor": "s.schmidt"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	out := decode[dto.ContractResponse](t, resp)
	assert.Equal(t, "s.schmidt", out.CreatedBy)
	assert.Equal(t, "s.schmidt", out.UpdatedBy)
}

func TestGetContract_UnbekannteIDIst404(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/contracts/99999999-9999-9999-9999-999999999999", nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", out.Code)
	assert.Equal(t, "Vertrag nicht gefunden", out.Message)
}

func TestPutContract_AktualisiertUndStempelt(t *testing.T) {
	app := buildTestApp(t)
	created := createContract(t, app, "V-2024-010")

	body := contractBody("V-2024-010")
	body["notes"] = "Preisanpassung zum 01.07."
	body["status"] = int(entity.StatusTerminated)

	resp := doJSON(t, app, http.MethodPut, "/api/contracts/"+created.ID, body,
		map[string]string{"X-Actor": "a.admin"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.ContractResponse](t, resp)
	assert.Equal(t, "Preisanpassung zum 01.07.", out.Notes)
	assert.Equal(t, "Gekündigt", out.StatusDisplay)
	assert.Equal(t, "a.admin", out.UpdatedBy)
	assert.Equal(t, "System", out.CreatedBy)
}

func TestDeleteContract_Liefert204UndDanach404(t *testing.T) {
	app := buildTestApp(t)
	created := createContract(t, app, "V-2024-020")

	resp := doJSON(t, app, http.MethodDelete, "/api/contracts/"+created.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/contracts/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/contracts/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verträge: Liste
// ──────────────────────────────────────────────────────────────────────────────

func TestListContracts_HeaderUndPaginierung(t *testing.T) {
	app := buildTestApp(t)
	for i := 1; i <= 3; i++ {
		createContract(t, app, fmt.Sprintf("V-2024-%03d", i))
	}

	resp := doJSON(t, app, http.MethodGet, "/api/contracts/?page=1&pageSize=2", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get("X-Total-Count"))
	assert.Equal(t, "1", resp.Header.Get("X-Page"))
	assert.Equal(t, "2", resp.Header.Get("X-Page-Size"))

	items := decode[[]dto.ContractResponse](t, resp)
	assert.Len(t, items, 2)
}

func TestListContracts_UngueltigerStatusIst400(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/contracts/?status=9", nil, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "unbekannter Status 9", out.Message)
}

func TestListContracts_SucheUeberKundennummer(t *testing.T) {
	app := buildTestApp(t)
	createContract(t, app, "V-2024-050")

	resp := doJSON(t, app, http.MethodGet, "/api/contracts/?search=K-12345", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := decode[[]dto.ContractResponse](t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, "K-12345", items[0].CustomerNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Preise und Vertragskunden
// ──────────────────────────────────────────────────────────────────────────────

func TestPutPrices_ErsetztListe(t *testing.T) {
	app := buildTestApp(t)
	created := createContract(t, app, "V-2024-060")

	prices := []map[string]any{{
		"priceTypeId": memory.SeedPriceTypeAP,
		"validFrom":   "2024-01-01T00:00:00Z",
		"amount":      "0.2890",
		"unit":        "kWh",
	}}
	resp := doJSON(t, app, http.MethodPut, "/api/contracts/"+created.ID+"/prices", prices, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.ContractResponse](t, resp)
	require.Len(t, out.Prices, 1)
	assert.Equal(t, memory.SeedPriceTypeAP, out.Prices[0].PriceTypeID)
}

func TestPutContractCustomers_ValidiertRolle(t *testing.T) {
	app := buildTestApp(t)
	created := createContract(t, app, "V-2024-061")

	body := []map[string]any{{
		"customerId":          memory.SeedCustomerStadt,
		"role":                7,
		"advancePaymentCycle": 1,
	}}
	resp := doJSON(t, app, http.MethodPut, "/api/contracts/"+created.ID+"/contract-customers", body, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, out.Fields["contractCustomers[0].role"], "Unbekannte Rolle 7")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lookups
// ──────────────────────────────────────────────────────────────────────────────

func TestLookups_KundenMitDisplay(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/lookups/customers", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := decode[[]dto.LookupItem](t, resp)
	require.Len(t, items, 2)
	// Namenssortierung: EVU Musterkunde vor Stadtwerke Beispielstadt.
	assert.Equal(t, "K-12345 - EVU Musterkunde GmbH", items[0].Display)
	assert.Equal(t, "K-67890 - Stadtwerke Beispielstadt AG", items[1].Display)
}

func TestLookups_StatusUndVertragsarten(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/lookups/contract-statuses", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	statuses := decode[[]dto.EnumItem](t, resp)
	require.Len(t, statuses, 5)
	assert.Equal(t, dto.EnumItem{Value: 0, Display: "In Verhandlung"}, statuses[0])
	assert.Equal(t, dto.EnumItem{Value: 1, Display: "Aktiv"}, statuses[1])

	resp = doJSON(t, app, http.MethodGet, "/api/lookups/contract-types", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	types := decode[[]dto.EnumItem](t, resp)
	require.Len(t, types, 3)
	assert.Equal(t, "Verkauf", types[0].Display)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exporte
// ──────────────────────────────────────────────────────────────────────────────

func TestExportDataSheetPDF(t *testing.T) {
	app := buildTestApp(t)
	created := createContract(t, app, "V-2024-070")

	resp := doJSON(t, app, http.MethodGet, "/api/contracts/"+created.ID+"/datasheet.pdf", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `vertrag-V-2024-070.pdf`)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "Antwort muss ein PDF sein")
}

func TestExportListExcel(t *testing.T) {
	app := buildTestApp(t)
	createContract(t, app, "V-2024-071")

	resp := doJSON(t, app, http.MethodGet, "/api/contracts/export.xlsx", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "vertraege.xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	// XLSX ist ein ZIP-Container.
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "Antwort muss eine XLSX-Datei sein")
}

func TestExportERPDocumentXML(t *testing.T) {
	app := buildTestApp(t)
	created := createContract(t, app, "V-2024-072")

	resp := doJSON(t, app, http.MethodGet, "/api/contracts/"+created.ID+"/erp.xml", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Contains(t, string(data), "<ContractNumber>V-2024-072</ContractNumber>")
	assert.Contains(t, string(data), `xmlns="urn:vertragswerk:contract:v1"`)
}

func TestExport_UnbekannterVertragIst404(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/contracts/99999999-9999-9999-9999-999999999999/erp.xml", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
