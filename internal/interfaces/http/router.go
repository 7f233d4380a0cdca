package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vertragswerk/contracts-api/internal/application/usecase"
)

// RouterDeps Abhängigkeiten des Routers.
type RouterDeps struct {
	ContractUC *usecase.ContractUseCase
	LookupUC   *usecase.LookupUseCase
	ExportUC   *usecase.ExportUseCase
	JWTSecret  string
}

// Router registriert die API-Routen. Alle Routen laufen durch die
// ActorMiddleware; Schreiboperationen stempeln den ermittelten Akteur.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware(deps.JWTSecret))

	// Verträge
	contracts := api.Group("/contracts")
	contractHandler := NewContractHandler(deps.ContractUC)
	contracts.Get("/", contractHandler.List)
	contracts.Post("/", contractHandler.Create)

	// Exporte vor den :id-Routen, sonst fängt :id die festen Pfade ab.
	exportHandler := NewExportHandler(deps.ExportUC)
	contracts.Get("/export.xlsx", exportHandler.ListExcel)
	contracts.Get("/:id/datasheet.pdf", exportHandler.DataSheetPDF)
	contracts.Get("/:id/erp.xml", exportHandler.ERPDocumentXML)

	contracts.Get("/:id", contractHandler.GetByID)
	contracts.Put("/:id", contractHandler.Update)
	contracts.Delete("/:id", contractHandler.Delete)
	contracts.Put("/:id/prices", contractHandler.SetPrices)
	contracts.Put("/:id/contract-customers", contractHandler.SetContractCustomers)

	// Auswahllisten
	lookups := api.Group("/lookups")
	lookupHandler := NewLookupHandler(deps.LookupUC)
	lookups.Get("/customers", lookupHandler.Customers)
	lookups.Get("/mandants", lookupHandler.Mandants)
	lookups.Get("/contract-groups", lookupHandler.ContractGroups)
	lookups.Get("/currencies", lookupHandler.Currencies)
	lookups.Get("/price-types", lookupHandler.PriceTypes)
	lookups.Get("/contract-statuses", lookupHandler.ContractStatuses)
	lookups.Get("/contract-types", lookupHandler.ContractTypes)
}
