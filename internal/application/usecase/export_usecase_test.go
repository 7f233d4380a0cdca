package usecase_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vertragswerk/contracts-api/internal/application/usecase"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/infrastructure/erpxml"
	"github.com/vertragswerk/contracts-api/internal/infrastructure/excel"
	"github.com/vertragswerk/contracts-api/internal/infrastructure/memory"
	"github.com/vertragswerk/contracts-api/internal/infrastructure/pdf"
)

func buildExportUseCase(t *testing.T) (*usecase.ExportUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.Seed()
	uc := usecase.NewExportUseCase(
		memory.NewContractRepository(store),
		pdf.NewContractPDFGenerator(),
		excel.NewContractExcelGenerator(),
		erpxml.NewContractXMLBuilder(),
	)
	return uc, store
}

func exportContract(t *testing.T, store *memory.Store, number string, createdAt time.Time) {
	t.Helper()
	c := &entity.Contract{
		ID:               uuid.New().String(),
		ContractNumber:   number,
		CustomerID:       memory.SeedCustomerEVU,
		MandantID:        memory.SeedMandant1,
		ContractGroupID:  memory.SeedGroupSK,
		CurrencyID:       memory.SeedCurrencyEUR,
		ContractType:     entity.TypeSale,
		Status:           entity.StatusActive,
		StartDate:        createdAt,
		IsUnlimited:      true,
		BillingStartDate: createdAt,
	}
	c.Stamp("System", createdAt)
	require.NoError(t, memory.NewContractRepository(store).Create(c))
}

// Der Excel-Export umfasst die komplette gefilterte Menge, nicht nur eine Seite.
func TestListExcel_ExportiertAlleTrefferOhneSeitengrenze(t *testing.T) {
	uc, store := buildExportUseCase(t)
	now := time.Now().UTC()
	for i := 0; i < 60; i++ {
		exportContract(t, store, "V-2024-"+uuid.New().String()[:8], now.Add(time.Duration(i)*time.Second))
	}

	data, filename, err := uc.ListExcel("", nil)
	require.NoError(t, err)
	assert.Equal(t, "vertraege.xlsx", filename)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Verträge")
	require.NoError(t, err)
	// Kopfblock + Tabellenkopf belegen die Zeilen 1-5, danach eine Zeile je Vertrag.
	assert.Len(t, rows, 5+60, "alle 60 Verträge müssen im Blatt stehen")

	count, err := file.GetCellValue("Verträge", "B3")
	require.NoError(t, err)
	assert.Equal(t, "60", count)
}

// Ein Filter ohne Treffer liefert eine gültige, leere Arbeitsmappe.
func TestListExcel_LeererTreffersatz(t *testing.T) {
	uc, _ := buildExportUseCase(t)

	data, _, err := uc.ListExcel("gibt-es-nicht", nil)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer file.Close()

	count, err := file.GetCellValue("Verträge", "B3")
	require.NoError(t, err)
	assert.Equal(t, "0", count)
}
