// Package excel erzeugt die Vertragsliste als Excel-Arbeitsmappe.
package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vertragswerk/contracts-api/internal/domain/entity"
)

// ContractExcelGenerator schreibt die (gefilterte) Vertragsliste in ein Blatt.
type ContractExcelGenerator struct{}

// NewContractExcelGenerator baut den Generator.
func NewContractExcelGenerator() *ContractExcelGenerator {
	return &ContractExcelGenerator{}
}

// GenerateContractList schreibt die Arbeitsmappe und liefert ihre Bytes.
func (g *ContractExcelGenerator) GenerateContractList(views []*entity.ContractView) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Verträge"
	file.SetSheetName("Sheet1", sheet)
	if err := g.writeContracts(file, sheet, views); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *ContractExcelGenerator) writeContracts(file *excelize.File, sheet string, views []*entity.ContractView) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Vertragsliste")
	set("A2", "Exportiert am")
	set("B2", time.Now().Format("02.01.2006 15:04"))
	set("A3", "Anzahl Verträge")
	set("B3", len(views))

	tableRow := 5
	headers := []string{
		"Vertragsnummer",
		"Kunde",
		"Kundennummer",
		"Mandant",
		"Vertragsgruppe",
		"Vertragsart",
		"Status",
		"Beginn",
		"Ende",
		"Unbefristet",
		"Kündigungsfrist (Monate)",
		"Autom. Verlängerung",
		"Abrechnung ab",
		"Währung",
		"Verantwortlich Vertrieb",
		"Angelegt am",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, v := range views {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), v.ContractNumber)
		set(fmt.Sprintf("B%d", row), v.CustomerName)
		set(fmt.Sprintf("C%d", row), v.CustomerNumber)
		set(fmt.Sprintf("D%d", row), v.MandantName)
		set(fmt.Sprintf("E%d", row), v.ContractGroupName)
		set(fmt.Sprintf("F%d", row), v.ContractType.Label())
		set(fmt.Sprintf("G%d", row), v.Status.Label())
		set(fmt.Sprintf("H%d", row), formatDate(v.StartDate))
		set(fmt.Sprintf("I%d", row), formatEndDate(v))
		set(fmt.Sprintf("J%d", row), formatBool(v.IsUnlimited))
		set(fmt.Sprintf("K%d", row), v.NoticePeriodMonths)
		set(fmt.Sprintf("L%d", row), formatBool(v.AutoRenew))
		set(fmt.Sprintf("M%d", row), formatDate(v.BillingStartDate))
		set(fmt.Sprintf("N%d", row), v.CurrencyCode)
		set(fmt.Sprintf("O%d", row), v.ResponsibleSales)
		set(fmt.Sprintf("P%d", row), formatDate(v.CreatedAt))
	}

	_ = file.SetColWidth(sheet, "A", "A", 18)
	_ = file.SetColWidth(sheet, "B", "B", 36)
	_ = file.SetColWidth(sheet, "C", "E", 18)
	_ = file.SetColWidth(sheet, "F", "G", 16)
	_ = file.SetColWidth(sheet, "H", "M", 14)
	_ = file.SetColWidth(sheet, "N", "N", 8)
	_ = file.SetColWidth(sheet, "O", "O", 24)
	_ = file.SetColWidth(sheet, "P", "P", 14)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}

func formatEndDate(v *entity.ContractView) string {
	if v.IsUnlimited || v.EndDate == nil {
		return ""
	}
	return v.EndDate.Format("02.01.2006")
}

func formatBool(b bool) string {
	if b {
		return "ja"
	}
	return "nein"
}
