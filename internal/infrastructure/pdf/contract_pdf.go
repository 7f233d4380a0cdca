// Package pdf erzeugt das Vertragsdatenblatt als PDF.
//
// Seitenaufbau (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  KOPF: Vertragsnummer + Status  │  Vertragsart + Datum      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STAMMDATEN: Kunde / Mandant / Gruppe / Währung             │
//	│  LAUFZEIT: Beginn / Ende / Kündigung / Verlängerung         │
//	│  VERANTWORTLICHE: Vertrieb / Buchhaltung / Preise           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELLE Preise: Gültig ab | bis | Betrag | Einheit          │
//	│  TABELLE Vertragskunden: Kundennr | Rolle | Abschlag         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FUSS: Notizen + Audit                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/vertragswerk/contracts-api/internal/domain/entity"
)

// ── Farbpalette ───────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ContractPDFGenerator erzeugt das Vertragsdatenblatt mit Maroto v2.
type ContractPDFGenerator struct{}

// NewContractPDFGenerator baut den Generator.
func NewContractPDFGenerator() *ContractPDFGenerator { return &ContractPDFGenerator{} }

// GenerateDataSheet rendert das Datenblatt und liefert die PDF-Bytes.
func (g *ContractPDFGenerator) GenerateDataSheet(view *entity.ContractView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Vertragsdatenblatt "+view.ContractNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(view))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(stammdatenRow(view))
	m.AddRows(laufzeitRow(view))
	m.AddRows(verantwortlicheRow(view))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("PREISE"))
	if len(view.Prices) == 0 {
		m.AddRows(emptyHintRow("Keine Preise hinterlegt."))
	} else {
		m.AddRows(priceHeaderRow())
		for _, r := range priceRows(view.Prices, view.CurrencyCode) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("VERTRAGSKUNDEN"))
	if len(view.ContractCustomers) == 0 {
		m.AddRows(emptyHintRow("Keine Vertragskunden zugeordnet."))
	} else {
		m.AddRows(contractCustomerHeaderRow())
		for _, r := range contractCustomerRows(view.ContractCustomers, view.CurrencyCode) {
			m.AddRows(r)
		}
	}

	if view.Notes != "" {
		m.AddRows(line.NewRow(2))
		m.AddRows(sectionTitleRow("NOTIZEN"))
		m.AddRows(notesRow(view.Notes))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(auditRow(view))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: dokument erzeugen: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Abschnitte ────────────────────────────────────────────────────────────────

// headerRow: Vertragsnummer + Status (links), Vertragsart + Druckdatum (rechts).
func headerRow(view *entity.ContractView) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Vertrag "+view.ContractNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Status: "+view.Status.Label(), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("VERTRAGSDATENBLATT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(view.ContractType.Label(), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Stand: "+time.Now().Format("02.01.2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func stammdatenRow(view *entity.ContractView) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("STAMMDATEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (%s)", view.CustomerName, view.CustomerNumber), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Mandant: %s   |   Gruppe: %s   |   Währung: %s",
				view.MandantName, view.ContractGroupName, view.CurrencyCode,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func laufzeitRow(view *entity.ContractView) core.Row {
	ende := "unbefristet"
	if !view.IsUnlimited && view.EndDate != nil {
		ende = view.EndDate.Format("02.01.2006")
	}
	verlaengerung := "nein"
	if view.AutoRenew {
		verlaengerung = "ja"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("LAUFZEIT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Beginn: %s   |   Ende: %s   |   Abrechnung ab: %s   |   Kündigungsfrist: %d Monate   |   Autom. Verlängerung: %s",
				view.StartDate.Format("02.01.2006"), ende,
				view.BillingStartDate.Format("02.01.2006"),
				view.NoticePeriodMonths, verlaengerung,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func verantwortlicheRow(view *entity.ContractView) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("VERANTWORTLICHE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Vertrieb: %s   |   Buchhaltung: %s   |   Preise: %s",
				nonEmpty(view.ResponsibleSales, "—"),
				nonEmpty(view.ResponsibleAccounting, "—"),
				nonEmpty(view.ResponsiblePricing, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	))
}

func emptyHintRow(hint string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(hint, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}

func priceHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Gültig ab", 2, align.Left),
		h("Gültig bis", 2, align.Left),
		h("Bezeichnung", 4, align.Left),
		h("Betrag", 2, align.Right),
		h("Einheit", 2, align.Left),
	)
}

func priceRows(prices []entity.ContractPrice, currency string) []core.Row {
	result := make([]core.Row, 0, len(prices))
	for _, p := range prices {
		bis := "—"
		if p.ValidTo != nil {
			bis = p.ValidTo.Format("02.01.2006")
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(p.ValidFrom.Format("02.01.2006"),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(bis,
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(p.Description, "—"),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatAmount(p.Amount)+" "+currency,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(nonEmpty(p.Unit, "—"),
				props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return result
}

func contractCustomerHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Kundennr.", 2, align.Left),
		h("Rolle", 3, align.Left),
		h("Abschlag", 2, align.Right),
		h("Zyklus (Monate)", 2, align.Center),
		h("Zahlungsbedingungen", 3, align.Left),
	)
}

func contractCustomerRows(customers []entity.ContractCustomer, currency string) []core.Row {
	result := make([]core.Row, 0, len(customers))
	for _, cc := range customers {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(nonEmpty(cc.CustomerNumber, "—"),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(cc.Role.Label(),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatAmount(cc.AdvancePaymentAmount)+" "+currency,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", cc.AdvancePaymentCycle),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(nonEmpty(cc.PaymentTerms, "—"),
				props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return result
}

func notesRow(notes string) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New(notes, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}

func auditRow(view *entity.ContractView) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Angelegt: %s von %s   |   Geändert: %s von %s",
			view.CreatedAt.Format("02.01.2006 15:04"), view.CreatedBy,
			view.UpdatedAt.Format("02.01.2006 15:04"), view.UpdatedBy,
		), props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── Helfer ────────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount formatiert einen Betrag deutsch: Tausenderpunkt, Dezimalkomma.
// Bsp: 1234.5 → "1.234,50"
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	out := string(buf) + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
