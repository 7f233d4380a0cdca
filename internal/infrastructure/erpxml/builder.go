// Package erpxml erzeugt das XML-Übergabedokument eines Vertrags für das
// nachgelagerte ERP (Abrechnungssystem).
package erpxml

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/vertragswerk/contracts-api/internal/domain/entity"
)

// Namespace des Übergabedokuments; Version wandert ins Attribut des Wurzelknotens.
const (
	nsContract     = "urn:vertragswerk:contract:v1"
	schemaVersion  = "1.0"
	dateFormat     = "2006-01-02"
	dateTimeFormat = time.RFC3339
)

// ContractXMLBuilder baut das Dokument mit etree.
type ContractXMLBuilder struct{}

// NewContractXMLBuilder baut den Builder.
func NewContractXMLBuilder() *ContractXMLBuilder {
	return &ContractXMLBuilder{}
}

// BuildContractDocument erzeugt das eingerückte XML-Dokument als Bytes.
func (b *ContractXMLBuilder) BuildContractDocument(view *entity.ContractView) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("erpxml: kein vertrag übergeben")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Contract")
	root.CreateAttr("xmlns", nsContract)
	root.CreateAttr("schemaVersion", schemaVersion)
	root.CreateAttr("generatedAt", time.Now().UTC().Format(dateTimeFormat))

	root.CreateElement("Id").SetText(view.ID)
	root.CreateElement("ContractNumber").SetText(view.ContractNumber)
	root.CreateElement("ContractType").SetText(view.ContractType.Label())
	root.CreateElement("Status").SetText(view.Status.Label())

	customer := root.CreateElement("Customer")
	customer.CreateElement("Id").SetText(view.CustomerID)
	customer.CreateElement("Number").SetText(view.CustomerNumber)
	customer.CreateElement("Name").SetText(view.CustomerName)

	mandant := root.CreateElement("Mandant")
	mandant.CreateElement("Id").SetText(view.MandantID)
	mandant.CreateElement("Name").SetText(view.MandantName)

	group := root.CreateElement("ContractGroup")
	group.CreateElement("Id").SetText(view.ContractGroupID)
	group.CreateElement("Name").SetText(view.ContractGroupName)

	term := root.CreateElement("Term")
	term.CreateElement("StartDate").SetText(view.StartDate.Format(dateFormat))
	if !view.IsUnlimited && view.EndDate != nil {
		term.CreateElement("EndDate").SetText(view.EndDate.Format(dateFormat))
	}
	term.CreateElement("IsUnlimited").SetText(strconv.FormatBool(view.IsUnlimited))
	term.CreateElement("NoticePeriodMonths").SetText(strconv.Itoa(view.NoticePeriodMonths))
	if view.NoticeDeadline != nil {
		term.CreateElement("NoticeDeadline").SetText(view.NoticeDeadline.Format(dateFormat))
	}
	term.CreateElement("AutoRenew").SetText(strconv.FormatBool(view.AutoRenew))
	term.CreateElement("BillingStartDate").SetText(view.BillingStartDate.Format(dateFormat))

	prices := root.CreateElement("Prices")
	prices.CreateAttr("currency", view.CurrencyCode)
	for _, p := range view.Prices {
		price := prices.CreateElement("Price")
		price.CreateAttr("id", p.ID)
		price.CreateElement("PriceTypeId").SetText(p.PriceTypeID)
		price.CreateElement("ValidFrom").SetText(p.ValidFrom.Format(dateFormat))
		if p.ValidTo != nil {
			price.CreateElement("ValidTo").SetText(p.ValidTo.Format(dateFormat))
		}
		price.CreateElement("Amount").SetText(p.Amount.StringFixed(4))
		if p.Unit != "" {
			price.CreateElement("Unit").SetText(p.Unit)
		}
		if p.Description != "" {
			price.CreateElement("Description").SetText(p.Description)
		}
	}

	assignments := root.CreateElement("ContractCustomers")
	for _, cc := range view.ContractCustomers {
		a := assignments.CreateElement("ContractCustomer")
		a.CreateAttr("id", cc.ID)
		a.CreateElement("CustomerId").SetText(cc.CustomerID)
		if cc.CustomerNumber != "" {
			a.CreateElement("CustomerNumber").SetText(cc.CustomerNumber)
		}
		a.CreateElement("Role").SetText(cc.Role.Label())
		a.CreateElement("AdvancePaymentAmount").SetText(cc.AdvancePaymentAmount.StringFixed(2))
		a.CreateElement("AdvancePaymentCycleMonths").SetText(strconv.Itoa(cc.AdvancePaymentCycle))
		if cc.PaymentTerms != "" {
			a.CreateElement("PaymentTerms").SetText(cc.PaymentTerms)
		}
		if cc.AccountingReference != "" {
			a.CreateElement("AccountingReference").SetText(cc.AccountingReference)
		}
	}

	audit := root.CreateElement("Audit")
	audit.CreateElement("CreatedAt").SetText(view.CreatedAt.UTC().Format(dateTimeFormat))
	audit.CreateElement("CreatedBy").SetText(view.CreatedBy)
	audit.CreateElement("UpdatedAt").SetText(view.UpdatedAt.UTC().Format(dateTimeFormat))
	audit.CreateElement("UpdatedBy").SetText(view.UpdatedBy)

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("erpxml: dokument schreiben: %w", err)
	}
	return out, nil
}
