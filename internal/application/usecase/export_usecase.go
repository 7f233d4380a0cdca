package usecase

import (
	"fmt"

	"github.com/vertragswerk/contracts-api/internal/domain"
	"github.com/vertragswerk/contracts-api/internal/domain/entity"
	"github.com/vertragswerk/contracts-api/internal/domain/repository"
)

// Ports der Export-Infrastruktur. Implementiert unter internal/infrastructure.

// DataSheetGenerator erzeugt das Vertragsdatenblatt als PDF.
type DataSheetGenerator interface {
	GenerateDataSheet(view *entity.ContractView) ([]byte, error)
}

// ListExcelGenerator erzeugt die Vertragsliste als Excel-Arbeitsmappe.
type ListExcelGenerator interface {
	GenerateContractList(views []*entity.ContractView) ([]byte, error)
}

// ERPDocumentBuilder erzeugt das XML-Übergabedokument für das ERP.
type ERPDocumentBuilder interface {
	BuildContractDocument(view *entity.ContractView) ([]byte, error)
}

// ExportUseCase Exporte eines Vertrags bzw. der gefilterten Vertragsliste.
type ExportUseCase struct {
	repo  repository.ContractRepository
	pdf   DataSheetGenerator
	excel ListExcelGenerator
	xml   ERPDocumentBuilder
}

// NewExportUseCase baut den Anwendungsfall.
func NewExportUseCase(repo repository.ContractRepository, pdf DataSheetGenerator, excel ListExcelGenerator, xml ERPDocumentBuilder) *ExportUseCase {
	return &ExportUseCase{repo: repo, pdf: pdf, excel: excel, xml: xml}
}

// DataSheetPDF Vertragsdatenblatt zu einem Vertrag.
func (uc *ExportUseCase) DataSheetPDF(id string) ([]byte, string, error) {
	view, err := uc.load(id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateDataSheet(view)
	if err != nil {
		return nil, "", fmt.Errorf("datenblatt erzeugen: %w", err)
	}
	return data, fmt.Sprintf("vertrag-%s.pdf", view.ContractNumber), nil
}

// ListExcel exportiert die komplette gefilterte Liste (ohne Paginierung).
func (uc *ExportUseCase) ListExcel(search string, status *entity.ContractStatus) ([]byte, string, error) {
	// PageSize 0 = unbegrenzt; der Filter läuft über denselben Pfad wie die Liste.
	views, _, err := uc.repo.List(repository.ContractFilter{Search: search, Status: status, Page: 1})
	if err != nil {
		return nil, "", fmt.Errorf("verträge listen: %w", err)
	}
	data, err := uc.excel.GenerateContractList(views)
	if err != nil {
		return nil, "", fmt.Errorf("excel erzeugen: %w", err)
	}
	return data, "vertraege.xlsx", nil
}

// ERPDocumentXML XML-Übergabedokument eines Vertrags.
func (uc *ExportUseCase) ERPDocumentXML(id string) ([]byte, string, error) {
	view, err := uc.load(id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.xml.BuildContractDocument(view)
	if err != nil {
		return nil, "", fmt.Errorf("xml erzeugen: %w", err)
	}
	return data, fmt.Sprintf("vertrag-%s.xml", view.ContractNumber), nil
}

func (uc *ExportUseCase) load(id string) (*entity.ContractView, error) {
	view, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("vertrag laden: %w", err)
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	return view, nil
}
