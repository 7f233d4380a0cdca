package dto

// PageRequest 1-basierte Paginierung für Listen.
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

// Normalize setzt Defaults und Grenzen (Default 25, MaxPageSize aus der Konfiguration).
func (p *PageRequest) Normalize(defaultSize, maxSize int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}
}

// ErrorResponse Fehlerkörper der API. Fields ist nur bei Validierungsfehlern
// belegt (Feld -> Meldungen).
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}
