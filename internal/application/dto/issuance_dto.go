package dto

// IssuanceItemRequest línea de salida de mercancía.
type IssuanceItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"` // >= 1
}

// CreateIssuanceRequest body para POST /api/issuances.
type CreateIssuanceRequest struct {
	ClientID string                `json:"client_id"`
	Date     string                `json:"date,omitempty"` // YYYY-MM-DD, vacío = hoy
	Remarks  string                `json:"remarks,omitempty"`
	Items    []IssuanceItemRequest `json:"items"`
}

// IssuanceItemResponse línea de salida en respuestas.
type IssuanceItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// IssuanceResponse representación de una salida.
type IssuanceResponse struct {
	ID       string                 `json:"id"`
	Number   string                 `json:"number"`
	Date     string                 `json:"date"`
	ClientID string                 `json:"client_id"`
	Remarks  string                 `json:"remarks,omitempty"`
	IssuedBy string                 `json:"issued_by"`
	Items    []IssuanceItemResponse `json:"items"`
}
