package dto

// ReturnItemRequest línea de devolución declarada por el cliente.
type ReturnItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"` // >= 1
}

// InitiateReturnRequest body para POST /api/returns.
type InitiateReturnRequest struct {
	IssuanceID string              `json:"issuance_id"`
	Reason     string              `json:"reason"`
	Items      []ReturnItemRequest `json:"items"`
}

// InspectionLineRequest reparto de inspección de una línea:
// restock + disposal <= cantidad devuelta de esa línea.
type InspectionLineRequest struct {
	ProductID string `json:"product_id"`
	Restock   int64  `json:"restock_quantity"`  // reingresa a stock
	Disposal  int64  `json:"disposal_quantity"` // pasa a elegible de baja
}

// CompleteInspectionRequest body para POST /api/returns/:id/inspection.
type CompleteInspectionRequest struct {
	Items []InspectionLineRequest `json:"items"`
}

// ReturnItemResponse línea de devolución con el resultado de inspección.
type ReturnItemResponse struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Quantity    int64  `json:"quantity"`
	Restocked   int64  `json:"restocked"`
	Disposed    int64  `json:"disposed"`
	Unaccounted int64  `json:"unaccounted"` // devuelto pero ni reingresado ni dado de baja
}

// ReturnResponse representación de una devolución.
type ReturnResponse struct {
	ID         string               `json:"id"`
	RMANumber  string               `json:"rma_number"`
	IssuanceID string               `json:"issuance_id"`
	ClientID   string               `json:"client_id"`
	Reason     string               `json:"reason"`
	Status     string               `json:"status"`
	Items      []ReturnItemResponse `json:"items"`
}

// InspectionResultResponse resultado de completar la inspección. Las pérdidas
// sin justificar se reportan explícitamente, nunca se descartan en silencio.
type InspectionResultResponse struct {
	Return           ReturnResponse `json:"return"`
	TotalRestocked   int64          `json:"total_restocked"`
	TotalDisposed    int64          `json:"total_disposed"`
	TotalUnaccounted int64          `json:"total_unaccounted"`
}
