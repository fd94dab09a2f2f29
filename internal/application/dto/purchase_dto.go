package dto

import "github.com/shopspring/decimal"

// POItemRequest línea de orden de compra.
type POItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"` // cantidad ordenada, >= 1
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePORequest body para POST /api/purchase-orders.
type CreatePORequest struct {
	SupplierID   string          `json:"supplier_id"`
	ExpectedDate string          `json:"expected_date,omitempty"` // YYYY-MM-DD
	Items        []POItemRequest `json:"items"`
}

// POInspectionLineRequest cantidad recibida por línea: <= cantidad ordenada.
type POInspectionLineRequest struct {
	ProductID string `json:"product_id"`
	Received  int64  `json:"received_quantity"` // >= 0
}

// CompletePOInspectionRequest body para POST /api/purchase-orders/:id/inspection.
type CompletePOInspectionRequest struct {
	Items []POInspectionLineRequest `json:"items"`
}

// PayPORequest body para POST /api/purchase-orders/:id/payment.
type PayPORequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// POItemResponse línea de orden de compra en respuestas.
type POItemResponse struct {
	ProductID   string          `json:"product_id"`
	OrderedQty  int64           `json:"ordered_quantity"`
	ReceivedQty int64           `json:"received_quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// POResponse representación de una orden de compra.
type POResponse struct {
	ID            string           `json:"id"`
	PONumber      string           `json:"po_number"`
	SupplierID    string           `json:"supplier_id"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`
	PaidAmount    decimal.Decimal  `json:"paid_amount"`
	OrderDate     string           `json:"order_date"`
	ExpectedDate  string           `json:"expected_date,omitempty"`
	ReceivedDate  string           `json:"received_date,omitempty"`
	Items         []POItemResponse `json:"items"`
}
