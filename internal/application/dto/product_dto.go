package dto

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Stock        int64  `json:"stock"` // stock inicial, >= 0
	ReorderLimit int64  `json:"reorder_limit"`
	Location     string `json:"location,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. No toca Stock;
// el stock solo cambia a través del ledger.
type UpdateProductRequest struct {
	Name         string `json:"name"`
	ReorderLimit int64  `json:"reorder_limit"`
	Location     string `json:"location,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID           string `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Stock        int64  `json:"stock"`
	ReorderLimit int64  `json:"reorder_limit"`
	Location     string `json:"location,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`
	BelowReorder bool   `json:"below_reorder"`
}

// StockSnapshotResponse una entrada del historial de stock.
type StockSnapshotResponse struct {
	EffectiveDate string `json:"effective_date"` // YYYY-MM-DD
	StockAfter    int64  `json:"stock_after"`
	RecordedAt    string `json:"recorded_at"` // RFC3339
}

// StockAsOfResponse respuesta de GET /api/products/:id/stock-as-of.
type StockAsOfResponse struct {
	ProductID string `json:"product_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Stock     int64  `json:"stock"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments (ajuste manual).
type AdjustStockRequest struct {
	ProductID     string `json:"product_id"`
	Delta         int64  `json:"delta"`                    // positivo o negativo, != 0
	EffectiveDate string `json:"effective_date,omitempty"` // YYYY-MM-DD, vacío = hoy
	Remarks       string `json:"remarks,omitempty"`
}

// AdjustStockResponse stock resultante tras el ajuste.
type AdjustStockResponse struct {
	ProductID string `json:"product_id"`
	NewStock  int64  `json:"new_stock"`
}
