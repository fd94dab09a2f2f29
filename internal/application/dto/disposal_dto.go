package dto

// DisposalSourceRequest una fuente a dar de baja: cantidad elegible de
// producto (source_type="product") o herramienta dañada (source_type="tool").
type DisposalSourceRequest struct {
	SourceType string `json:"source_type"` // "product" | "tool"
	SourceID   string `json:"source_id"`
}

// DisposeRequest body para POST /api/disposals.
type DisposeRequest struct {
	Reason  string                  `json:"reason"`
	Sources []DisposalSourceRequest `json:"sources"`
}

// DisposalEligibleResponse cantidad elegible de baja pendiente.
type DisposalEligibleResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	ReturnID  string `json:"return_id"`
	Quantity  int64  `json:"quantity"`
	CreatedAt string `json:"created_at"`
}

// DisposeResultResponse resultado de la baja: fuentes aplicadas y fuentes que
// ya estaban dadas de baja (no-op idempotente, no error).
type DisposeResultResponse struct {
	Disposed       []DisposalSourceRequest `json:"disposed"`
	AlreadyGone    []DisposalSourceRequest `json:"already_disposed"`
	TotalProcessed int                     `json:"total_processed"`
}

// CreateClientRequest body para POST /api/clients (también el camino de entrada
// de filas candidatas del servicio de interpretación de texto).
type CreateClientRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ClientResponse representación de un cliente.
type ClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CreateToolRequest body para POST /api/tools.
type CreateToolRequest struct {
	Name string `json:"name"`
}

// ToolResponse representación de una herramienta.
type ToolResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
