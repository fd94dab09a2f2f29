package dto

// JobOrderItemRequest ítem de una orden de trabajo.
type JobOrderItemRequest struct {
	ProductID   string `json:"product_id"`
	Description string `json:"description,omitempty"`
}

// CreateJobOrderRequest body para POST /api/job-orders.
type CreateJobOrderRequest struct {
	ClientID string                `json:"client_id"`
	Remarks  string                `json:"remarks,omitempty"`
	Items    []JobOrderItemRequest `json:"items"`
}

// AdvanceItemRequest body para POST /api/job-orders/:jobId/items/:itemId/advance.
// Solo se acepta el estado inmediatamente siguiente de la progresión.
type AdvanceItemRequest struct {
	ToStatus string `json:"to_status"`
}

// JobOrderItemResponse ítem con su estado de producción.
type JobOrderItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

// JobOrderResponse representación de una orden de trabajo.
type JobOrderResponse struct {
	ID       string                 `json:"id"`
	Number   string                 `json:"number"`
	ClientID string                 `json:"client_id"`
	Remarks  string                 `json:"remarks,omitempty"`
	Items    []JobOrderItemResponse `json:"items"`
}

// InstallationItemRequest referencia (orden de trabajo, ítem) a instalar.
type InstallationItemRequest struct {
	JobOrderID string `json:"job_order_id"`
	ItemID     string `json:"item_id"`
}

// ScheduleInstallationRequest body para POST /api/installations.
type ScheduleInstallationRequest struct {
	CrewID    string                    `json:"crew_id"`
	StartDate string                    `json:"start_date"` // YYYY-MM-DD
	EndDate   string                    `json:"end_date"`   // YYYY-MM-DD
	Items     []InstallationItemRequest `json:"items"`
}

// InstallationResponse representación de una instalación agendada.
type InstallationResponse struct {
	ID        string                    `json:"id"`
	Number    string                    `json:"number"`
	CrewID    string                    `json:"crew_id"`
	StartDate string                    `json:"start_date"`
	EndDate   string                    `json:"end_date"`
	Status    string                    `json:"status"`
	Items     []InstallationItemRequest `json:"items"`
}
