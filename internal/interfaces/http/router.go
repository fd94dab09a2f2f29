package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/disposal"
	"github.com/jhoicas/Taller-api/internal/application/fabrication"
	"github.com/jhoicas/Taller-api/internal/application/installation"
	"github.com/jhoicas/Taller-api/internal/application/issuance"
	"github.com/jhoicas/Taller-api/internal/application/ledger"
	"github.com/jhoicas/Taller-api/internal/application/procurement"
	"github.com/jhoicas/Taller-api/internal/application/returns"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	ClientUC       *usecase.ClientUseCase
	SupplierUC     *usecase.SupplierUseCase
	ToolUC         *usecase.ToolUseCase
	Ledger         *ledger.Service
	IssuanceUC     *issuance.UseCase
	IssuancePDF    *issuance.PDFUseCase
	ReturnUC       *returns.UseCase
	ProcurementUC  *procurement.UseCase
	FabricationUC  *fabrication.UseCase
	InstallationUC *installation.UseCase
	DisposalUC     *disposal.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products + ledger (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/history", productHandler.History)
	products.Get("/:id/stock-as-of", productHandler.StockAsOf)

	// Ajustes manuales de inventario (solo admin y bodeguero)
	invGroup := protected.Group("/inventory", RequireRole("admin", "bodeguero"))
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Tools (protegido)
	tools := protected.Group("/tools")
	toolHandler := NewToolHandler(deps.ToolUC)
	tools.Post("/", toolHandler.Create)
	tools.Get("/", toolHandler.List)
	tools.Post("/:id/damage", toolHandler.MarkDamaged)

	// Issuances (protegido)
	issuances := protected.Group("/issuances")
	issuanceHandler := NewIssuanceHandler(deps.IssuanceUC, deps.IssuancePDF)
	issuances.Post("/", issuanceHandler.Create)
	issuances.Get("/", issuanceHandler.List)
	issuances.Get("/:id", issuanceHandler.GetByID)
	issuances.Delete("/:id", issuanceHandler.Delete)
	issuances.Get("/:id/pdf", issuanceHandler.PDF)

	// Returns (protegido)
	returnsGroup := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnUC)
	returnsGroup.Post("/", returnHandler.Initiate)
	returnsGroup.Get("/", returnHandler.List)
	returnsGroup.Get("/:id", returnHandler.GetByID)
	returnsGroup.Post("/:id/receive", returnHandler.MarkReceived)
	returnsGroup.Post("/:id/cancel", returnHandler.Cancel)
	returnsGroup.Post("/:id/inspection", returnHandler.CompleteInspection)

	// Purchase orders (protegido)
	pos := protected.Group("/purchase-orders")
	purchaseHandler := NewPurchaseHandler(deps.ProcurementUC)
	pos.Post("/", purchaseHandler.Create)
	pos.Get("/", purchaseHandler.List)
	pos.Get("/:id", purchaseHandler.GetByID)
	pos.Post("/:id/ship", purchaseHandler.MarkShipped)
	pos.Post("/:id/deliver", purchaseHandler.MarkDelivered)
	pos.Post("/:id/inspection", purchaseHandler.CompleteInspection)
	pos.Post("/:id/payment", purchaseHandler.Pay)

	// Job orders (protegido)
	jobOrders := protected.Group("/job-orders")
	fabricationHandler := NewFabricationHandler(deps.FabricationUC)
	jobOrders.Post("/", fabricationHandler.Create)
	jobOrders.Get("/", fabricationHandler.List)
	jobOrders.Get("/:id", fabricationHandler.GetByID)
	jobOrders.Post("/:jobId/items/:itemId/advance", fabricationHandler.AdvanceItem)

	// Installations (protegido)
	installations := protected.Group("/installations")
	installationHandler := NewInstallationHandler(deps.InstallationUC)
	installations.Post("/", installationHandler.Schedule)
	installations.Get("/", installationHandler.List)
	installations.Get("/:id", installationHandler.GetByID)

	// Disposals (solo admin y bodeguero)
	disposals := protected.Group("/disposals", RequireRole("admin", "bodeguero"))
	disposalHandler := NewDisposalHandler(deps.DisposalUC)
	disposals.Post("/", disposalHandler.Dispose)
	disposals.Get("/eligible", disposalHandler.ListEligible)
}
