package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devstock/ledger-api/internal/application/analytics"
	"github.com/devstock/ledger-api/internal/application/auth"
	"github.com/devstock/ledger-api/internal/application/inventory"
	"github.com/devstock/ledger-api/internal/application/sales"
	"github.com/devstock/ledger-api/internal/application/team"
	"github.com/devstock/ledger-api/internal/domain/rbac"
	"github.com/devstock/ledger-api/internal/infrastructure/stream"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InventoryUC *inventory.InventoryUseCase
	SalesUC     *sales.SalesUseCase
	TeamUC      *team.TeamUseCase
	DashboardUC *analytics.DashboardUseCase
	Hub         *stream.Hub
	JWTSecret   string
}

// Router registra las rutas de la API. La autorización por rol viene de la
// tabla de capacidades (RequirePermission), nunca de comparar strings acá.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products: lectura para cualquier rol, mutaciones para quien gestiona inventario
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.InventoryUC)
	products.Get("/", RequirePermission(rbac.ActionViewInventory), productHandler.List)
	products.Post("/", RequirePermission(rbac.ActionManageProducts), productHandler.Create)
	products.Put("/:id", RequirePermission(rbac.ActionManageProducts), productHandler.Update)
	products.Delete("/:id", RequirePermission(rbac.ActionManageProducts), productHandler.Delete)

	// Sales: registrar es del vendedor; listar y saldar, de quien cobra
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", RequirePermission(rbac.ActionRecordSale), saleHandler.Record)
	salesGroup.Get("/", RequirePermission(rbac.ActionSettleDebt), saleHandler.List)
	salesGroup.Post("/:id/settle", RequirePermission(rbac.ActionSettleDebt), saleHandler.Settle)
	protected.Get("/debts", RequirePermission(rbac.ActionSettleDebt), saleHandler.Debts)

	// Dashboard (solo dueño)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequirePermission(rbac.ActionViewDashboard), dashboardHandler.Get)

	// Team (solo dueño, salvo la confirmación de nota propia)
	teamGroup := protected.Group("/team")
	teamHandler := NewTeamHandler(deps.TeamUC)
	teamGroup.Delete("/note", teamHandler.AcknowledgeNote)
	teamGroup.Get("/", RequirePermission(rbac.ActionManageTeam), teamHandler.List)
	teamGroup.Post("/", RequirePermission(rbac.ActionManageTeam), teamHandler.Add)
	teamGroup.Delete("/:id", RequirePermission(rbac.ActionManageTeam), teamHandler.Remove)
	teamGroup.Post("/:id/note", RequirePermission(rbac.ActionManageTeam), teamHandler.SendNote)

	// Suscripciones en vivo (websocket; token por query param)
	streamHandler := NewStreamHandler(deps.Hub, deps.InventoryUC, deps.SalesUC)
	protected.Get("/stream/:kind", streamHandler.Upgrade, streamHandler.Serve())
}
