package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-turnos/internal/application/auth"
	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/application/usecase"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	ShiftUC       *appshift.UseCase
	ShiftReportUC *usecase.ShiftReportUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleUser)

	// Products: lectura para ambos roles, escritura solo admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/stats", anyRole, productHandler.Stats)
	products.Get("/categories", anyRole, productHandler.Categories)
	products.Get("/low-stock", anyRole, productHandler.LowStock)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Patch("/:id/quantity", adminOnly, productHandler.UpdateQuantity)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Turno del dispositivo (ambos roles)
	shift := protected.Group("/shift", anyRole)
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shift.Get("/entries/:productId", shiftHandler.GetEntry)
	shift.Put("/entries/:productId/initial", shiftHandler.SetInitialQuantity)
	shift.Post("/entries/:productId/sales", shiftHandler.RecordSale)
	shift.Get("/summary", shiftHandler.Summary)
	shift.Get("/summary.pdf", shiftHandler.SummaryPDF)
	shift.Post("/finalize", shiftHandler.Finalize)

	// Visor de turnos cerrados (admin)
	if deps.ShiftReportUC != nil {
		admin := protected.Group("/admin", adminOnly)
		admin.Get("/shifts", NewAdminShiftHandler(deps.ShiftReportUC).List)
	}
}
