package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Camilo196/Vendly/internal/application/auth"
	"github.com/Camilo196/Vendly/internal/application/commissions"
	"github.com/Camilo196/Vendly/internal/application/employees"
	"github.com/Camilo196/Vendly/internal/application/products"
	"github.com/Camilo196/Vendly/internal/application/purchases"
	"github.com/Camilo196/Vendly/internal/application/reports"
	"github.com/Camilo196/Vendly/internal/application/sales"
	"github.com/Camilo196/Vendly/internal/application/services"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProductUC    *products.UseCase
	PurchaseUC   *purchases.UseCase
	SaleUC       *sales.UseCase
	EmployeeUC   *employees.UseCase
	CommissionUC *commissions.UseCase
	ServiceUC    *services.UseCase
	ReportUC     *reports.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	productsGroup := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	productsGroup.Post("/", productHandler.Create)
	productsGroup.Get("/", productHandler.List)
	productsGroup.Post("/reactivate", productHandler.ReactivateAll)
	productsGroup.Get("/:id", productHandler.GetByID)
	productsGroup.Put("/:id", productHandler.Update)
	productsGroup.Post("/:id/adjust-stock", productHandler.AdjustStock)
	productsGroup.Delete("/:id", productHandler.Deactivate)

	// Purchases
	purchasesGroup := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchasesGroup.Post("/", purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)
	purchasesGroup.Put("/:id", purchaseHandler.Update)
	purchasesGroup.Delete("/:id", purchaseHandler.Delete)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Employees
	employeesGroup := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employeesGroup.Post("/", employeeHandler.Create)
	employeesGroup.Get("/", employeeHandler.List)
	employeesGroup.Get("/:id", employeeHandler.GetByID)
	employeesGroup.Put("/:id", employeeHandler.Update)
	employeesGroup.Delete("/:id", employeeHandler.Deactivate)

	// Commissions
	commissionsGroup := protected.Group("/commissions")
	commissionHandler := NewCommissionHandler(deps.CommissionUC)
	commissionsGroup.Get("/", commissionHandler.List)
	commissionsGroup.Post("/pay-batch", commissionHandler.PayBatch)
	commissionsGroup.Get("/reports/monthly", commissionHandler.MonthlyReport)
	commissionsGroup.Get("/:id", commissionHandler.GetByID)
	commissionsGroup.Post("/:id/approve", commissionHandler.Approve)
	commissionsGroup.Post("/:id/pay", commissionHandler.Pay)
	commissionsGroup.Post("/:id/cancel", commissionHandler.Cancel)

	// Technical services
	servicesGroup := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	servicesGroup.Post("/", serviceHandler.Create)
	servicesGroup.Get("/", serviceHandler.List)
	servicesGroup.Get("/stats", serviceHandler.Stats)
	servicesGroup.Get("/:id", serviceHandler.GetByID)
	servicesGroup.Put("/:id", serviceHandler.Update)
	servicesGroup.Patch("/:id/status", serviceHandler.UpdateStatus)
	servicesGroup.Post("/:id/deliver", serviceHandler.Deliver)
	servicesGroup.Delete("/:id", serviceHandler.Delete)

	// Reports
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/summary", reportHandler.Summary)
}
