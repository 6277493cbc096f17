package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Acueducto-api/internal/application/billing"
	"github.com/jhoicas/Acueducto-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Rates        *billing.RateScheduleService
	Orchestrator *billing.Orchestrator
	PDF          *billing.PDFUseCase // opcional
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Todas las rutas requieren Bearer Token; el login vive en el servicio de usuarios.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleManager, jwt.RoleStaff, jwt.RoleMeterReader)
	office := RequireRole(jwt.RoleAdmin, jwt.RoleManager, jwt.RoleStaff)
	managers := RequireRole(jwt.RoleAdmin, jwt.RoleManager)

	// Tarifas
	rates := protected.Group("/rates")
	rateHandler := NewRateHandler(deps.Rates)
	rates.Get("/", anyRole, rateHandler.Lookup)
	rates.Post("/quote", anyRole, rateHandler.Quote)
	rates.Post("/tiers", managers, rateHandler.InsertTier)
	rates.Post("/schedules", managers, rateHandler.PublishSchedule)
	rates.Get("/:class/history", office, rateHandler.History)

	// Facturas
	bills := protected.Group("/bills")
	billHandler := NewBillHandler(deps.Orchestrator, deps.PDF)
	bills.Post("/", anyRole, billHandler.Create)
	bills.Post("/batch", office, billHandler.CreateBatch)
	bills.Get("/due", office, billHandler.ListDue)
	bills.Get("/:id", anyRole, billHandler.GetByID)
	bills.Get("/:id/pdf", anyRole, billHandler.GetPDF)
	bills.Get("/:id/payments", anyRole, billHandler.ListPayments)
	bills.Post("/:id/send", office, billHandler.MarkSent)
	bills.Post("/:id/overdue", office, billHandler.MarkOverdue)
	bills.Post("/:id/void", managers, billHandler.Void)

	// Pagos
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.Orchestrator)
	payments.Post("/", office, paymentHandler.Apply)

	// Cartera por cliente
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.Orchestrator)
	customers.Get("/:id/bills", anyRole, customerHandler.Statement)
	customers.Get("/:id/payments", anyRole, customerHandler.PaymentHistory)
}
