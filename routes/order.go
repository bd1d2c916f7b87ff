package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/config"
	invoiceControllers "github.com/Myakey/onlineShop-sub000/controllers/invoice"
	orderControllers "github.com/Myakey/onlineShop-sub000/controllers/order"
	paymentControllers "github.com/Myakey/onlineShop-sub000/controllers/payment"
	"github.com/Myakey/onlineShop-sub000/mailer"
	"github.com/Myakey/onlineShop-sub000/middleware"
)

// SetupOrderRoutes registers the order, payment, and invoice endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, m *mailer.Mailer, cfg *config.Config) {
	orders := r.Group("/api/orders")
	{
		// Token lookup is public: the token itself is the credential, so
		// guests can track an order from the invoice QR code.
		orders.GET("/track/:token", orderControllers.GetOrderByTokenHandler(db))

		protected := orders.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			protected.POST("", orderControllers.CreateOrderHandler(db))
			protected.GET("", orderControllers.GetUserOrdersHandler(db))
			protected.GET("/number/:number", orderControllers.GetOrderByNumberHandler(db))
			protected.PUT("/:orderID/cancel", orderControllers.CancelOrderHandler(db))
		}

		admin := orders.Group("")
		admin.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin())
		{
			admin.GET("/all", orderControllers.GetAllOrdersHandler(db))
			admin.GET("/export", orderControllers.ExportOrdersToExcel(db))
			admin.GET("/ws", orderControllers.OrderWebSocketHandler)
			admin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		}
	}

	payments := r.Group("/api/payments")
	payments.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		payments.POST("/:paymentID/upload-proof", paymentControllers.UploadProofHandler(db, cfg.UploadsDir))

		admin := payments.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.PUT("/:paymentID/status", paymentControllers.UpdatePaymentStatusHandler(db, m))
		}
	}

	invoices := r.Group("/api/invoices")
	invoices.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		invoices.GET("/order/:orderID", invoiceControllers.GetInvoiceByOrderHandler(db))
		invoices.GET("/:invoiceID/pdf", invoiceControllers.InvoicePDFHandler(db, cfg.PublicURL))
	}
}
