package paymentControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	orderControllers "github.com/Myakey/onlineShop-sub000/controllers/order"
	"github.com/Myakey/onlineShop-sub000/mailer"
	"github.com/Myakey/onlineShop-sub000/middleware"
	"github.com/Myakey/onlineShop-sub000/models"
)

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func loadPayment(db *gorm.DB, id string) (*models.Payment, error) {
	var payment models.Payment
	if err := db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("payment not found")
		}
		return nil, apperr.Wrap(err, "failed to load payment")
	}
	return &payment, nil
}

// decrementStock takes stock for every order item with a conditional update,
// so availability check and decrement are one atomic statement. Any shortage
// aborts the surrounding transaction, leaving no partial decrements.
func decrementStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		var product models.Product
		if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(fmt.Sprintf("product %d no longer exists", item.ProductID))
			}
			return apperr.Wrap(err, "failed to load product")
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
		if res.Error != nil {
			return apperr.Wrap(res.Error, "failed to decrement stock")
		}
		if res.RowsAffected == 0 {
			return apperr.InsufficientStock("insufficient stock for product: " + product.Name)
		}
	}
	return nil
}

// applyToInvoice creates the order's invoice on first confirmation, or adds
// the payment amount to the running totals of the existing one.
func applyToInvoice(tx *gorm.DB, order *models.Order, payment *models.Payment) (*models.Invoice, error) {
	var invoice models.Invoice
	err := tx.Where("order_id = ?", order.ID).First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		invoice = models.Invoice{
			OrderID:      order.ID,
			Number:       "INV" + order.OrderNumber[3:], // ORD-... -> INV-...
			Subtotal:     order.Subtotal,
			ShippingCost: order.ShippingCost,
			Discount:     order.VoucherDiscount,
			GrandTotal:   order.TotalAmount,
		}
		err = nil
	} else if err != nil {
		return nil, apperr.Wrap(err, "failed to load invoice")
	}

	invoice.AmountPaid += payment.Amount
	invoice.BalanceDue = invoice.GrandTotal - invoice.AmountPaid
	if invoice.BalanceDue <= 0 {
		invoice.Status = models.InvoiceStatusPaid
	} else {
		invoice.Status = models.InvoiceStatusPartial
	}

	if err := tx.Save(&invoice).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to save invoice")
	}
	return &invoice, nil
}

// ConfirmPayment performs the unpaid -> paid transition with all its side
// effects in a single transaction: stock decrement (guarded by the order's
// StockTaken marker, so neither the second leg of a split payment nor an
// order an admin already moved to confirmed skips or double-takes stock),
// order advancing to confirmed, and invoice creation/accumulation.
func ConfirmPayment(db *gorm.DB, paymentID string) (*models.Payment, *models.Order, *models.Invoice, error) {
	var (
		payment *models.Payment
		order   models.Order
		invoice *models.Invoice
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		payment, err = loadPayment(tx, paymentID)
		if err != nil {
			return err
		}
		if payment.Status == models.PaymentStatusPaid {
			return apperr.Conflict("payment is already confirmed")
		}
		if payment.Status != models.PaymentStatusUnpaid {
			return apperr.Conflict(fmt.Sprintf("payment in status %q cannot be confirmed", payment.Status))
		}

		if err := tx.Preload("Items").Preload("User").Preload("Address").
			First(&order, payment.OrderID).Error; err != nil {
			return apperr.Wrap(err, "failed to load order")
		}

		if !order.StockTaken {
			if err := decrementStock(tx, order.Items); err != nil {
				return err
			}
			order.StockTaken = true
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
				Update("stock_taken", true).Error; err != nil {
				return apperr.Wrap(err, "failed to mark stock taken")
			}
		}
		if order.Status == models.OrderStatusPending {
			order.Status = models.OrderStatusConfirmed
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
				Update("status", models.OrderStatusConfirmed).Error; err != nil {
				return apperr.Wrap(err, "failed to update order status")
			}
		}

		now := time.Now()
		payment.Status = models.PaymentStatusPaid
		payment.PaidAt = &now

		invoice, err = applyToInvoice(tx, &order, payment)
		if err != nil {
			return err
		}
		payment.InvoiceID = &invoice.ID

		if err := tx.Save(payment).Error; err != nil {
			return apperr.Wrap(err, "failed to save payment")
		}
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return payment, &order, invoice, nil
}

func invoiceEmailBody(order *models.Order, invoice *models.Invoice) string {
	status := "PARTIALLY PAID"
	if invoice.Status == models.InvoiceStatusPaid {
		status = "PAID IN FULL"
	}
	return fmt.Sprintf(
		"Hi %s,\n\nWe received your payment for order %s.\n\n"+
			"Invoice %s\nSubtotal: %d\nShipping: %d\nDiscount: %d\nGrand total: %d\n"+
			"Paid so far: %d\nBalance due: %d\nStatus: %s\n\nThank you for shopping with us.",
		order.User.Name, order.OrderNumber, invoice.Number,
		invoice.Subtotal, invoice.ShippingCost, invoice.Discount, invoice.GrandTotal,
		invoice.AmountPaid, invoice.BalanceDue, status,
	)
}

// PUT /api/payments/:paymentID/status (admin)
func UpdatePaymentStatusHandler(db *gorm.DB, m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		switch models.PaymentStatus(req.Status) {
		case models.PaymentStatusPaid:
			payment, order, invoice, err := ConfirmPayment(db, c.Param("paymentID"))
			if err != nil {
				apperr.Respond(c, err)
				return
			}

			// Email failure must never roll back a confirmed payment.
			if err := m.Send(order.User.Email, "Invoice "+invoice.Number, invoiceEmailBody(order, invoice)); err != nil {
				log.Printf("failed to send invoice email for order %s: %v", order.OrderNumber, err)
			}
			orderControllers.Broadcast("payment_confirmed", *order)

			c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
				"payment": payment,
				"invoice": invoice,
			}})

		case models.PaymentStatusFailed, models.PaymentStatusRefunded:
			payment, err := loadPayment(db, c.Param("paymentID"))
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			if payment.Status != models.PaymentStatusUnpaid {
				apperr.Respond(c, apperr.Conflict(fmt.Sprintf("payment in status %q cannot move to %q", payment.Status, req.Status)))
				return
			}
			payment.Status = models.PaymentStatus(req.Status)
			if err := db.Save(payment).Error; err != nil {
				apperr.Respond(c, apperr.Wrap(err, "failed to update payment"))
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": payment})

		default:
			apperr.Respond(c, apperr.Validation("invalid payment status: "+req.Status))
		}
	}
}

// POST /api/payments/:paymentID/upload-proof
func UploadProofHandler(db *gorm.DB, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		payment, err := loadPayment(db, c.Param("paymentID"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var order models.Order
		if err := db.First(&order, payment.OrderID).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to load order"))
			return
		}
		if order.UserID != userID {
			apperr.Respond(c, apperr.Forbidden("you do not have access to this payment"))
			return
		}
		if payment.Status != models.PaymentStatusUnpaid {
			apperr.Respond(c, apperr.Conflict("proof can only be uploaded for unpaid payments"))
			return
		}

		file, err := c.FormFile("proof")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "proof file is required"})
			return
		}

		filename := uuid.NewString() + filepath.Ext(file.Filename)
		dest := filepath.Join(uploadsDir, "proofs", filename)
		if err := c.SaveUploadedFile(file, dest); err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to save proof"))
			return
		}

		payment.ProofImage = "/uploads/proofs/" + filename
		if err := db.Save(payment).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to update payment"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": payment})
	}
}
