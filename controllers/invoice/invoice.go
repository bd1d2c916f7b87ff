package invoiceControllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/middleware"
	"github.com/Myakey/onlineShop-sub000/models"
)

func loadInvoiceWithOrder(db *gorm.DB, where string, args ...interface{}) (*models.Invoice, *models.Order, error) {
	var invoice models.Invoice
	if err := db.Where(where, args...).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("invoice not found")
		}
		return nil, nil, apperr.Wrap(err, "failed to load invoice")
	}

	var order models.Order
	if err := db.Preload("Items").Preload("User").Preload("Address").
		First(&order, invoice.OrderID).Error; err != nil {
		return nil, nil, apperr.Wrap(err, "failed to load order")
	}
	return &invoice, &order, nil
}

func checkAccess(c *gin.Context, order *models.Order) bool {
	userID, _ := middleware.UserID(c)
	role, _ := c.Get("role")
	if order.UserID != userID && role != string(models.RoleAdmin) {
		apperr.Respond(c, apperr.Forbidden("you do not have access to this invoice"))
		return false
	}
	return true
}

// GET /api/invoices/order/:orderID
func GetInvoiceByOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoice, order, err := loadInvoiceWithOrder(db, "order_id = ?", c.Param("orderID"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if !checkAccess(c, order) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": invoice})
	}
}

// GET /api/invoices/:invoiceID/pdf
// Renders the invoice as a PDF with a QR code pointing at the customer
// tracking page for the order's secure token.
func InvoicePDFHandler(db *gorm.DB, publicURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoice, order, err := loadInvoiceWithOrder(db, "id = ?", c.Param("invoiceID"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if !checkAccess(c, order) {
			return
		}

		trackingURL := fmt.Sprintf("%s/orders/track/%s", publicURL, order.SecureToken)
		qrPNG, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to generate QR code"))
			return
		}

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(40, 10, "Invoice "+invoice.Number)
		pdf.Ln(12)

		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Order: %s", order.OrderNumber))
		pdf.Ln(6)
		pdf.Cell(0, 8, fmt.Sprintf("Customer: %s <%s>", order.User.Name, order.User.Email))
		pdf.Ln(6)
		pdf.Cell(0, 8, fmt.Sprintf("Ship to: %s, %s, %s %s",
			order.Address.Street, order.Address.District, order.Address.City, order.Address.PostalCode))
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(90, 7, "Item")
		pdf.Cell(25, 7, "Qty")
		pdf.Cell(35, 7, "Unit Price")
		pdf.Cell(35, 7, "Subtotal")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 11)
		for _, item := range order.Items {
			pdf.Cell(90, 7, item.ProductName)
			pdf.Cell(25, 7, fmt.Sprintf("%d", item.Quantity))
			pdf.Cell(35, 7, fmt.Sprintf("%d", item.UnitPrice))
			pdf.Cell(35, 7, fmt.Sprintf("%d", item.Subtotal))
			pdf.Ln(7)
		}
		pdf.Ln(5)

		for _, line := range []struct {
			label string
			value int64
		}{
			{"Subtotal", invoice.Subtotal},
			{"Shipping", invoice.ShippingCost},
			{"Discount", -invoice.Discount},
			{"Tax", invoice.Tax},
			{"Grand total", invoice.GrandTotal},
			{"Amount paid", invoice.AmountPaid},
			{"Balance due", invoice.BalanceDue},
		} {
			pdf.Cell(115, 7, "")
			pdf.Cell(35, 7, line.label)
			pdf.Cell(35, 7, fmt.Sprintf("%d", line.value))
			pdf.Ln(7)
		}

		imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("tracking-qr", imageOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("tracking-qr", 160, 20, 35, 35, false, imageOpts, 0, "")

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to render PDF"))
			return
		}

		c.Header("Content-Disposition", "attachment; filename=invoice-"+invoice.Number+".pdf")
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
