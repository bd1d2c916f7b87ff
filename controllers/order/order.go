package orderControllers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/middleware"
	"github.com/Myakey/onlineShop-sub000/models"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type PaymentDataInput struct {
	PaymentChannel         string `json:"payment_channel"`
	SplitTransferAmount    int64  `json:"split_transfer_amount"`
	SplitMarketplaceAmount int64  `json:"split_marketplace_amount"`
	MarketplacePlatform    string `json:"marketplace_platform"`
	MarketplaceLink        string `json:"marketplace_link"`
}

type CreateOrderRequest struct {
	AddressID       uint             `json:"address_id"`
	Items           []OrderItemInput `json:"items"`
	ShippingCost    int64            `json:"shipping_cost"`
	VoucherDiscount int64            `json:"voucher_discount"`
	Notes           string           `json:"notes"`
	PaymentData     PaymentDataInput `json:"payment_data"`
}

// -------- Helpers --------

// generateOrderNumber builds a unique, human-quotable order number.
func generateOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// generateSecureToken returns the opaque identifier used for customer-facing
// order URLs instead of the sequential id.
func generateSecureToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// tokenAttempts bounds retries when a generated secure token or order number
// collides with an existing row. The unique constraint is the authority: the
// insert fails with gorm.ErrDuplicatedKey and the whole transaction is retried
// with fresh identifiers.
const tokenAttempts = 5

// -------- Core Logic --------

// CreateOrder validates the checkout request and inserts the order, its item
// snapshots and its payment rows in one transaction. Prices are re-derived
// from the product table; client-supplied prices are ignored. Stock is
// checked for availability but NOT decremented here — the decrement happens
// at payment confirmation.
func CreateOrder(db *gorm.DB, userID uint, req CreateOrderRequest) (*models.Order, error) {
	if req.AddressID == 0 {
		return nil, apperr.Validation("address_id is required")
	}
	if len(req.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.ProductID == 0 || item.Quantity < 1 {
			return nil, apperr.Validation("each item needs a product_id and a quantity of at least 1")
		}
	}
	channel := models.PaymentChannelChoice(req.PaymentData.PaymentChannel)
	switch channel {
	case models.ChannelFullTransfer, models.ChannelSplitPayment, models.ChannelMarketplace:
	case "":
		return nil, apperr.Validation("payment_data.payment_channel is required")
	default:
		return nil, apperr.Validation("unknown payment channel: " + req.PaymentData.PaymentChannel)
	}
	if req.ShippingCost < 0 || req.VoucherDiscount < 0 {
		return nil, apperr.Validation("shipping_cost and voucher_discount must not be negative")
	}

	var address models.Address
	if err := db.First(&address, req.AddressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("address not found")
		}
		return nil, apperr.Wrap(err, "failed to load address")
	}
	if address.UserID != userID {
		return nil, apperr.Forbidden("address does not belong to you")
	}

	var order *models.Order
	for attempt := 0; attempt < tokenAttempts; attempt++ {
		token, err := generateSecureToken()
		if err != nil {
			return nil, apperr.Wrap(err, "failed to generate secure token")
		}
		order = nil

		err = db.Transaction(func(tx *gorm.DB) error {
			var subtotal int64
			items := make([]models.OrderItem, 0, len(req.Items))

			for _, item := range req.Items {
				var product models.Product
				if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return apperr.NotFound(fmt.Sprintf("product %d not found", item.ProductID))
					}
					return apperr.Wrap(err, "failed to load product")
				}
				if product.Stock < item.Quantity {
					return apperr.InsufficientStock("insufficient stock for product: " + product.Name)
				}

				lineSubtotal := product.Price * int64(item.Quantity)
				subtotal += lineSubtotal
				items = append(items, models.OrderItem{
					ProductID:   product.ID,
					ProductName: product.Name,
					UnitPrice:   product.Price,
					Quantity:    item.Quantity,
					Subtotal:    lineSubtotal,
				})
			}

			shippingCost := req.ShippingCost
			if channel == models.ChannelMarketplace {
				// Marketplace handoff never carries a shipping line.
				shippingCost = 0
			}
			total := subtotal + shippingCost - req.VoucherDiscount
			if total < 0 {
				return apperr.Validation("voucher discount exceeds order total")
			}

			payments, err := buildPayments(channel, req.PaymentData, subtotal, shippingCost, total)
			if err != nil {
				return err
			}

			newOrder := models.Order{
				UserID:          userID,
				AddressID:       address.ID,
				OrderNumber:     generateOrderNumber(),
				SecureToken:     token,
				Status:          models.OrderStatusPending,
				Notes:           req.Notes,
				Subtotal:        subtotal,
				ShippingCost:    shippingCost,
				VoucherDiscount: req.VoucherDiscount,
				TotalAmount:     total,
				Items:           items,
				Payments:        payments,
			}
			if err := tx.Create(&newOrder).Error; err != nil {
				return err
			}
			order = &newOrder
			return nil
		})

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			if apperr.KindOf(err) == apperr.KindInternal {
				return nil, apperr.Wrap(err, "failed to create order")
			}
			return nil, err
		}
		return order, nil
	}
	return nil, apperr.Wrap(errors.New("secure token collisions exhausted retries"), "failed to create order")
}

// -------- Handlers --------

func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body: " + err.Error()})
			return
		}

		order, err := CreateOrder(db, userID, req)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		Broadcast("order_created", *order)
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
	}
}

func loadOrder(db *gorm.DB, where string, args ...interface{}) (*models.Order, error) {
	var order models.Order
	err := db.
		Preload("Items").
		Preload("Payments").
		Preload("Address").
		Preload("User").
		Where(where, args...).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load order")
	}
	return &order, nil
}

func requireOwnership(c *gin.Context, order *models.Order) bool {
	userID, _ := middleware.UserID(c)
	role, _ := c.Get("role")
	if order.UserID != userID && role != string(models.RoleAdmin) {
		apperr.Respond(c, apperr.Forbidden("you do not have access to this order"))
		return false
	}
	return true
}

// GET /api/orders/track/:token
// The secure token is unguessable and acts as the credential, so no auth
// check here: anyone holding the token (say, from the invoice QR) may track.
func GetOrderByTokenHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := loadOrder(db, "secure_token = ?", c.Param("token"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

// GET /api/orders/number/:number
func GetOrderByNumberHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := loadOrder(db, "order_number = ?", c.Param("number"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if !requireOwnership(c, order) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

// GET /api/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Preload("Payments").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to fetch orders"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// GET /api/orders/all (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Payments").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to fetch orders"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}
