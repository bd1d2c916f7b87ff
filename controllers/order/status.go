package orderControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/middleware"
	"github.com/Myakey/onlineShop-sub000/models"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// forwardTransitions describes the allowed non-cancellation moves.
var forwardTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusConfirmed},
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing},
	models.OrderStatusProcessing: {models.OrderStatusShipped},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, next := range forwardTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// restoreStock puts back exactly the quantities of the order's items. Called
// when a paid order is cancelled, inside the cancelling transaction.
func restoreStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			return apperr.Wrap(err, "failed to restore stock")
		}
	}
	return nil
}

// cancelOrder cancels a pending or confirmed order inside one transaction.
// Paid payments flip to refunded, and stock is restored iff this order's
// quantities were actually decremented (the StockTaken marker). An order an
// admin moved to confirmed while its payments were still unpaid never had
// stock taken, so cancelling it must not inflate stock.
func cancelOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Preload("Items").
			Preload("Payments").
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order not found")
			}
			return apperr.Wrap(err, "failed to load order")
		}

		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusConfirmed {
			return apperr.Conflict(fmt.Sprintf("order in status %q cannot be cancelled", order.Status))
		}

		for i := range order.Payments {
			if order.Payments[i].Status == models.PaymentStatusPaid {
				order.Payments[i].Status = models.PaymentStatusRefunded
				if err := tx.Save(&order.Payments[i]).Error; err != nil {
					return apperr.Wrap(err, "failed to update payment")
				}
			}
		}
		if order.StockTaken {
			if err := restoreStock(tx, order.Items); err != nil {
				return err
			}
			order.StockTaken = false
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
				Update("stock_taken", false).Error; err != nil {
				return apperr.Wrap(err, "failed to clear stock marker")
			}
		}

		order.Status = models.OrderStatusCancelled
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusCancelled).Error; err != nil {
			return apperr.Wrap(err, "failed to cancel order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// PUT /api/orders/:orderID/cancel (owner)
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		order, err := loadOrder(db, "id = ?", c.Param("orderID"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if order.UserID != userID {
			apperr.Respond(c, apperr.Forbidden("you do not have access to this order"))
			return
		}

		cancelled, err := cancelOrder(db, order.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		Broadcast("order_cancelled", *cancelled)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": cancelled})
	}
}

// PUT /api/orders/:orderID/status (admin)
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		newStatus := models.OrderStatus(req.Status)

		order, err := loadOrder(db, "id = ?", c.Param("orderID"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		if newStatus == models.OrderStatusCancelled {
			cancelled, err := cancelOrder(db, order.ID)
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			Broadcast("order_status_changed", *cancelled)
			c.JSON(http.StatusOK, gin.H{"success": true, "data": cancelled})
			return
		}

		if !canTransition(order.Status, newStatus) {
			apperr.Respond(c, apperr.Validation(fmt.Sprintf("cannot move order from %q to %q", order.Status, newStatus)))
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", newStatus).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to update order status"))
			return
		}
		order.Status = newStatus
		Broadcast("order_status_changed", *order)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}
