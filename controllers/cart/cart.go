package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/middleware"
	"github.com/Myakey/onlineShop-sub000/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// checkStock re-reads the live product stock; every cart mutation validates
// against it so a cart can never hold more than is available right now.
func checkStock(db *gorm.DB, productID uint, quantity int) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Wrap(err, "failed to load product")
	}
	if product.Stock < quantity {
		return nil, apperr.InsufficientStock("requested quantity exceeds available stock for: " + product.Name)
	}
	return &product, nil
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var items []models.CartItem
		if err := db.Preload("Product").Where("user_id = ?", userID).
			Order("added_at DESC").Find(&items).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to fetch cart"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
	}
}

// POST /api/cart
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		var item models.CartItem
		err := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&item).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.Wrap(err, "failed to fetch cart item"))
			return
		}

		newQuantity := input.Quantity
		if err == nil {
			newQuantity += item.Quantity
		}
		if _, err := checkStock(db, input.ProductID, newQuantity); err != nil {
			apperr.Respond(c, err)
			return
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{
				UserID:    userID,
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				apperr.Respond(c, apperr.Wrap(err, "failed to add item to cart"))
				return
			}
			c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
			return
		}

		item.Quantity = newQuantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to update cart item"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
	}
}

// PUT /api/cart/:productID
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input struct {
			Quantity int `json:"quantity" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		var item models.CartItem
		if err := db.Where("user_id = ? AND product_id = ?", userID, c.Param("productID")).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("cart item not found"))
				return
			}
			apperr.Respond(c, apperr.Wrap(err, "failed to fetch cart item"))
			return
		}

		if _, err := checkStock(db, item.ProductID, input.Quantity); err != nil {
			apperr.Respond(c, err)
			return
		}

		item.Quantity = input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to update cart item"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
	}
}

// DELETE /api/cart/:productID
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		result := db.Where("user_id = ? AND product_id = ?", userID, c.Param("productID")).
			Delete(&models.CartItem{})
		if result.Error != nil {
			apperr.Respond(c, apperr.Wrap(result.Error, "failed to delete cart item"))
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("cart item not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart item deleted"})
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to clear cart"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
	}
}
