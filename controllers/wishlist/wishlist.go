package wishlistControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/middleware"
	"github.com/Myakey/onlineShop-sub000/models"
)

type WishlistInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GET /api/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var items []models.WishlistItem
		if err := db.Preload("Product").Where("user_id = ?", userID).
			Order("created_at DESC").Find(&items).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to fetch wishlist"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
	}
}

// POST /api/wishlist
func AddWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input WishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("product not found"))
				return
			}
			apperr.Respond(c, apperr.Wrap(err, "failed to load product"))
			return
		}

		item := models.WishlistItem{UserID: userID, ProductID: input.ProductID}
		if err := db.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apperr.Respond(c, apperr.Conflict("product is already on your wishlist"))
				return
			}
			apperr.Respond(c, apperr.Wrap(err, "failed to add wishlist item"))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
	}
}

// DELETE /api/wishlist/:productID
func DeleteWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		result := db.Where("user_id = ? AND product_id = ?", userID, c.Param("productID")).
			Delete(&models.WishlistItem{})
		if result.Error != nil {
			apperr.Respond(c, apperr.Wrap(result.Error, "failed to delete wishlist item"))
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("wishlist item not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Wishlist item deleted"})
	}
}
