package reviewControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/middleware"
	"github.com/Myakey/onlineShop-sub000/models"
)

type ReviewInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// GET /api/reviews/product/:productID
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		if err := db.Preload("User").Where("product_id = ?", c.Param("productID")).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to fetch reviews"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews})
	}
}

// POST /api/reviews
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input ReviewInput
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

		review := models.Review{
			UserID:    userID,
			ProductID: input.ProductID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}
		if err := db.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apperr.Respond(c, apperr.Conflict("you already reviewed this product"))
				return
			}
			apperr.Respond(c, apperr.Wrap(err, "failed to create review"))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": review})
	}
}

// DELETE /api/reviews/:reviewID
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		role, _ := c.Get("role")

		var review models.Review
		if err := db.First(&review, "id = ?", c.Param("reviewID")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("review not found"))
				return
			}
			apperr.Respond(c, apperr.Wrap(err, "failed to load review"))
			return
		}
		if review.UserID != userID && role != string(models.RoleAdmin) {
			apperr.Respond(c, apperr.Forbidden("you can only delete your own reviews"))
			return
		}

		if err := db.Delete(&review).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to delete review"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
	}
}
