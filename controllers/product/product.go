package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/models"
)

type ProductInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Weight      int    `json:"weight" binding:"required,min=1"`
	Stock       int    `json:"stock" binding:"min=0"`
	Image       string `json:"image"`
	CategoryIDs []uint `json:"category_ids"`
}

// GET /api/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Categories")
		if category := c.Query("category"); category != "" {
			query = query.Joins("JOIN product_categories pc ON pc.product_id = products.id").
				Joins("JOIN categories ON categories.id = pc.category_id").
				Where("categories.name = ?", category)
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to fetch products"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
	}
}

// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Categories").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("product not found"))
				return
			}
			apperr.Respond(c, apperr.Wrap(err, "failed to load product"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}

func resolveCategories(db *gorm.DB, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	if err := db.Find(&categories, ids).Error; err != nil {
		return nil, apperr.Wrap(err, "failed to load categories")
	}
	if len(categories) != len(ids) {
		return nil, apperr.Validation("one or more categories do not exist")
	}
	return categories, nil
}

// POST /api/products (admin)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		categories, err := resolveCategories(db, input.CategoryIDs)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Weight:      input.Weight,
			Stock:       input.Stock,
			Image:       input.Image,
			Categories:  categories,
		}
		if err := db.Create(&product).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to create product"))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
	}
}

// PUT /api/products/:id (admin)
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("product not found"))
				return
			}
			apperr.Respond(c, apperr.Wrap(err, "failed to load product"))
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		categories, err := resolveCategories(db, input.CategoryIDs)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		product.Name = input.Name
		product.Description = input.Description
		product.Price = input.Price
		product.Weight = input.Weight
		product.Stock = input.Stock
		product.Image = input.Image

		if err := db.Save(&product).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to update product"))
			return
		}
		if categories != nil {
			if err := db.Model(&product).Association("Categories").Replace(categories); err != nil {
				apperr.Respond(c, apperr.Wrap(err, "failed to update categories"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}

// DELETE /api/products/:id (admin)
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			apperr.Respond(c, apperr.Wrap(result.Error, "failed to delete product"))
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("product not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
	}
}
