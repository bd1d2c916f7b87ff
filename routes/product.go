package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/config"
	productControllers "github.com/Myakey/onlineShop-sub000/controllers/product"
	reviewControllers "github.com/Myakey/onlineShop-sub000/controllers/review"
	"github.com/Myakey/onlineShop-sub000/middleware"
)

// SetupProductRoutes registers the product catalog and review endpoints.
// Reads are public; catalog writes are admin-only.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	products := r.Group("/api/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))

		admin := products.Group("")
		admin.Use(middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin())
		{
			admin.POST("", productControllers.CreateProduct(db))
			admin.PUT("/:id", productControllers.UpdateProduct(db))
			admin.DELETE("/:id", productControllers.DeleteProduct(db))
		}
	}

	reviews := r.Group("/api/reviews")
	{
		reviews.GET("/product/:productID", reviewControllers.GetProductReviews(db))

		protected := reviews.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			protected.POST("", reviewControllers.CreateReview(db))
			protected.DELETE("/:reviewID", reviewControllers.DeleteReview(db))
		}
	}
}
