package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/config"
	cartControllers "github.com/Myakey/onlineShop-sub000/controllers/cart"
	wishlistControllers "github.com/Myakey/onlineShop-sub000/controllers/wishlist"
	"github.com/Myakey/onlineShop-sub000/middleware"
)

// SetupCartRoutes registers the cart and wishlist endpoints. Everything here
// is scoped to the authenticated user.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	cart := r.Group("/api/cart")
	cart.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("", cartControllers.AddCartItem(db))
		cart.PUT("/:productID", cartControllers.UpdateCartItem(db))
		cart.DELETE("/:productID", cartControllers.DeleteCartItem(db))
		cart.DELETE("", cartControllers.ClearCart(db))
	}

	wishlist := r.Group("/api/wishlist")
	wishlist.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		wishlist.GET("", wishlistControllers.GetWishlist(db))
		wishlist.POST("", wishlistControllers.AddWishlistItem(db))
		wishlist.DELETE("/:productID", wishlistControllers.DeleteWishlistItem(db))
	}
}
