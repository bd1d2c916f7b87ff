package routes

import (
	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/config"
	shippingControllers "github.com/Myakey/onlineShop-sub000/controllers/shipping"
	"github.com/Myakey/onlineShop-sub000/courier"
	"github.com/Myakey/onlineShop-sub000/middleware"
)

// SetupShippingRoutes registers the shipping-cost calculation endpoint.
func SetupShippingRoutes(r *gin.Engine, db *gorm.DB, rdb *rd.Client, client *courier.Client, cfg *config.Config) {
	shipping := r.Group("/api/shipping")
	shipping.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		handler := shippingControllers.CalculateShippingHandler(db, rdb, client, cfg.CourierOriginID, cfg.ShippingCacheTTL)
		shipping.POST("/cost", handler)
		// Older clients still call the verbose path.
		shipping.POST("/calculate-shipping", handler)
	}
}
