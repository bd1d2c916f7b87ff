package routes

import (
	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/auth"
	"github.com/Myakey/onlineShop-sub000/config"
	"github.com/Myakey/onlineShop-sub000/courier"
	"github.com/Myakey/onlineShop-sub000/mailer"
)

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *rd.Client, m *mailer.Mailer, cfg *config.Config) {
	refreshStore := auth.NewRefreshStore(rdb, cfg.RefreshTokenTTL)
	courierClient := courier.NewClient(cfg.CourierAPIURL, cfg.CourierAPIKey)

	SetupAuthRoutes(r, db, rdb, refreshStore, m, cfg)
	SetupProductRoutes(r, db, cfg)
	SetupCartRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, m, cfg)
	SetupShippingRoutes(r, db, rdb, courierClient, cfg)
}
