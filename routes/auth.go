package routes

import (
	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/auth"
	"github.com/Myakey/onlineShop-sub000/config"
	userControllers "github.com/Myakey/onlineShop-sub000/controllers/user"
	"github.com/Myakey/onlineShop-sub000/mailer"
	"github.com/Myakey/onlineShop-sub000/middleware"
)

// SetupAuthRoutes registers all "/auth/*" endpoints: registration, OTP
// verification, login/refresh/logout, and the authenticated profile and
// address-book endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, rdb *rd.Client, store *auth.RefreshStore, m *mailer.Mailer, cfg *config.Config) {
	authGroup := r.Group("/auth")
	{
		limited := authGroup.Group("")
		limited.Use(middleware.RedisRateLimit(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow))
		{
			limited.POST("/register", auth.Register(db, rdb, m, cfg))
			limited.POST("/login", auth.Login(db, store, cfg))
			limited.POST("/resend-otp", auth.ResendOTP(db, rdb, m, cfg))
		}

		authGroup.POST("/verify-email", auth.VerifyEmail(db, rdb))
		authGroup.POST("/refresh", auth.Refresh(db, store, cfg))
		authGroup.POST("/logout", auth.Logout(store))

		protected := authGroup.Group("")
		protected.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			protected.GET("/profile", userControllers.GetProfile(db))
			protected.PUT("/profile", userControllers.UpdateProfile(db))
			protected.POST("/upload-profile-image", userControllers.UploadProfileImage(db, cfg.UploadsDir))

			protected.GET("/addresses", userControllers.GetAddresses(db))
			protected.POST("/addresses", userControllers.CreateAddress(db))
			protected.PUT("/addresses/:addressID", userControllers.UpdateAddress(db))
			protected.DELETE("/addresses/:addressID", userControllers.DeleteAddress(db))
		}
	}
}
