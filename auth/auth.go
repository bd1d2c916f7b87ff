package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/config"
	"github.com/Myakey/onlineShop-sub000/mailer"
	"github.com/Myakey/onlineShop-sub000/models"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// POST /auth/register
func Register(db *gorm.DB, rdb *rd.Client, m *mailer.Mailer, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var existing models.User
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
			return
		}

		user := models.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			Name:         req.Name,
			Phone:        req.Phone,
			Role:         models.RoleCustomer,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
			return
		}

		otp := GenerateOTP(6)
		if err := storeOTP(c.Request.Context(), rdb, user.Email, otp, cfg.OTPTTL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store verification code"})
			return
		}
		if err := m.Send(user.Email, "Email Verification", "Your verification code is: "+otp); err != nil {
			log.Printf("failed to send OTP email to %s: %v", user.Email, err)
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registered, check your email for the verification code"})
	}
}

// POST /auth/verify-email
func VerifyEmail(db *gorm.DB, rdb *rd.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		ok, err := checkOTP(c.Request.Context(), rdb, req.Email, req.OTP)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired verification code"})
			return
		}

		if err := db.Model(&models.User{}).Where("email = ?", req.Email).
			Update("email_verified", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to verify user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified"})
	}
}

// POST /auth/resend-otp
func ResendOTP(db *gorm.DB, rdb *rd.Client, m *mailer.Mailer, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		if user.EmailVerified {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already verified"})
			return
		}

		otp := GenerateOTP(6)
		if err := storeOTP(c.Request.Context(), rdb, user.Email, otp, cfg.OTPTTL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store verification code"})
			return
		}
		if err := m.Send(user.Email, "Email Verification", "Your verification code is: "+otp); err != nil {
			log.Printf("failed to send OTP email to %s: %v", user.Email, err)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification code sent"})
	}
}

// POST /auth/login
func Login(db *gorm.DB, store *RefreshStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		if !user.EmailVerified {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Email not verified"})
			return
		}

		accessToken, err := IssueAccessToken(cfg.JWTSecret, &user, cfg.AccessTokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
			return
		}
		refreshToken, err := store.Issue(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate refresh token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"token":         accessToken,
				"refresh_token": refreshToken,
				"user":          user,
			},
		})
	}
}

// POST /auth/refresh
func Refresh(db *gorm.DB, store *RefreshStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		userID, err := store.Consume(c.Request.Context(), req.RefreshToken)
		if errors.Is(err, ErrRefreshTokenInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired refresh token"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User no longer exists"})
			return
		}

		accessToken, err := IssueAccessToken(cfg.JWTSecret, &user, cfg.AccessTokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
			return
		}
		refreshToken, err := store.Issue(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate refresh token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"token":         accessToken,
				"refresh_token": refreshToken,
			},
		})
	}
}

// POST /auth/logout
func Logout(store *RefreshStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err := store.Revoke(c.Request.Context(), req.RefreshToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
	}
}
