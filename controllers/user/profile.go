package userControllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/middleware"
	"github.com/Myakey/onlineShop-sub000/models"
)

type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// GET /auth/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var user models.User
		if err := db.Preload("Addresses").First(&user, userID).Error; err != nil {
			apperr.Respond(c, apperr.NotFound("user not found"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}

// PUT /auth/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			apperr.Respond(c, apperr.NotFound("user not found"))
			return
		}

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				apperr.Respond(c, apperr.Wrap(err, "failed to update profile"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}

// POST /auth/upload-profile-image
func UploadProfileImage(db *gorm.DB, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "image file is required"})
			return
		}

		filename := uuid.NewString() + filepath.Ext(file.Filename)
		dest := filepath.Join(uploadsDir, "profiles", filename)
		if err := c.SaveUploadedFile(file, dest); err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to save image"))
			return
		}

		imageURL := "/uploads/profiles/" + filename
		if err := db.Model(&models.User{}).Where("id = ?", userID).
			Update("profile_image", imageURL).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to update profile image"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"profile_image": imageURL}})
	}
}
