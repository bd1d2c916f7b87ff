package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/middleware"
	"github.com/Myakey/onlineShop-sub000/models"
)

type AddressInput struct {
	Label         string `json:"label"`
	RecipientName string `json:"recipient_name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Street        string `json:"street" binding:"required"`
	District      string `json:"district" binding:"required"`
	City          string `json:"city" binding:"required"`
	Province      string `json:"province" binding:"required"`
	PostalCode    string `json:"postal_code" binding:"required"`
	IsDefault     bool   `json:"is_default"`
}

func loadOwnAddress(db *gorm.DB, c *gin.Context) (*models.Address, error) {
	userID, _ := middleware.UserID(c)

	var address models.Address
	if err := db.First(&address, "id = ?", c.Param("addressID")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("address not found")
		}
		return nil, apperr.Wrap(err, "failed to load address")
	}
	if address.UserID != userID {
		return nil, apperr.Forbidden("address does not belong to you")
	}
	return &address, nil
}

// clearDefault unsets the default flag on the user's other addresses, so at
// most one address is the default at a time.
func clearDefault(db *gorm.DB, userID uint) error {
	return db.Model(&models.Address{}).Where("user_id = ?", userID).
		Update("is_default", false).Error
}

// GET /auth/addresses
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).
			Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to fetch addresses"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": addresses})
	}
}

// POST /auth/addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		if input.IsDefault {
			if err := clearDefault(db, userID); err != nil {
				apperr.Respond(c, apperr.Wrap(err, "failed to update default address"))
				return
			}
		}

		address := models.Address{
			UserID:        userID,
			Label:         input.Label,
			RecipientName: input.RecipientName,
			Phone:         input.Phone,
			Street:        input.Street,
			District:      input.District,
			City:          input.City,
			Province:      input.Province,
			PostalCode:    input.PostalCode,
			IsDefault:     input.IsDefault,
		}
		if err := db.Create(&address).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to create address"))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": address})
	}
}

// PUT /auth/addresses/:addressID
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		address, err := loadOwnAddress(db, c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		if input.IsDefault && !address.IsDefault {
			if err := clearDefault(db, address.UserID); err != nil {
				apperr.Respond(c, apperr.Wrap(err, "failed to update default address"))
				return
			}
		}

		address.Label = input.Label
		address.RecipientName = input.RecipientName
		address.Phone = input.Phone
		address.Street = input.Street
		address.District = input.District
		address.City = input.City
		address.Province = input.Province
		address.PostalCode = input.PostalCode
		address.IsDefault = input.IsDefault

		if err := db.Save(address).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to update address"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": address})
	}
}

// DELETE /auth/addresses/:addressID
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		address, err := loadOwnAddress(db, c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if err := db.Delete(address).Error; err != nil {
			apperr.Respond(c, apperr.Wrap(err, "failed to delete address"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address deleted"})
	}
}
