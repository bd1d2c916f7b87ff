package shippingControllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/courier"
	"github.com/Myakey/onlineShop-sub000/middleware"
	"github.com/Myakey/onlineShop-sub000/models"
)

// preferredCouriers is the whitelist applied to the raw provider response.
var preferredCouriers = []string{"jne", "jnt", "sicepat", "anteraja"}

// serviceKeywords matches the regular and premium service tiers we offer at
// checkout; everything else (trucking, cargo, same-day) is filtered out.
var serviceKeywords = []string{"reg", "ez", "std", "best", "yes"}

const rawFallbackCount = 5

type ShippingItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CalculateShippingRequest struct {
	AddressID uint                `json:"address_id" binding:"required"`
	Items     []ShippingItemInput `json:"items" binding:"required,min=1,dive"`
}

// FilterOptions narrows the raw courier list to the preferred couriers and
// service tiers, falling back to the first few raw options when the filter
// empties the set. The result is always sorted cheapest first.
func FilterOptions(options []courier.CostOption) []courier.CostOption {
	filtered := make([]courier.CostOption, 0, len(options))
	for _, opt := range options {
		if !contains(preferredCouriers, opt.Courier) {
			continue
		}
		service := strings.ToLower(opt.Service)
		for _, kw := range serviceKeywords {
			if strings.Contains(service, kw) {
				filtered = append(filtered, opt)
				break
			}
		}
	}
	if len(filtered) == 0 {
		n := len(options)
		if n > rawFallbackCount {
			n = rawFallbackCount
		}
		filtered = append(filtered, options[:n]...)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Cost < filtered[j].Cost })
	return filtered
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// CacheKey fingerprints a quote request by destination address and the sorted
// product:quantity list, so unchanged carts reuse the cached quote.
func CacheKey(addressID uint, items []ShippingItemInput) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%d:%d", item.ProductID, item.Quantity))
	}
	sort.Strings(parts)
	return fmt.Sprintf("shipping:cost:%d:%s", addressID, strings.Join(parts, ","))
}

func cachedOptions(ctx context.Context, rdb *rd.Client, key string) ([]courier.CostOption, bool) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var options []courier.CostOption
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, false
	}
	return options, true
}

// POST /api/shipping/cost
func CalculateShippingHandler(db *gorm.DB, rdb *rd.Client, client *courier.Client, originID int, cacheTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req CalculateShippingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var address models.Address
		if err := db.First(&address, req.AddressID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("address not found"))
				return
			}
			apperr.Respond(c, apperr.Wrap(err, "failed to load address"))
			return
		}
		if address.UserID != userID {
			apperr.Respond(c, apperr.Forbidden("address does not belong to you"))
			return
		}

		destinationID, ok := courier.DistrictID(address.District)
		if !ok {
			apperr.Respond(c, apperr.Validation("no courier coverage for district: "+address.District))
			return
		}

		key := CacheKey(req.AddressID, req.Items)
		if options, hit := cachedOptions(c.Request.Context(), rdb, key); hit {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": options, "cached": true})
			return
		}

		totalWeight := 0
		for _, item := range req.Items {
			var product models.Product
			if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					apperr.Respond(c, apperr.NotFound(fmt.Sprintf("product %d not found", item.ProductID)))
					return
				}
				apperr.Respond(c, apperr.Wrap(err, "failed to load product"))
				return
			}
			totalWeight += product.Weight * item.Quantity
		}
		if totalWeight <= 0 {
			apperr.Respond(c, apperr.Validation("cart has no shippable weight"))
			return
		}

		raw, err := client.DomesticCost(c.Request.Context(), originID, destinationID, totalWeight, preferredCouriers)
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "courier cost lookup failed"))
			return
		}
		options := FilterOptions(raw)

		if data, err := json.Marshal(options); err == nil {
			if err := rdb.Set(c.Request.Context(), key, data, cacheTTL).Err(); err != nil {
				log.Printf("failed to cache shipping quote: %v", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": options, "cached": false})
	}
}
