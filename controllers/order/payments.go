package orderControllers

import (
	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/models"
)

func marketplaceType(platform string) (models.PaymentType, error) {
	switch platform {
	case "shopee":
		return models.PaymentTypeShopee, nil
	case "tiktok":
		return models.PaymentTypeTiktok, nil
	default:
		return "", apperr.Validation("marketplace_platform must be shopee or tiktok")
	}
}

// buildPayments maps the chosen payment channel to its payment rows.
// Invariants (enforced before any row is written):
//   - full_transfer: one bank-transfer row for the full total
//   - split_payment: transfer + marketplace amounts must equal the subtotal
//     exactly and both be positive; the shipping cost rides on the transfer row
//   - marketplace: one row for the subtotal only, and a non-empty listing link
func buildPayments(channel models.PaymentChannelChoice, data PaymentDataInput, subtotal, shippingCost, total int64) ([]models.Payment, error) {
	switch channel {
	case models.ChannelFullTransfer:
		return []models.Payment{{
			Amount:  total,
			Type:    models.PaymentTypeTransfer,
			Channel: models.PaymentChannelBankTransfer,
			Status:  models.PaymentStatusUnpaid,
		}}, nil

	case models.ChannelSplitPayment:
		if data.SplitTransferAmount <= 0 || data.SplitMarketplaceAmount <= 0 {
			return nil, apperr.Validation("split amounts must both be greater than zero")
		}
		if data.SplitTransferAmount+data.SplitMarketplaceAmount != subtotal {
			return nil, apperr.Validation("split amounts must add up exactly to the order subtotal")
		}
		mpType, err := marketplaceType(data.MarketplacePlatform)
		if err != nil {
			return nil, err
		}
		return []models.Payment{
			{
				Amount:  data.SplitTransferAmount + shippingCost,
				Type:    models.PaymentTypeTransfer,
				Channel: models.PaymentChannelBankTransfer,
				Status:  models.PaymentStatusUnpaid,
			},
			{
				Amount:          data.SplitMarketplaceAmount,
				Type:            mpType,
				Channel:         models.PaymentChannelMarketplace,
				Status:          models.PaymentStatusUnpaid,
				MarketplaceLink: data.MarketplaceLink,
			},
		}, nil

	case models.ChannelMarketplace:
		if data.MarketplaceLink == "" {
			return nil, apperr.Validation("marketplace_link is required for marketplace orders")
		}
		mpType, err := marketplaceType(data.MarketplacePlatform)
		if err != nil {
			return nil, err
		}
		return []models.Payment{{
			Amount:          subtotal,
			Type:            mpType,
			Channel:         models.PaymentChannelMarketplace,
			Status:          models.PaymentStatusUnpaid,
			MarketplaceLink: data.MarketplaceLink,
		}}, nil
	}
	return nil, apperr.Validation("unknown payment channel")
}
