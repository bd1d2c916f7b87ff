package models

import "time"

type PaymentType string
type PaymentChannel string
type PaymentStatus string

// PaymentChannelChoice is the checkout-level channel selected by the client.
// It determines how many payment rows an order gets.
type PaymentChannelChoice string

const (
	PaymentTypeTransfer PaymentType = "transfer"
	PaymentTypeShopee   PaymentType = "shopee"
	PaymentTypeTiktok   PaymentType = "tiktok"
	PaymentTypeCash     PaymentType = "cash"

	PaymentChannelBankTransfer PaymentChannel = "bank_transfer"
	PaymentChannelMarketplace  PaymentChannel = "marketplace"

	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"

	ChannelFullTransfer PaymentChannelChoice = "full_transfer"
	ChannelSplitPayment PaymentChannelChoice = "split_payment"
	ChannelMarketplace  PaymentChannelChoice = "marketplace"
)

type Payment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	OrderID         uint           `gorm:"index;not null" json:"order_id"`
	Amount          int64          `gorm:"not null" json:"amount"`
	Type            PaymentType    `gorm:"type:VARCHAR(20);not null" json:"type"`
	Channel         PaymentChannel `gorm:"type:VARCHAR(20);not null" json:"channel"`
	Status          PaymentStatus  `gorm:"type:VARCHAR(20);default:'unpaid'" json:"status"`
	MarketplaceLink string         `json:"marketplace_link,omitempty"`
	ProofImage      string         `json:"proof_image,omitempty"`
	InvoiceID       *uint          `json:"invoice_id,omitempty"`
	PaidAt          *time.Time     `json:"paid_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
