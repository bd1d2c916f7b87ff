package models

import "time"

type InvoiceStatus string

const (
	InvoiceStatusUnpaid  InvoiceStatus = "unpaid"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice is created lazily, the first time a payment of the order turns paid.
// BalanceDue = GrandTotal - AmountPaid, recomputed on every applied payment.
type Invoice struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	OrderID      uint          `gorm:"uniqueIndex;not null" json:"order_id"`
	Number       string        `gorm:"size:64;uniqueIndex;not null" json:"number"`
	Subtotal     int64         `gorm:"not null" json:"subtotal"`
	ShippingCost int64         `gorm:"not null" json:"shipping_cost"`
	Discount     int64         `gorm:"not null;default:0" json:"discount"`
	Tax          int64         `gorm:"not null;default:0" json:"tax"`
	GrandTotal   int64         `gorm:"not null" json:"grand_total"`
	AmountPaid   int64         `gorm:"not null;default:0" json:"amount_paid"`
	BalanceDue   int64         `gorm:"not null" json:"balance_due"`
	Status       InvoiceStatus `gorm:"type:VARCHAR(20);default:'unpaid'" json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
