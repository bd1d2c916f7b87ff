package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // order placed, awaiting payment
	OrderStatusConfirmed  OrderStatus = "confirmed"  // payment confirmed by admin
	OrderStatusProcessing OrderStatus = "processing" // being packed
	OrderStatusShipped    OrderStatus = "shipped"    // handed to courier
	OrderStatusDelivered  OrderStatus = "delivered"  // customer received the items
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	User            User        `gorm:"foreignKey:UserID" json:"user"`
	AddressID       uint        `gorm:"not null" json:"address_id"`
	Address         Address     `gorm:"foreignKey:AddressID" json:"address"`
	OrderNumber     string      `gorm:"size:64;uniqueIndex;not null" json:"order_number"`
	SecureToken     string      `gorm:"size:64;uniqueIndex;not null" json:"secure_token"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	// StockTaken records whether this order's quantities have been
	// decremented from product stock. Set on the first payment
	// confirmation; cancellation only restores stock when it is set.
	StockTaken      bool        `gorm:"default:false" json:"stock_taken"`
	Notes           string      `json:"notes"`
	Subtotal        int64       `gorm:"not null" json:"subtotal"`
	ShippingCost    int64       `gorm:"not null" json:"shipping_cost"`
	VoucherDiscount int64       `gorm:"not null;default:0" json:"voucher_discount"`
	TotalAmount     int64       `gorm:"not null" json:"total_amount"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Payments        []Payment   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem snapshots product name and unit price at order time, so later
// catalog changes do not alter historical orders.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderID     uint   `gorm:"index;not null" json:"order_id"`
	ProductID   uint   `gorm:"not null" json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `gorm:"not null" json:"unit_price"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	Subtotal    int64  `gorm:"not null" json:"subtotal"`
}
