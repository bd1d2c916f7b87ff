package orderControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/apperr"
	"github.com/Myakey/onlineShop-sub000/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.Category{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Invoice{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedUserWithAddress(t *testing.T, db *gorm.DB) (models.User, models.Address) {
	t.Helper()
	user := models.User{Email: t.Name() + "@example.com", PasswordHash: "x", Name: "Tester"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	address := models.Address{
		UserID:        user.ID,
		RecipientName: "Tester",
		Street:        "Jl. Testing 1",
		District:      "Lowokwaru",
		City:          "Malang",
	}
	if err := db.Create(&address).Error; err != nil {
		t.Fatalf("failed to seed address: %v", err)
	}
	return user, address
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Weight: 500, Stock: stock}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func TestCreateOrderFullTransfer(t *testing.T) {
	db := testDB(t)
	user, address := seedUserWithAddress(t, db)
	product := seedProduct(t, db, "Kaos Polos", 40000, 10)

	order, err := CreateOrder(db, user.ID, CreateOrderRequest{
		AddressID:    address.ID,
		Items:        []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
		ShippingCost: 10000,
		PaymentData:  PaymentDataInput{PaymentChannel: "full_transfer"},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if order.Subtotal != 120000 {
		t.Errorf("subtotal = %d, want 120000", order.Subtotal)
	}
	if order.TotalAmount != 130000 {
		t.Errorf("total = %d, want 130000", order.TotalAmount)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if order.SecureToken == "" || order.OrderNumber == "" {
		t.Error("order must get a secure token and an order number")
	}

	if len(order.Payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(order.Payments))
	}
	p := order.Payments[0]
	if p.Amount != 130000 || p.Type != models.PaymentTypeTransfer || p.Channel != models.PaymentChannelBankTransfer {
		t.Errorf("unexpected payment row: %+v", p)
	}
	if p.Status != models.PaymentStatusUnpaid {
		t.Errorf("payment status = %q, want unpaid", p.Status)
	}

	// Item snapshot captures name and unit price at order time.
	if len(order.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(order.Items))
	}
	item := order.Items[0]
	if item.ProductName != "Kaos Polos" || item.UnitPrice != 40000 || item.Subtotal != 120000 {
		t.Errorf("unexpected item snapshot: %+v", item)
	}

	// Stock is only checked at creation, never decremented.
	var fresh models.Product
	if err := db.First(&fresh, product.ID).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	if fresh.Stock != 10 {
		t.Errorf("stock = %d, want 10 (unchanged until payment confirmation)", fresh.Stock)
	}
}

func TestCreateOrderSplitPayment(t *testing.T) {
	db := testDB(t)
	user, address := seedUserWithAddress(t, db)
	product := seedProduct(t, db, "Hoodie", 120000, 5)

	order, err := CreateOrder(db, user.ID, CreateOrderRequest{
		AddressID:    address.ID,
		Items:        []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingCost: 15000,
		PaymentData: PaymentDataInput{
			PaymentChannel:         "split_payment",
			SplitTransferAmount:    70000,
			SplitMarketplaceAmount: 50000,
			MarketplacePlatform:    "shopee",
			MarketplaceLink:        "https://shopee.example/listing/1",
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if len(order.Payments) != 2 {
		t.Fatalf("payments = %d, want 2", len(order.Payments))
	}

	var transfer, marketplace *models.Payment
	for i := range order.Payments {
		switch order.Payments[i].Channel {
		case models.PaymentChannelBankTransfer:
			transfer = &order.Payments[i]
		case models.PaymentChannelMarketplace:
			marketplace = &order.Payments[i]
		}
	}
	if transfer == nil || marketplace == nil {
		t.Fatalf("expected one transfer and one marketplace row, got %+v", order.Payments)
	}

	// The shipping cost rides on the transfer leg.
	if transfer.Amount != 85000 {
		t.Errorf("transfer amount = %d, want 85000", transfer.Amount)
	}
	if marketplace.Amount != 50000 {
		t.Errorf("marketplace amount = %d, want 50000", marketplace.Amount)
	}
	if marketplace.Type != models.PaymentTypeShopee {
		t.Errorf("marketplace type = %q, want shopee", marketplace.Type)
	}
	if marketplace.MarketplaceLink == "" {
		t.Error("marketplace row must carry the listing link")
	}
	if transfer.Amount+marketplace.Amount != order.TotalAmount {
		t.Errorf("payment rows sum to %d, want total %d", transfer.Amount+marketplace.Amount, order.TotalAmount)
	}
}

func TestCreateOrderSplitSumMismatch(t *testing.T) {
	db := testDB(t)
	user, address := seedUserWithAddress(t, db)
	product := seedProduct(t, db, "Hoodie", 120000, 5)

	_, err := CreateOrder(db, user.ID, CreateOrderRequest{
		AddressID: address.ID,
		Items:     []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentData: PaymentDataInput{
			PaymentChannel:         "split_payment",
			SplitTransferAmount:    70000,
			SplitMarketplaceAmount: 40000, // 110000 != 120000
			MarketplacePlatform:    "shopee",
		},
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("no order row should survive a failed checkout, found %d", count)
	}
}

func TestCreateOrderMarketplace(t *testing.T) {
	db := testDB(t)
	user, address := seedUserWithAddress(t, db)
	product := seedProduct(t, db, "Sticker Pack", 25000, 100)

	order, err := CreateOrder(db, user.ID, CreateOrderRequest{
		AddressID:    address.ID,
		Items:        []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		ShippingCost: 99999, // must be ignored for marketplace orders
		PaymentData: PaymentDataInput{
			PaymentChannel:      "marketplace",
			MarketplacePlatform: "tiktok",
			MarketplaceLink:     "https://tiktok.example/listing/9",
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if order.ShippingCost != 0 {
		t.Errorf("shipping cost = %d, want 0 for marketplace orders", order.ShippingCost)
	}
	if order.TotalAmount != 50000 {
		t.Errorf("total = %d, want 50000", order.TotalAmount)
	}
	if len(order.Payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(order.Payments))
	}
	if order.Payments[0].Amount != 50000 || order.Payments[0].Type != models.PaymentTypeTiktok {
		t.Errorf("unexpected payment row: %+v", order.Payments[0])
	}
}

func TestCreateOrderMarketplaceRequiresLink(t *testing.T) {
	db := testDB(t)
	user, address := seedUserWithAddress(t, db)
	product := seedProduct(t, db, "Sticker Pack", 25000, 100)

	_, err := CreateOrder(db, user.ID, CreateOrderRequest{
		AddressID: address.ID,
		Items:     []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentData: PaymentDataInput{
			PaymentChannel:      "marketplace",
			MarketplacePlatform: "tiktok",
		},
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for missing link, got %v", err)
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := testDB(t)
	user, address := seedUserWithAddress(t, db)
	product := seedProduct(t, db, "Limited Tee", 50000, 2)

	_, err := CreateOrder(db, user.ID, CreateOrderRequest{
		AddressID:   address.ID,
		Items:       []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
		PaymentData: PaymentDataInput{PaymentChannel: "full_transfer"},
	})
	if apperr.KindOf(err) != apperr.KindInsufficientStock {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
}

func TestCreateOrderForeignAddress(t *testing.T) {
	db := testDB(t)
	_, address := seedUserWithAddress(t, db)
	product := seedProduct(t, db, "Kaos Polos", 40000, 10)

	other := models.User{Email: "other@example.com", PasswordHash: "x"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	_, err := CreateOrder(db, other.ID, CreateOrderRequest{
		AddressID:   address.ID,
		Items:       []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentData: PaymentDataInput{PaymentChannel: "full_transfer"},
	})
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestCreateOrderVoucherExceedsTotal(t *testing.T) {
	db := testDB(t)
	user, address := seedUserWithAddress(t, db)
	product := seedProduct(t, db, "Kaos Polos", 40000, 10)

	_, err := CreateOrder(db, user.ID, CreateOrderRequest{
		AddressID:       address.ID,
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		VoucherDiscount: 999999,
		PaymentData:     PaymentDataInput{PaymentChannel: "full_transfer"},
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTrackOrderBySecureToken(t *testing.T) {
	db := testDB(t)
	user, address := seedUserWithAddress(t, db)
	product := seedProduct(t, db, "Kaos Polos", 40000, 10)

	order, err := CreateOrder(db, user.ID, CreateOrderRequest{
		AddressID:   address.ID,
		Items:       []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		PaymentData: PaymentDataInput{PaymentChannel: "full_transfer"},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/track/:token", GetOrderByTokenHandler(db))

	// The token issued at creation retrieves the same order, no auth needed.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/track/"+order.SecureToken, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("track by token = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool         `json:"success"`
		Data    models.Order `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Data.ID != order.ID || resp.Data.OrderNumber != order.OrderNumber {
		t.Errorf("token lookup returned %+v, want order %d (%s)", resp.Data, order.ID, order.OrderNumber)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/track/deadbeefdeadbeefdeadbeefdeadbeef", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown token = %d, want 404", w.Code)
	}
}

func TestCreateOrderUnknownChannel(t *testing.T) {
	db := testDB(t)
	user, address := seedUserWithAddress(t, db)
	product := seedProduct(t, db, "Kaos Polos", 40000, 10)

	_, err := CreateOrder(db, user.ID, CreateOrderRequest{
		AddressID:   address.ID,
		Items:       []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		PaymentData: PaymentDataInput{PaymentChannel: "cod"},
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
