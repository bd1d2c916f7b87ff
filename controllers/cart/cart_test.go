package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Myakey/onlineShop-sub000/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// testRouter wires the cart handlers behind a stub auth middleware that
// injects the given user id.
func testRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/cart", GetCart(db))
	r.POST("/cart", AddCartItem(db))
	r.PUT("/cart/:productID", UpdateCartItem(db))
	r.DELETE("/cart/:productID", DeleteCartItem(db))
	r.DELETE("/cart", ClearCart(db))
	return r
}

func postJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddCartItemAccumulatesQuantity(t *testing.T) {
	db := testDB(t)
	user := models.User{Email: "cart@example.com", PasswordHash: "x"}
	db.Create(&user)
	product := models.Product{Name: "Kaos Polos", Price: 40000, Weight: 500, Stock: 10}
	db.Create(&product)

	r := testRouter(db, user.ID)

	w := postJSON(r, http.MethodPost, "/cart", CartItemInput{ProductID: product.ID, Quantity: 2})
	if w.Code != http.StatusCreated {
		t.Fatalf("first add = %d: %s", w.Code, w.Body.String())
	}
	w = postJSON(r, http.MethodPost, "/cart", CartItemInput{ProductID: product.ID, Quantity: 3})
	if w.Code != http.StatusOK {
		t.Fatalf("second add = %d: %s", w.Code, w.Body.String())
	}

	var item models.CartItem
	if err := db.First(&item, "user_id = ? AND product_id = ?", user.ID, product.ID).Error; err != nil {
		t.Fatalf("failed to load cart item: %v", err)
	}
	if item.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", item.Quantity)
	}
}

func TestAddCartItemRejectsOverstock(t *testing.T) {
	db := testDB(t)
	user := models.User{Email: "cart@example.com", PasswordHash: "x"}
	db.Create(&user)
	product := models.Product{Name: "Limited Tee", Price: 50000, Weight: 300, Stock: 4}
	db.Create(&product)

	r := testRouter(db, user.ID)

	w := postJSON(r, http.MethodPost, "/cart", CartItemInput{ProductID: product.ID, Quantity: 3})
	if w.Code != http.StatusCreated {
		t.Fatalf("first add = %d: %s", w.Code, w.Body.String())
	}
	// 3 already in the cart; adding 2 more would exceed the 4 in stock.
	w = postJSON(r, http.MethodPost, "/cart", CartItemInput{ProductID: product.ID, Quantity: 2})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("overstock add = %d, want 400: %s", w.Code, w.Body.String())
	}

	var item models.CartItem
	db.First(&item, "user_id = ? AND product_id = ?", user.ID, product.ID)
	if item.Quantity != 3 {
		t.Errorf("quantity = %d, want 3 (rejected add must not apply)", item.Quantity)
	}
}

func TestUpdateCartItemChecksStock(t *testing.T) {
	db := testDB(t)
	user := models.User{Email: "cart@example.com", PasswordHash: "x"}
	db.Create(&user)
	product := models.Product{Name: "Hoodie", Price: 120000, Weight: 800, Stock: 2}
	db.Create(&product)

	r := testRouter(db, user.ID)
	postJSON(r, http.MethodPost, "/cart", CartItemInput{ProductID: product.ID, Quantity: 1})

	w := postJSON(r, http.MethodPut, fmt.Sprintf("/cart/%d", product.ID), map[string]int{"quantity": 5})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("overstock update = %d, want 400: %s", w.Code, w.Body.String())
	}
	w = postJSON(r, http.MethodPut, fmt.Sprintf("/cart/%d", product.ID), map[string]int{"quantity": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("valid update = %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteCartItemNotFound(t *testing.T) {
	db := testDB(t)
	user := models.User{Email: "cart@example.com", PasswordHash: "x"}
	db.Create(&user)

	r := testRouter(db, user.ID)
	w := postJSON(r, http.MethodDelete, "/cart/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete missing item = %d, want 404", w.Code)
	}
}

func TestClearCart(t *testing.T) {
	db := testDB(t)
	user := models.User{Email: "cart@example.com", PasswordHash: "x"}
	db.Create(&user)
	product := models.Product{Name: "Kaos Polos", Price: 40000, Weight: 500, Stock: 10}
	db.Create(&product)

	r := testRouter(db, user.ID)
	postJSON(r, http.MethodPost, "/cart", CartItemInput{ProductID: product.ID, Quantity: 1})

	w := postJSON(r, http.MethodDelete, "/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear = %d", w.Code)
	}
	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("cart items = %d, want 0", count)
	}
}
