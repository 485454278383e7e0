package checkoutControllers

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	cartControllers "github.com/sareen-software-solution/django-project/controllers/cart"
	"github.com/sareen-software-solution/django-project/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCart(t *testing.T, db *gorm.DB, userID string, lines map[string]int) map[string]models.Product {
	t.Helper()
	cart, err := cartControllers.GetOrCreateCart(db, userID)
	if err != nil {
		t.Fatalf("GetOrCreateCart: %v", err)
	}
	products := make(map[string]models.Product, len(lines))
	for name, qty := range lines {
		p := models.Product{Name: name, Price: decimal.NewFromInt(10)}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("create product: %v", err)
		}
		if _, err := cartControllers.AddOrMergeItem(db, cart.CartID, p.ID, qty); err != nil {
			t.Fatalf("AddOrMergeItem: %v", err)
		}
		products[name] = p
	}
	return products
}

func TestCheckout_EmptiesCartAndCreatesOrder(t *testing.T) {
	db := openTestDB(t)
	products := seedCart(t, db, "alice", map[string]int{"shirt": 3, "jeans": 2})

	order, err := Checkout(db, "alice")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if order.UserID != "alice" {
		t.Fatalf("expected order for alice, got %q", order.UserID)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("expected status Pending, got %q", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	wantQty := map[uint]int{
		products["shirt"].ID: 3,
		products["jeans"].ID: 2,
	}
	for _, item := range order.Items {
		if item.Quantity != wantQty[item.ProductID] {
			t.Fatalf("product %d: expected quantity %d, got %d",
				item.ProductID, wantQty[item.ProductID], item.Quantity)
		}
		if !item.UnitPrice.Equal(decimal.NewFromInt(10)) {
			t.Fatalf("product %d: expected frozen unit price 10, got %s",
				item.ProductID, item.UnitPrice)
		}
	}

	var itemCount int64
	db.Model(&models.CartItem{}).Count(&itemCount)
	if itemCount != 0 {
		t.Fatalf("expected cart emptied after checkout, got %d items", itemCount)
	}

	var cartCount int64
	db.Model(&models.Cart{}).Where("user_id = ?", "alice").Count(&cartCount)
	if cartCount != 1 {
		t.Fatalf("expected cart row to survive checkout, got %d rows", cartCount)
	}
}

func TestCheckout_NoCartFails(t *testing.T) {
	db := openTestDB(t)

	_, err := Checkout(db, "nobody")
	if !errors.Is(err, ErrNoActiveCart) {
		t.Fatalf("expected ErrNoActiveCart, got %v", err)
	}

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("expected zero orders, got %d", orderCount)
	}
}

func TestCheckout_EmptyCartFails(t *testing.T) {
	db := openTestDB(t)
	if _, err := cartControllers.GetOrCreateCart(db, "alice"); err != nil {
		t.Fatalf("GetOrCreateCart: %v", err)
	}

	_, err := Checkout(db, "alice")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("expected zero orders, got %d", orderCount)
	}
}

func TestCheckout_DoubleSubmitSecondFails(t *testing.T) {
	db := openTestDB(t)
	seedCart(t, db, "alice", map[string]int{"shirt": 1})

	if _, err := Checkout(db, "alice"); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	_, err := Checkout(db, "alice")
	if !errors.Is(err, ErrEmptyCart) && !errors.Is(err, ErrNoActiveCart) {
		t.Fatalf("expected second checkout to fail against the empty cart, got %v", err)
	}

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 1 {
		t.Fatalf("expected exactly 1 order, got %d", orderCount)
	}
}

func TestCheckout_UnitPriceSurvivesCatalogEdit(t *testing.T) {
	db := openTestDB(t)
	products := seedCart(t, db, "alice", map[string]int{"jacket": 1})

	order, err := Checkout(db, "alice")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", products["jacket"].ID).
		Update("price", decimal.NewFromInt(999)).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	var item models.OrderItem
	if err := db.Where("order_id = ?", order.ID).First(&item).Error; err != nil {
		t.Fatalf("fetch order item: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected frozen unit price 10 after catalog edit, got %s", item.UnitPrice)
	}
}
